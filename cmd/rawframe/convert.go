package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opd-ai/rawdata/av/video"
)

// convertConfig holds the resolved flags of the convert command.
type convertConfig struct {
	In          string
	Out         string
	PNG         string
	From        video.VideoType
	To          video.VideoType
	Width       int
	Height      int
	Stride      int
	Rotate      int
	ScaleWidth  int
	ScaleHeight int
}

func readConvertConfig(v *viper.Viper) (convertConfig, error) {
	from, err := video.ParseVideoType(v.GetString("from"))
	if err != nil {
		return convertConfig{}, fmt.Errorf("--from: %w", err)
	}
	to, err := video.ParseVideoType(v.GetString("to"))
	if err != nil {
		return convertConfig{}, fmt.Errorf("--to: %w", err)
	}

	cfg := convertConfig{
		In:          v.GetString("in"),
		Out:         v.GetString("out"),
		PNG:         v.GetString("png"),
		From:        from,
		To:          to,
		Width:       v.GetInt("width"),
		Height:      v.GetInt("height"),
		Stride:      v.GetInt("stride"),
		Rotate:      v.GetInt("rotate"),
		ScaleWidth:  v.GetInt("scale-width"),
		ScaleHeight: v.GetInt("scale-height"),
	}
	if cfg.In == "" {
		return cfg, errors.New("--in is required")
	}
	if cfg.Out == "" && cfg.PNG == "" {
		return cfg, errors.New("nothing to write: set --out or --png")
	}
	if !video.ValidRotation(cfg.Rotate) {
		return cfg, fmt.Errorf("%w: %d", video.ErrInvalidRotation, cfg.Rotate)
	}
	return cfg, nil
}

func newConvertCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a raw frame file between video types",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConvertConfig(v)
			if err != nil {
				return err
			}
			n, err := runConvert(cfg)
			if err != nil {
				return err
			}
			if cfg.Out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes of %s to %s\n", n, cfg.To, cfg.Out)
			}
			if cfg.PNG != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote preview to %s\n", cfg.PNG)
			}
			return nil
		},
	}
	cmd.Flags().String("in", "", "input raw frame file")
	cmd.Flags().String("out", "", "output raw frame file")
	cmd.Flags().String("png", "", "write a PNG preview to this path")
	cmd.Flags().String("from", "I420", "input video type")
	cmd.Flags().String("to", "RGBA", "output video type")
	cmd.Flags().Int("width", 640, "input width in pixels")
	cmd.Flags().Int("height", 480, "input height in pixels")
	cmd.Flags().Int("stride", 0, "input stride in bytes of the first plane, 0 for packed")
	cmd.Flags().Int("rotate", 0, "clockwise rotation: 0, 90, 180 or 270")
	cmd.Flags().Int("scale-width", 0, "scale to this width (with --scale-height)")
	cmd.Flags().Int("scale-height", 0, "scale to this height (with --scale-width)")
	return cmd
}

// runConvert imports the input, applies rotation and scaling, and writes
// the requested outputs. It returns the bytes written to cfg.Out.
func runConvert(cfg convertConfig) (int, error) {
	src, err := os.ReadFile(cfg.In)
	if err != nil {
		return 0, err
	}

	frame, err := video.ConvertToI420(cfg.From, src, cfg.Stride, cfg.Width, cfg.Height)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", cfg.In, err)
	}
	defer func() { _ = frame.Release() }()

	if cfg.Rotate != 0 {
		rotated, err := frame.Rotate(cfg.Rotate)
		if err != nil {
			return 0, err
		}
		_ = frame.Release()
		frame = rotated
	}

	if cfg.ScaleWidth > 0 || cfg.ScaleHeight > 0 {
		scaled, err := video.NewScaler().Scale(frame, cfg.ScaleWidth, cfg.ScaleHeight)
		if err != nil {
			return 0, err
		}
		_ = frame.Release()
		frame = scaled
	}

	n := 0
	if cfg.Out != "" {
		buf := make([]byte, video.CalcBufferSize(cfg.To, frame.Width(), frame.Height()))
		if n, err = frame.ConvertFrame(cfg.To, 0, buf); err != nil {
			return 0, err
		}
		if err := os.WriteFile(cfg.Out, buf[:n], 0o644); err != nil {
			return 0, err
		}
	}

	if cfg.PNG != "" {
		if err := writePNG(cfg.PNG, frame); err != nil {
			return 0, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "runConvert",
		"from":     cfg.From.String(),
		"to":       cfg.To.String(),
		"width":    frame.Width(),
		"height":   frame.Height(),
		"bytes":    n,
	}).Info("Frame converted")
	return n, nil
}

func writePNG(path string, frame *video.PlanarFrame) error {
	img := frame.Image()
	if img == nil {
		return fmt.Errorf("%w: frame has no image view", video.ErrUnsupportedConversion)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
