package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opd-ai/rawdata/av/video"
	"github.com/opd-ai/rawdata/limits"
)

func newInfoCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the buffer layout of a video type",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := video.ParseVideoType(v.GetString("type"))
			if err != nil {
				return err
			}
			return printInfo(cmd.OutOrStdout(), t, v.GetInt("width"), v.GetInt("height"))
		},
	}
	cmd.Flags().String("type", "I420", "video type, e.g. I420, NV12, RGBA")
	cmd.Flags().Int("width", 640, "frame width in pixels")
	cmd.Flags().Int("height", 480, "frame height in pixels")
	return cmd
}

func printInfo(w io.Writer, t video.VideoType, width, height int) error {
	if err := limits.ValidateVideoDimensions(width, height); err != nil {
		return err
	}

	fmt.Fprintf(w, "type:   %s\n", t)
	fmt.Fprintf(w, "size:   %dx%d\n", width, height)
	if t == video.VideoTypeMJPG {
		fmt.Fprintln(w, "buffer: variable")
		return nil
	}
	fmt.Fprintf(w, "buffer: %d bytes\n", video.CalcBufferSize(t, width, height))

	if !t.IsPlanar() {
		return nil
	}
	f, err := video.NewPlanarFrame(t, width, height)
	if err != nil {
		return err
	}
	defer f.Release()

	for p := video.PlaneY; p < video.NumPlanes; p++ {
		fmt.Fprintf(w, "plane %s: stride %d, %d bytes\n", p, f.Stride(p), f.AllocatedSize(p))
	}
	return nil
}
