// Command rawframe inspects and converts raw video frame files.
//
// Usage:
//
//	rawframe info --type NV12 --width 1280 --height 720
//	rawframe convert --in frame.yuv --from I420 --width 640 --height 480 --to RGBA --out frame.rgba
//	rawframe convert --in frame.yuv --width 640 --height 480 --rotate 90 --png preview.png
//
// Every flag can also be set through a RAWFRAME_ environment variable
// (RAWFRAME_WIDTH, RAWFRAME_SCALE_WIDTH, ...) or a YAML file passed with
// --config.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
