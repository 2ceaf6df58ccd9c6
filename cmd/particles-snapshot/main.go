// Command particles-snapshot steps the field headlessly and writes one frame
// as PNG.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/session"
	"github.com/iburimskiy/particle-morph/internal/snapshot"
	"github.com/iburimskiy/particle-morph/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Defaults()
	settings.Bind(flag.CommandLine)
	tension := flag.Float64("tension", 0, "hand tension held for the whole run, 0-1")
	steps := flag.Int("steps", 240, "animation steps before the frame is taken")
	delta := flag.Float64("delta", config.FramePeriod.Seconds(), "seconds per step")
	width := flag.Int("width", config.SnapshotWidth, "image width")
	height := flag.Int("height", config.SnapshotHeight, "image height")
	meter := flag.Bool("meter", false, "draw the tension meter")
	out := flag.String("out", "particles.png", "output PNG path")
	flag.Parse()

	logging.SetLogger(logging.New(settings.LogLevel, os.Stderr))
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", *width, *height)
	}

	sess, err := session.New(settings)
	if err != nil {
		return err
	}
	sess.Tap.UpdateSignal(*tension, *tension > 0)
	for i := 0; i < *steps; i++ {
		sess.Field.Step(*delta)
	}

	opts := snapshot.Options{
		Scene: view.Scene{
			Camera: view.Camera{Distance: config.CameraDistance, FOV: config.CameraFOV, Width: *width, Height: *height},
			Stars:  sess.Stars,
			Alpha:  config.PointAlpha,
		},
		Elapsed: float64(*steps) * *delta,
		Meter:   *meter,
	}
	if err := snapshot.Save(sess.Field, opts, *out); err != nil {
		return err
	}
	logging.Logger().Info("snapshot written",
		"path", *out,
		"template", sess.Field.Template().String(),
		"frame", sess.Field.Frame())
	return nil
}
