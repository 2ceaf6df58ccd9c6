// Package snapshot renders the particle field headlessly to a PNG.
package snapshot

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/view"
)

const (
	meterHeight = 6.0
	meterMargin = 16.0
)

// Options controls a single rendered frame.
type Options struct {
	Scene view.Scene
	// Elapsed seconds, for the star twinkle.
	Elapsed float64
	// Meter draws the tension bar along the bottom edge.
	Meter bool
}

// Render draws the field's current buffer into a new context sized to the
// scene camera. The caller owns the returned context.
func Render(f *morph.Field, opts Options) *gg.Context {
	w, h := opts.Scene.Camera.Width, opts.Scene.Camera.Height
	canvas := view.NewCanvas(w, h)
	opts.Scene.Render(canvas, f.Positions(), f.Rotation(), f.Color(), opts.Elapsed)

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.RGB(view.Background.R, view.Background.G, view.Background.B))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := canvas.At(x, y)
			dc.SetPixel(x, y, gg.RGB(clamp01(c.R), clamp01(c.G), clamp01(c.B)))
		}
	}

	if opts.Meter {
		drawMeter(dc, f.Signal())
	}
	return dc
}

func drawMeter(dc *gg.Context, r morph.Reading) {
	w, h := float64(dc.Width()), float64(dc.Height())
	x, y := meterMargin, h-meterMargin-meterHeight
	full := w - 2*meterMargin

	dc.SetRGBA(1, 1, 1, 0.15)
	dc.DrawRectangle(x, y, full, meterHeight)
	_ = dc.Fill()

	if !r.Present {
		return
	}
	dc.SetRGBA(1, 1, 1, 0.8)
	dc.DrawRectangle(x, y, full*r.Tension, meterHeight)
	_ = dc.Fill()
}

// Save renders the field and writes it to path as PNG.
func Save(f *morph.Field, opts Options, path string) error {
	dc := Render(f, opts)
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Encode renders the field and streams it as PNG.
func Encode(w io.Writer, f *morph.Field, opts Options) error {
	dc := Render(f, opts)
	defer dc.Close()
	return dc.EncodePNG(w)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
