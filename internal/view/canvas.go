package view

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas accumulates additive light per pixel in linear float RGB, the way
// points drawn with additive blending pile up where they overlap.
type Canvas struct {
	Width  int
	Height int
	rgb    []float32
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		rgb:    make([]float32, width*height*3),
	}
}

// Clear fills the canvas with a background color.
func (c *Canvas) Clear(bg colorful.Color) {
	r, g, b := float32(bg.R), float32(bg.G), float32(bg.B)
	for i := 0; i < len(c.rgb); i += 3 {
		c.rgb[i], c.rgb[i+1], c.rgb[i+2] = r, g, b
	}
}

// Add blends light into one pixel. Out-of-bounds writes are dropped.
func (c *Canvas) Add(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	i := (y*c.Width + x) * 3
	a := float32(alpha)
	c.rgb[i] += float32(col.R) * a
	c.rgb[i+1] += float32(col.G) * a
	c.rgb[i+2] += float32(col.B) * a
}

// At returns the accumulated color, unclamped.
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return colorful.Color{}
	}
	i := (y*c.Width + x) * 3
	return colorful.Color{R: float64(c.rgb[i]), G: float64(c.rgb[i+1]), B: float64(c.rgb[i+2])}
}

// Intensity is the brightest channel at a pixel, unclamped.
func (c *Canvas) Intensity(x, y int) float64 {
	col := c.At(x, y)
	return math.Max(col.R, math.Max(col.G, col.B))
}

// Splat projects a flat xyz buffer and adds one point of light per particle.
// Points nearer than refDepth glow brighter, farther ones dimmer.
// It returns how many particles landed on the canvas.
func (c *Canvas) Splat(positions []float32, p Projector, col colorful.Color, alpha, refDepth float64) int {
	drawn := 0
	for i := 0; i+2 < len(positions); i += 3 {
		sx, sy, depth, ok := p.Project(float64(positions[i]), float64(positions[i+1]), float64(positions[i+2]))
		if !ok {
			continue
		}
		x, y := int(math.Floor(sx)), int(math.Floor(sy))
		if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
			continue
		}
		a := alpha
		if refDepth > 0 {
			a *= math.Min(refDepth/depth, 2)
		}
		c.Add(x, y, col, a)
		drawn++
	}
	return drawn
}

// Resolve writes the canvas as 8-bit RGBA into dst, saturating overexposed
// pixels. dst must hold Width*Height*4 bytes.
func (c *Canvas) Resolve(dst []byte) {
	n := c.Width * c.Height
	for i := 0; i < n; i++ {
		dst[i*4] = toByte(c.rgb[i*3])
		dst[i*4+1] = toByte(c.rgb[i*3+1])
		dst[i*4+2] = toByte(c.rgb[i*3+2])
		dst[i*4+3] = 0xff
	}
}

func toByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return byte(v*255 + 0.5)
}
