package view

import "github.com/lucasb-eyer/go-colorful"

// Background is the near-black clear color behind the field.
var Background = colorful.Color{R: 3.0 / 255, G: 3.0 / 255, B: 3.0 / 255}

// Scene bundles what every frontend draws around the particle buffer.
type Scene struct {
	Camera Camera
	Stars  []Star
	// Alpha is the per-particle opacity.
	Alpha float64
}

// Render clears c and draws the star field and particles rotated by yaw.
// elapsed drives the star twinkle. It returns the number of particles drawn.
func (s Scene) Render(c *Canvas, positions []float32, yaw float64, col colorful.Color, elapsed float64) int {
	c.Clear(Background)
	c.SplatStars(s.Stars, s.Camera.Projector(0), elapsed)
	return c.Splat(positions, s.Camera.Projector(yaw), col, s.Alpha, s.Camera.Distance)
}
