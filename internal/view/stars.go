package view

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	starRadius = 100.0
	starDepth  = 50.0
)

// Star is a background point on a distant shell around the scene.
type Star struct {
	X, Y, Z float64
	Tint    colorful.Color
	Glow    float64
}

// Stars scatters n stars uniformly over directions at radius 100 to 150.
func Stars(n int, rng *rand.Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		// Uniform direction from a uniform z and azimuth.
		z := 2*rng.Float64() - 1
		az := 2 * math.Pi * rng.Float64()
		ring := math.Sqrt(1 - z*z)
		r := starRadius + starDepth*rng.Float64()
		stars[i] = Star{
			X:    r * ring * math.Cos(az),
			Y:    r * ring * math.Sin(az),
			Z:    r * z,
			Tint: colorful.Hsv(360*rng.Float64(), 0.15*rng.Float64(), 1),
			Glow: 0.2 + 0.6*rng.Float64(),
		}
	}
	return stars
}

// SplatStars adds the star field, twinkling with t seconds of elapsed time.
func (c *Canvas) SplatStars(stars []Star, p Projector, t float64) {
	for i, s := range stars {
		sx, sy, _, ok := p.Project(s.X, s.Y, s.Z)
		if !ok {
			continue
		}
		twinkle := 0.75 + 0.25*math.Sin(t*0.5+float64(i))
		c.Add(int(math.Floor(sx)), int(math.Floor(sy)), s.Tint, s.Glow*twinkle)
	}
}
