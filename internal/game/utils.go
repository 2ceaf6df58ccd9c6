package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// withAlpha converts a display color to an RGBA with the given opacity (0-1).
func withAlpha(c colorful.Color, a float64) color.RGBA {
	a = clamp01(a)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(255 * a),
	}
}
