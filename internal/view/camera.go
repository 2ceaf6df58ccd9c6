// Package view projects the particle buffer onto a 2D raster. It is shared by
// the window, terminal and snapshot frontends and has no display dependency.
package view

import "math"

// Camera is a pinhole camera on the +Z axis looking at the origin.
type Camera struct {
	Distance float64
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Width  int
	Height int
	// Aspect stretches X to compensate for non-square pixels, 2 for
	// terminal cells. Zero means 1.
	Aspect float64
}

const nearPlane = 0.1

func (c Camera) focal() float64 {
	return float64(c.Height) / 2 / math.Tan(c.FOV*math.Pi/360)
}

func (c Camera) aspect() float64 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}

// Projector caches the per-frame terms of a camera at a fixed yaw.
type Projector struct {
	cx, cy     float64
	focal      float64
	aspect     float64
	distance   float64
	cosR, sinR float64
}

// Projector returns a projector for the cloud rotated by yaw radians about Y.
func (c Camera) Projector(yaw float64) Projector {
	return Projector{
		cx:       float64(c.Width) / 2,
		cy:       float64(c.Height) / 2,
		focal:    c.focal(),
		aspect:   c.aspect(),
		distance: c.Distance,
		cosR:     math.Cos(yaw),
		sinR:     math.Sin(yaw),
	}
}

// Project maps a model-space point to screen coordinates. depth is the
// distance in front of the camera; ok is false for points behind the near plane.
func (p Projector) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	rx := x*p.cosR + z*p.sinR
	rz := -x*p.sinR + z*p.cosR
	depth = p.distance - rz
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	scale := p.focal / depth
	return p.cx + rx*scale*p.aspect, p.cy - y*scale, depth, true
}
