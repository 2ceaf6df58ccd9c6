// Package shape generates fixed-size point clouds for the particle templates.
//
// Every generator returns exactly count points for count > 0 and an empty
// slice otherwise. Stochastic generators draw from the supplied source so
// callers control seeding.
package shape

import (
	"math"
	"math/rand/v2"
)

// Point is a position in model space. Y is up.
type Point struct {
	X, Y, Z float64
}

const (
	DefaultSphereRadius = 2.0
	FireworksRadius     = 0.1

	heartScale = 0.15
	heartDepth = 4.0

	saturnSphereShare  = 0.4
	saturnSphereRadius = 1.5
	saturnRingInner    = 2.5
	saturnRingWidth    = 2.0
	saturnRingHeight   = 0.2

	buddhaHeadShare  = 0.2
	buddhaBodyShare  = 0.5
	buddhaHeadRadius = 0.7
	buddhaHeadLift   = 1.8
	buddhaBodyRadius = 1.4
	buddhaBodySquash = 0.8
	buddhaBaseRadius = 2.5
	buddhaBaseBottom = -1.5
	buddhaBaseHeight = 0.5
)

// Sphere spreads count points evenly over a sphere surface along a
// golden-angle spiral. The result depends only on its arguments.
func Sphere(count int, radius float64) []Point {
	if count <= 0 {
		return []Point{}
	}
	pts := make([]Point, count)
	spin := math.Sqrt(float64(count) * math.Pi)
	for i := range pts {
		phi := math.Acos(-1 + 2*float64(i)/float64(count))
		theta := spin * phi
		sinPhi := math.Sin(phi)
		pts[i] = Point{
			X: radius * math.Cos(theta) * sinPhi,
			Y: radius * math.Sin(theta) * sinPhi,
			Z: radius * math.Cos(phi),
		}
	}
	return pts
}

// Heart samples the classic parametric heart curve with random depth.
func Heart(count int, rng *rand.Rand) []Point {
	if count <= 0 {
		return []Point{}
	}
	pts := make([]Point, count)
	for i := range pts {
		t := rng.Float64() * 2 * math.Pi
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pts[i] = Point{
			X: x * heartScale,
			Y: y * heartScale,
			Z: (rng.Float64() - 0.5) * heartDepth,
		}
	}
	return pts
}

// Flower lays points on a five-petal rose in the XZ plane with a wavy height.
func Flower(count int, rng *rand.Rand) []Point {
	if count <= 0 {
		return []Point{}
	}
	pts := make([]Point, count)
	for i := range pts {
		theta := rng.Float64() * 2 * math.Pi
		r := math.Sin(5*theta) + 2
		h := rng.Float64() - 0.5
		pts[i] = Point{
			X: r * math.Cos(theta),
			Y: h + math.Cos(r*5)*0.5,
			Z: r * math.Sin(theta),
		}
	}
	return pts
}

// Saturn is a sphere surrounded by a flat ring. The ring takes whatever the
// sphere share leaves over.
func Saturn(count int, rng *rand.Rand) []Point {
	if count <= 0 {
		return []Point{}
	}
	sphereCount := int(math.Floor(float64(count) * saturnSphereShare))
	pts := make([]Point, 0, count)
	pts = append(pts, Sphere(sphereCount, saturnSphereRadius)...)
	for len(pts) < count {
		angle := rng.Float64() * 2 * math.Pi
		dist := saturnRingInner + rng.Float64()*saturnRingWidth
		pts = append(pts, Point{
			X: math.Cos(angle) * dist,
			Y: (rng.Float64() - 0.5) * saturnRingHeight,
			Z: math.Sin(angle) * dist,
		})
	}
	return pts
}

// Buddha stacks a head, a squashed body and a flat base disc.
// Segments are emitted head, body, base; the base absorbs rounding.
func Buddha(count int, rng *rand.Rand) []Point {
	if count <= 0 {
		return []Point{}
	}
	headCount := int(math.Floor(float64(count) * buddhaHeadShare))
	bodyCount := int(math.Floor(float64(count) * buddhaBodyShare))

	pts := make([]Point, 0, count)
	for _, p := range Sphere(headCount, buddhaHeadRadius) {
		p.Y += buddhaHeadLift
		pts = append(pts, p)
	}
	for _, p := range Sphere(bodyCount, buddhaBodyRadius) {
		p.X *= buddhaBodySquash
		pts = append(pts, p)
	}
	for len(pts) < count {
		theta := rng.Float64() * 2 * math.Pi
		r := rng.Float64() * buddhaBaseRadius
		pts = append(pts, Point{
			X: r * math.Cos(theta),
			Y: buddhaBaseBottom + rng.Float64()*buddhaBaseHeight,
			Z: r * math.Sin(theta),
		})
	}
	return pts
}

// Fireworks is a tight seed cluster; the burst comes from the expansion
// factor applied while animating.
func Fireworks(count int) []Point {
	return Sphere(count, FireworksRadius)
}

// Generate produces the point cloud for t.
func Generate(t Template, count int, rng *rand.Rand) ([]Point, error) {
	switch t {
	case TemplateSphere:
		return Sphere(count, DefaultSphereRadius), nil
	case TemplateHeart:
		return Heart(count, rng), nil
	case TemplateFlower:
		return Flower(count, rng), nil
	case TemplateSaturn:
		return Saturn(count, rng), nil
	case TemplateBuddha:
		return Buddha(count, rng), nil
	case TemplateFireworks:
		return Fireworks(count), nil
	}
	return nil, ErrUnknownTemplate
}
