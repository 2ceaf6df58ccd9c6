package view

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func testCamera() Camera {
	return Camera{Distance: 5.5, FOV: 60, Width: 800, Height: 600}
}

func TestProjectOriginAtCenter(t *testing.T) {
	sx, sy, depth, ok := testCamera().Projector(0).Project(0, 0, 0)
	if !ok {
		t.Fatal("expected origin to be visible")
	}
	if sx != 400 || sy != 300 || depth != 5.5 {
		t.Fatalf("expected (400, 300) at depth 5.5, got (%v, %v) at %v", sx, sy, depth)
	}
}

func TestProjectUpIsScreenUp(t *testing.T) {
	p := testCamera().Projector(0)
	_, sy, _, _ := p.Project(0, 1, 0)
	focal := 300 / math.Tan(math.Pi/6)
	want := 300 - focal/5.5
	if math.Abs(sy-want) > 1e-9 {
		t.Fatalf("expected y %v, got %v", want, sy)
	}
}

func TestProjectNearerIsLarger(t *testing.T) {
	p := testCamera().Projector(0)
	near, _, _, _ := p.Project(1, 0, 2)
	far, _, _, _ := p.Project(1, 0, -2)
	if near-400 <= far-400 {
		t.Fatalf("expected nearer point further from center: near %v far %v", near, far)
	}
}

func TestProjectYawRotatesAboutY(t *testing.T) {
	p := testCamera().Projector(math.Pi / 2)
	sx, _, depth, ok := p.Project(1, 0, 0)
	if !ok {
		t.Fatal("expected rotated point to stay visible")
	}
	if math.Abs(sx-400) > 1e-9 {
		t.Fatalf("expected x axis to rotate onto the view axis, got sx %v", sx)
	}
	if math.Abs(depth-6.5) > 1e-9 {
		t.Fatalf("expected depth 6.5, got %v", depth)
	}
}

func TestProjectCullsBehindCamera(t *testing.T) {
	if _, _, _, ok := testCamera().Projector(0).Project(0, 0, 6); ok {
		t.Fatal("expected point behind the camera to be culled")
	}
}

func TestProjectAspect(t *testing.T) {
	cam := testCamera()
	plain, _, _, _ := cam.Projector(0).Project(1, 0, 0)
	cam.Aspect = 2
	wide, _, _, _ := cam.Projector(0).Project(1, 0, 0)
	if math.Abs((wide-400)-2*(plain-400)) > 1e-9 {
		t.Fatalf("expected aspect 2 to double x offset: %v vs %v", wide-400, plain-400)
	}
}

func TestCanvasAddResolveSaturates(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Clear(colorful.Color{R: 0.1, G: 0.1, B: 0.1})
	red := colorful.Color{R: 1}
	for i := 0; i < 3; i++ {
		c.Add(0, 0, red, 0.5)
	}
	c.Add(5, 5, red, 1)
	c.Add(-1, 0, red, 1)

	if got := c.Intensity(0, 0); math.Abs(got-1.6) > 1e-6 {
		t.Fatalf("expected accumulated intensity 1.6, got %v", got)
	}
	if got := c.At(9, 9); got != (colorful.Color{}) {
		t.Fatalf("expected zero color out of bounds, got %v", got)
	}

	dst := make([]byte, 2*1*4)
	c.Resolve(dst)
	if dst[0] != 0xff {
		t.Fatalf("expected red to saturate, got %d", dst[0])
	}
	if dst[1] != 26 || dst[2] != 26 || dst[3] != 0xff {
		t.Fatalf("unexpected first pixel %v", dst[:4])
	}
	if dst[4] != 26 || dst[7] != 0xff {
		t.Fatalf("expected untouched pixel to keep the background, got %v", dst[4:])
	}
}

func TestSplatCountsVisible(t *testing.T) {
	c := NewCanvas(800, 600)
	positions := []float32{
		0, 0, 0,
		1, 1, 1,
		0, 0, 6, // behind camera
		100, 0, 0, // off screen
	}
	drawn := c.Splat(positions, testCamera().Projector(0), colorful.Color{G: 1}, 0.8, 0)
	if drawn != 2 {
		t.Fatalf("expected 2 particles drawn, got %d", drawn)
	}
	if got := c.Intensity(400, 300); math.Abs(got-0.8) > 1e-6 {
		t.Fatalf("expected center intensity 0.8, got %v", got)
	}
}

func TestSplatDepthWeighting(t *testing.T) {
	c := NewCanvas(800, 600)
	cam := testCamera()
	c.Splat([]float32{0, 0, 2.75}, cam.Projector(0), colorful.Color{B: 1}, 0.5, cam.Distance)
	if got := c.Intensity(400, 300); math.Abs(got-1.0) > 1e-6 {
		t.Fatalf("expected half-depth point at double brightness 1.0, got %v", got)
	}
}

func TestStarsOnShell(t *testing.T) {
	stars := Stars(500, rand.New(rand.NewPCG(3, 4)))
	if len(stars) != 500 {
		t.Fatalf("expected 500 stars, got %d", len(stars))
	}
	for i, s := range stars {
		r := math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
		if r < starRadius-1e-9 || r > starRadius+starDepth+1e-9 {
			t.Fatalf("star %d at radius %v", i, r)
		}
		if s.Glow < 0.2 || s.Glow > 0.8 {
			t.Fatalf("star %d glow %v out of range", i, s.Glow)
		}
	}

	c := NewCanvas(800, 600)
	c.SplatStars(stars, testCamera().Projector(0), 0)
	lit := 0
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.Intensity(x, y) > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected some stars in view")
	}
}

func TestSceneRender(t *testing.T) {
	cam := testCamera()
	c := NewCanvas(cam.Width, cam.Height)
	scene := Scene{Camera: cam, Alpha: 0.8}
	drawn := scene.Render(c, []float32{0, 0, 0, 0, 0, 0}, 1.0, colorful.Color{R: 1}, 0)
	if drawn != 2 {
		t.Fatalf("expected 2 particles drawn, got %d", drawn)
	}
	if got := c.At(400, 300).R; got < 1.5 {
		t.Fatalf("expected stacked particles at the center, got red %v", got)
	}
	if got := c.At(0, 0); math.Abs(got.G-Background.G) > 1e-6 {
		t.Fatalf("expected background in the corner, got %v", got)
	}
}
