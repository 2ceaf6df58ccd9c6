package morph

import (
	"errors"
	"image/color"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/iburimskiy/particle-morph/internal/shape"
)

func newTestField(t *testing.T, opts Options) *Field {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	f, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

// maxDistance is the largest per-particle distance between current and the
// target scaled by expansion.
func maxDistance(f *Field, expansion float64) float64 {
	worst := 0.0
	for i := 0; i < f.Count(); i++ {
		var sum float64
		for a := 0; a < 3; a++ {
			d := float64(f.current[i*3+a]) - float64(f.target[i*3+a])*expansion
			sum += d * d
		}
		worst = math.Max(worst, math.Sqrt(sum))
	}
	return worst
}

func meanDistance(f *Field, expansion float64) float64 {
	var total float64
	for i := 0; i < f.Count(); i++ {
		var sum float64
		for a := 0; a < 3; a++ {
			d := float64(f.current[i*3+a]) - float64(f.target[i*3+a])*expansion
			sum += d * d
		}
		total += math.Sqrt(sum)
	}
	return total / float64(f.Count())
}

func assertFinite(t *testing.T, buf []float32) {
	t.Helper()
	for i, v := range buf {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("position %d is not finite: %v", i, v)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	f := newTestField(t, Options{})

	if f.Count() != DefaultCount {
		t.Fatalf("expected %d particles, got %d", DefaultCount, f.Count())
	}
	if len(f.Positions()) != 3*DefaultCount {
		t.Fatalf("expected %d floats, got %d", 3*DefaultCount, len(f.Positions()))
	}
	if f.Template() != shape.TemplateSphere {
		t.Fatalf("expected sphere template, got %v", f.Template())
	}
	if got := f.Color().Hex(); got != DefaultColor {
		t.Fatalf("expected color %s, got %s", DefaultColor, got)
	}
	if sig := f.Signal(); sig.Tension != 0 || sig.Present {
		t.Fatalf("expected idle signal, got %+v", sig)
	}
	// Before the first step the buffer already holds the initial shape.
	if d := maxDistance(f, 1); d != 0 {
		t.Fatalf("expected current to start on target, distance %v", d)
	}
	assertFinite(t, f.Positions())
}

func TestNewCollapsedStartsAtOrigin(t *testing.T) {
	f := newTestField(t, Options{Count: 64, Collapsed: true})
	for i, v := range f.Positions() {
		if v != 0 {
			t.Fatalf("expected position %d at origin, got %v", i, v)
		}
	}
}

func TestNewRejectsBadColor(t *testing.T) {
	if _, err := New(Options{Count: 8, Color: "teal"}); err == nil {
		t.Fatal("expected invalid color to fail")
	}
}

func TestSelectTemplateUnknown(t *testing.T) {
	f := newTestField(t, Options{Count: 16})
	before := append([]float32(nil), f.target...)

	err := f.SelectTemplate(shape.Template(17))
	if !errors.Is(err, shape.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	if f.Template() != shape.TemplateSphere {
		t.Fatalf("template changed on failed select: %v", f.Template())
	}
	for i := range before {
		if before[i] != f.target[i] {
			t.Fatalf("target %d changed on failed select", i)
		}
	}
}

func TestSelectTemplateReselect(t *testing.T) {
	f := newTestField(t, Options{Count: 200})

	sphere := append([]float32(nil), f.target...)
	if err := f.SelectTemplate(shape.TemplateSphere); err != nil {
		t.Fatal(err)
	}
	for i := range sphere {
		if sphere[i] != f.target[i] {
			t.Fatalf("sphere target %d changed on reselect", i)
		}
	}

	if err := f.SelectTemplate(shape.TemplateHeart); err != nil {
		t.Fatal(err)
	}
	heart := append([]float32(nil), f.target...)
	if err := f.SelectTemplate(shape.TemplateHeart); err != nil {
		t.Fatal(err)
	}
	differs := false
	for i := range heart {
		if heart[i] != f.target[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatal("expected heart reselect to draw a new layout")
	}
}

func TestFillTargetPadsShortOutput(t *testing.T) {
	f := newTestField(t, Options{Count: 10})
	f.fillTarget([]shape.Point{{X: 9, Y: 9, Z: 9}})

	if f.target[0] != 9 || f.target[1] != 9 || f.target[2] != 9 {
		t.Fatalf("expected first point copied, got %v", f.target[:3])
	}
	for i, v := range f.target[3:] {
		if v < -0.5 || v > 0.5 {
			t.Fatalf("padding value %d outside jitter range: %v", i, v)
		}
	}
}

func TestSetColor(t *testing.T) {
	f := newTestField(t, Options{Count: 4})

	if err := f.SetColor("#ff8800"); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if got := f.Color().Hex(); got != "#ff8800" {
		t.Fatalf("expected #ff8800, got %s", got)
	}
	if err := f.SetColor("orange"); err == nil {
		t.Fatal("expected invalid hex to fail")
	}
	if got := f.Color().Hex(); got != "#ff8800" {
		t.Fatalf("failed SetColor must keep the old color, got %s", got)
	}

	if err := f.SetColorValue(color.RGBA{R: 0, G: 255, B: 0, A: 255}); err != nil {
		t.Fatalf("SetColorValue: %v", err)
	}
	if got := f.Color().Hex(); got != "#00ff00" {
		t.Fatalf("expected #00ff00, got %s", got)
	}
	if err := f.SetColorValue(color.RGBA{}); err == nil {
		t.Fatal("expected transparent color to be rejected")
	}
}

func TestSignalClampsAndOverwrites(t *testing.T) {
	var s Signal
	if got := s.Load(); got != (Reading{}) {
		t.Fatalf("expected zero reading, got %+v", got)
	}

	tests := []struct {
		in   float64
		want float64
	}{
		{0.4, 0.4},
		{1.7, 1},
		{-0.2, 0},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, tt := range tests {
		s.Update(tt.in, true)
		if got := s.Load(); got.Tension != tt.want || !got.Present {
			t.Errorf("Update(%v) read back %+v, want tension %v", tt.in, got, tt.want)
		}
	}

	s.Update(0.9, true)
	s.Update(0.3, false)
	if got := s.Load(); got.Tension != 0.3 || got.Present {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestSignalConcurrentWritersWithStep(t *testing.T) {
	f := newTestField(t, Options{Count: 256, Template: shape.TemplateFireworks})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
					f.UpdateSignal(float64((i+w)%10)/9, i%2 == 0)
				}
			}
		}(w)
	}
	for i := 0; i < 200; i++ {
		f.Step(1.0 / 60)
	}
	close(stop)
	wg.Wait()

	if len(f.Positions()) != 3*256 {
		t.Fatalf("buffer resized to %d", len(f.Positions()))
	}
	assertFinite(t, f.Positions())
}
