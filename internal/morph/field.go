// Package morph holds the particle field: the current and target position
// buffers, the active template, the display color and the hand signal slot,
// plus the per-frame animation step that pulls current toward target.
//
// Step and SelectTemplate are serialized by the field; UpdateSignal may be
// called from any goroutine at any time.
package morph

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/shape"
)

const (
	DefaultCount         = 10000
	DefaultDampingRate   = 4.0
	DefaultRotationSpeed = 0.1
	DefaultColor         = "#00ffff"
)

// Options configures a Field. Zero values pick the defaults above.
type Options struct {
	Count         int
	Template      shape.Template
	DampingRate   float64
	RotationSpeed float64
	Color         string
	// Rand drives the stochastic templates and the tension jitter.
	// Nil seeds one from the clock.
	Rand *rand.Rand
	// Collapsed starts every particle at the origin instead of on the
	// initial template, so the first frames bloom outward.
	Collapsed bool
}

// Field is the morph state. Buffers are allocated once and never resized.
type Field struct {
	mu sync.Mutex

	current  []float32
	target   []float32
	template shape.Template
	color    colorful.Color
	rotation float64
	frame    uint64

	dampingRate   float64
	rotationSpeed float64
	rng           *rand.Rand

	signal Signal
}

func New(opts Options) (*Field, error) {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.DampingRate <= 0 {
		opts.DampingRate = DefaultDampingRate
	}
	if opts.RotationSpeed == 0 {
		opts.RotationSpeed = DefaultRotationSpeed
	}
	if opts.Color == "" {
		opts.Color = DefaultColor
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	col, err := colorful.Hex(opts.Color)
	if err != nil {
		return nil, fmt.Errorf("parse color %q: %w", opts.Color, err)
	}

	f := &Field{
		current:       make([]float32, opts.Count*3),
		target:        make([]float32, opts.Count*3),
		color:         col,
		dampingRate:   opts.DampingRate,
		rotationSpeed: opts.RotationSpeed,
		rng:           opts.Rand,
	}
	if err := f.SelectTemplate(opts.Template); err != nil {
		return nil, err
	}
	if !opts.Collapsed {
		copy(f.current, f.target)
	}
	return f, nil
}

// SelectTemplate regenerates the whole target buffer for t. The current
// buffer is left alone so particles travel from wherever they are.
// Reselecting the active template regenerates it too.
func (f *Field) SelectTemplate(t shape.Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pts, err := shape.Generate(t, f.Count(), f.rng)
	if err != nil {
		return fmt.Errorf("select template %d: %w", int(t), err)
	}
	f.fillTarget(pts)
	f.template = t

	logging.Logger().Debug("template selected", "template", t.String(), "points", len(pts))
	return nil
}

// fillTarget writes pts into the target buffer. Slots the generator did not
// cover get a small jitter around the origin so no stale positions survive.
func (f *Field) fillTarget(pts []shape.Point) {
	n := f.Count()
	for i := 0; i < n; i++ {
		var p shape.Point
		if i < len(pts) {
			p = pts[i]
		} else {
			p = shape.Point{X: f.rng.Float64() - 0.5, Y: f.rng.Float64() - 0.5, Z: f.rng.Float64() - 0.5}
		}
		f.target[i*3] = float32(p.X)
		f.target[i*3+1] = float32(p.Y)
		f.target[i*3+2] = float32(p.Z)
	}
}

// UpdateSignal overwrites the hand signal slot. Safe from any goroutine.
func (f *Field) UpdateSignal(tension float64, present bool) {
	f.signal.Update(tension, present)
}

// Signal returns the last written hand reading.
func (f *Field) Signal() Reading {
	return f.signal.Load()
}

// Positions returns the current buffer, 3 floats per particle. It is updated
// in place by Step; read it on the goroutine that calls Step.
func (f *Field) Positions() []float32 {
	return f.current
}

// Count is the number of particles.
func (f *Field) Count() int {
	return len(f.current) / 3
}

func (f *Field) Template() shape.Template {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.template
}

// Rotation is the cosmetic yaw of the whole cloud in radians, in [0, 2π).
func (f *Field) Rotation() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation
}

// Frame counts completed steps. Adapters compare it to skip redundant uploads.
func (f *Field) Frame() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}

func (f *Field) Color() colorful.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.color
}

// SetColor sets the display color from a #rrggbb string.
func (f *Field) SetColor(hex string) error {
	col, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", hex, err)
	}
	f.mu.Lock()
	f.color = col
	f.mu.Unlock()
	return nil
}

// SetColorValue sets the display color from any color.Color.
// Fully transparent colors are rejected.
func (f *Field) SetColorValue(c color.Color) error {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return fmt.Errorf("color %v is fully transparent", c)
	}
	f.mu.Lock()
	f.color = col
	f.mu.Unlock()
	return nil
}
