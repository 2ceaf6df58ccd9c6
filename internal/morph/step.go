package morph

import (
	"math"

	"github.com/iburimskiy/particle-morph/internal/shape"
)

const (
	// NoiseThreshold is the tension above which targets start to shake.
	NoiseThreshold = 0.1

	fireworksNoise = 2.5
	shapeNoise     = 0.2

	// MaxDelta caps a single step so a long stall cannot spin the cloud
	// arbitrarily far. Damping already saturates well below it.
	MaxDelta = 1.0
)

// ExpansionFactor scales the target positions for the given grip.
// Fireworks sit collapsed at rest and burst as tension rises; every other
// template holds its size and inflates moderately.
func ExpansionFactor(t shape.Template, tension float64) float64 {
	if t == shape.TemplateFireworks {
		return 0.1 + tension*15.0
	}
	return 1.0 + tension*2.0
}

// NoiseAmplitude is the full width of the per-axis jitter at tension 1.
func NoiseAmplitude(t shape.Template) float64 {
	if t == shape.TemplateFireworks {
		return fireworksNoise
	}
	return shapeNoise
}

// Damping is the fraction of the remaining distance covered in delta seconds.
func Damping(rate, delta float64) float64 {
	return clamp01(rate * delta)
}

// Step advances the field by delta seconds. Current positions approach the
// scaled, possibly jittered, target exponentially and never overshoot.
// Negative or NaN deltas are treated as zero.
func (f *Field) Step(delta float64) {
	if math.IsNaN(delta) || delta < 0 {
		delta = 0
	}
	if delta > MaxDelta {
		delta = MaxDelta
	}
	sig := f.signal.Load()

	f.mu.Lock()
	defer f.mu.Unlock()

	damping := Damping(f.dampingRate, delta)
	expansion := ExpansionFactor(f.template, sig.Tension)
	noise := 0.0
	if sig.Tension > NoiseThreshold {
		noise = NoiseAmplitude(f.template) * sig.Tension
	}

	cur, tgt := f.current, f.target
	for i := range cur {
		goal := float64(tgt[i]) * expansion
		if noise > 0 {
			goal += (f.rng.Float64() - 0.5) * noise
		}
		c := float64(cur[i])
		cur[i] = float32(c + (goal-c)*damping)
	}

	f.frame++
	f.rotation = math.Mod(f.rotation+f.rotationSpeed*delta, 2*math.Pi)
	if f.rotation < 0 {
		f.rotation += 2 * math.Pi
	}
}
