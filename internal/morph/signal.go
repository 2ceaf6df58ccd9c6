package morph

import (
	"math"
	"sync/atomic"
)

// Reading is one sample of the hand control signal.
type Reading struct {
	Tension float64
	Present bool
}

// Signal is a single-slot last-value cell. Writers overwrite, readers see the
// most recent write; nothing is queued. The zero value reads as no hand.
type Signal struct {
	v atomic.Pointer[Reading]
}

// Update stores a new reading. Tension is clamped to [0,1]; NaN reads as 0.
func (s *Signal) Update(tension float64, present bool) {
	s.v.Store(&Reading{Tension: clamp01(tension), Present: present})
}

// Load returns the latest reading.
func (s *Signal) Load() Reading {
	if r := s.v.Load(); r != nil {
		return *r
	}
	return Reading{}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
