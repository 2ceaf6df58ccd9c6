package hand

import (
	"sync"

	"github.com/iburimskiy/particle-morph/internal/morph"
)

// Tap wraps a Sink and records every update into a ring buffer so the HUD
// can draw the recent signal history.
type Tap struct {
	Sink      Sink
	buffer    []morph.Reading
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func NewTap(sink Sink, ringSize int) *Tap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &Tap{
		Sink:   sink,
		buffer: make([]morph.Reading, ringSize),
	}
}

func (t *Tap) UpdateSignal(tension float64, present bool) {
	t.Sink.UpdateSignal(tension, present)

	t.mu.Lock()
	t.buffer[t.nextIndex] = morph.Reading{Tension: tension, Present: present}
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
	t.mu.Unlock()
}

// Snapshot returns up to the last n readings, oldest first.
func (t *Tap) Snapshot(n int) []morph.Reading {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.filled {
		n = t.filled
	}
	if n <= 0 {
		return nil
	}
	out := make([]morph.Reading, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}
