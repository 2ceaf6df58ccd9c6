package hand

import (
	"context"
	"math"
	"time"
)

// Pulse is a synthetic detector that breathes the tension between 0 and
// Amplitude, for running without a camera.
type Pulse struct {
	Period    time.Duration
	Amplitude float64
	Rate      int
}

// At returns the tension after elapsed time.
func (p Pulse) At(elapsed time.Duration) float64 {
	if p.Period <= 0 {
		return 0
	}
	phase := 2 * math.Pi * float64(elapsed) / float64(p.Period)
	return (1 - math.Cos(phase)) / 2 * p.Amplitude
}

// Run feeds the sink at Rate updates per second until ctx is done.
// The sink is left at (0, false) on return.
func (p Pulse) Run(ctx context.Context, sink Sink) {
	rate := p.Rate
	if rate <= 0 {
		rate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			sink.UpdateSignal(0, false)
			return
		case now := <-ticker.C:
			sink.UpdateSignal(p.At(now.Sub(start)), true)
		}
	}
}
