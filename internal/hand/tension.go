// Package hand turns hand-landmark detections into the single tension value
// that drives the particle field, and carries them in from external sources.
package hand

import "math"

// Landmark is one normalized hand keypoint as produced by the detector:
// x and y in image space [0,1], z relative depth.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sink receives control signal updates. *morph.Field implements it.
type Sink interface {
	UpdateSignal(tension float64, present bool)
}

const (
	// LandmarksPerHand is the keypoint count of a complete hand.
	LandmarksPerHand = 21
	// MaxHands caps how many detected hands are averaged.
	MaxHands = 2

	wrist = 0

	// Mean wrist-to-fingertip distance of a fist and of an open palm.
	closedDistance = 0.15
	openDistance   = 0.35
)

var fingertips = [...]int{4, 8, 12, 16, 20}

// HandTension scores one hand: 1 for a closed fist, 0 for an open palm.
func HandTension(landmarks []Landmark) float64 {
	w := landmarks[wrist]
	var sum float64
	for _, idx := range fingertips {
		tip := landmarks[idx]
		sum += math.Hypot(tip.X-w.X, tip.Y-w.Y)
	}
	avg := sum / float64(len(fingertips))
	open := (avg - closedDistance) / (openDistance - closedDistance)
	return 1 - math.Min(math.Max(open, 0), 1)
}

// Tension averages the grip over the detected hands. Incomplete hands are
// skipped; with no usable hand it reports (0, false).
func Tension(hands [][]Landmark) (float64, bool) {
	var total float64
	n := 0
	for _, lm := range hands {
		if n == MaxHands {
			break
		}
		if len(lm) < LandmarksPerHand {
			continue
		}
		total += HandTension(lm)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}
