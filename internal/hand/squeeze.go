package hand

import "github.com/charmbracelet/harmonica"

// releaseFloor is where a released squeeze stops counting as a hand.
const releaseFloor = 0.01

// Squeeze is a keyboard stand-in for a detector: while the key is held the
// tension springs toward 1, and back toward 0 on release.
type Squeeze struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

// NewSqueeze builds a critically damped squeeze updated fps times a second.
func NewSqueeze(fps int) *Squeeze {
	return &Squeeze{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Update advances one tick and returns the tension in [0,1].
func (s *Squeeze) Update(held bool) float64 {
	target := 0.0
	if held {
		target = 1
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	if s.pos < 0 {
		s.pos, s.vel = 0, 0
	}
	if s.pos > 1 {
		s.pos, s.vel = 1, 0
	}
	return s.pos
}

// Value is the last tension returned by Update.
func (s *Squeeze) Value() float64 { return s.pos }

// Feed advances one tick and writes the squeeze to sink. A released squeeze
// stays present until it has nearly relaxed.
func (s *Squeeze) Feed(sink Sink, held bool) {
	t := s.Update(held)
	sink.UpdateSignal(t, held || t > releaseFloor)
}
