// Package session assembles the pieces every frontend shares from the
// command-line settings: the field, the signal tap, the star field and the
// background signal source.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/hand"
	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/shape"
	"github.com/iburimskiy/particle-morph/internal/view"
)

// pulsePeriod is one full open/close cycle of the synthetic detector.
const pulsePeriod = 6 * time.Second

type Session struct {
	Settings config.Settings
	Field    *morph.Field
	// Tap sits between every signal source and the field.
	Tap   *hand.Tap
	Stars []view.Star
}

func New(s config.Settings) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	t, err := shape.ParseTemplate(s.Template)
	if err != nil {
		return nil, err
	}

	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	field, err := morph.New(morph.Options{
		Count:         s.Count,
		Template:      t,
		DampingRate:   config.DampingRate,
		RotationSpeed: config.RotationSpeed,
		Color:         s.Color,
		Rand:          rng,
		Collapsed:     s.Collapsed,
	})
	if err != nil {
		return nil, fmt.Errorf("build field: %w", err)
	}

	logging.Logger().Debug("session ready", "count", s.Count, "template", t.String(), "signal", s.Signal, "seed", seed)
	return &Session{
		Settings: s,
		Field:    field,
		Tap:      hand.NewTap(field, config.TraceSize),
		Stars:    view.Stars(config.StarCount, rng),
	}, nil
}

// Keys reports whether the frontend's keyboard drives the signal.
func (s *Session) Keys() bool {
	return s.Settings.Signal == config.SignalKeys
}

// StartSignal launches the configured background source until ctx is done.
// The channel carries the source's terminal error, if any, and is closed
// when the source stops. Keyboard mode starts nothing and returns a nil channel.
func (s *Session) StartSignal(ctx context.Context) <-chan error {
	var run func() error
	switch s.Settings.Signal {
	case config.SignalWS:
		srv := hand.NewServer(s.Tap)
		run = func() error { return srv.ListenAndServe(ctx, s.Settings.Listen) }
	case config.SignalPulse:
		p := hand.Pulse{Period: pulsePeriod, Amplitude: 1, Rate: config.SignalRate}
		run = func() error { p.Run(ctx, s.Tap); return nil }
	default:
		return nil
	}

	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		if err := run(); err != nil {
			logging.Logger().Error("signal source stopped", "signal", s.Settings.Signal, "err", err)
			errc <- err
		}
	}()
	return errc
}
