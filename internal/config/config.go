package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Particle field
	ParticleCount = 10000
	DampingRate   = 4.0
	RotationSpeed = 0.1
	DefaultColor  = "#00ffff"

	// Camera
	CameraDistance = 5.5
	CameraFOV      = 60.0
	PointAlpha     = 0.8
	StarCount      = 3000

	// Control signal
	SignalRate    = 30
	TraceSize     = 256
	ListenAddress = "127.0.0.1:8765"

	// Terminal and snapshot output
	TerminalFPS    = 30
	SnapshotWidth  = 1024
	SnapshotHeight = 768
)

// FramePeriod is the nominal step used when a frontend runs on a fixed tick.
const FramePeriod = time.Second / 60

// Signal modes select what feeds the control signal slot.
const (
	SignalKeys  = "keys"
	SignalWS    = "ws"
	SignalPulse = "pulse"
)

// Settings is the runtime-tunable subset shared by the commands.
type Settings struct {
	Count     int
	Template  string
	Color     string
	Signal    string
	Listen    string
	Music     string
	LogLevel  string
	Seed      uint64
	Collapsed bool
}

func Defaults() Settings {
	return Settings{
		Count:     ParticleCount,
		Template:  "sphere",
		Color:     DefaultColor,
		Signal:    SignalKeys,
		Listen:    ListenAddress,
		LogLevel:  "info",
		Collapsed: true,
	}
}

// Bind registers the settings as flags on fs, using the current values as defaults.
func (s *Settings) Bind(fs *flag.FlagSet) {
	fs.IntVar(&s.Count, "count", s.Count, "number of particles")
	fs.StringVar(&s.Template, "template", s.Template, "initial template (sphere, heart, flower, saturn, buddha, fireworks)")
	fs.StringVar(&s.Color, "color", s.Color, "particle color as #rrggbb")
	fs.StringVar(&s.Signal, "signal", s.Signal, "control signal source (keys, ws, pulse)")
	fs.StringVar(&s.Listen, "listen", s.Listen, "address of the hand detector websocket server")
	fs.StringVar(&s.Music, "music", s.Music, "soundtrack file (wav, mp3, flac)")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "log level (debug, info, warn, error)")
	fs.Uint64Var(&s.Seed, "seed", s.Seed, "random seed, 0 picks one from the clock")
	fs.BoolVar(&s.Collapsed, "collapsed", s.Collapsed, "start with every particle at the origin")
}

func (s Settings) Validate() error {
	if s.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", s.Count)
	}
	if _, err := colorful.Hex(s.Color); err != nil {
		return fmt.Errorf("invalid color %q: %w", s.Color, err)
	}
	switch s.Signal {
	case SignalKeys, SignalWS, SignalPulse:
	default:
		return fmt.Errorf("unknown signal source %q", s.Signal)
	}
	if s.Signal == SignalWS && s.Listen == "" {
		return errors.New("listen address is required for the ws signal source")
	}
	return nil
}
