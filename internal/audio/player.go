// Package audio plays an optional looping soundtrack behind the particles.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/particle-morph/internal/logging"
)

// ErrUnsupported is returned for files whose extension has no decoder.
var ErrUnsupported = errors.New("unsupported audio file type")

// Patterns lists the file dialog filters matching Decode.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Decode opens path and picks a decoder from its extension. Closing the
// returned streamer closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// Player loops one soundtrack at a time through the speaker.
type Player struct {
	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	path     string
	initDone bool
}

// Open stops the current track and starts looping path.
func (p *Player) Open(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Chain: streamer -> loop -> ctrl
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, streamer)}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}

	p.closeLocked()
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.path = path

	speaker.Play(ctrl)
	logging.Logger().Info("soundtrack loaded",
		"file", filepath.Base(path),
		"rate", int(format.SampleRate),
		"length", format.SampleRate.D(streamer.Len()).Round(time.Second))
	return nil
}

// Toggle pauses or resumes playback. It does nothing before Open.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	speaker.Unlock()
}

// Playing reports whether a track is loaded and not paused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.ctrl.Paused
}

// Path is the file currently loaded, or "".
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Close stops playback and releases the file.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	return p.closeLocked()
}

func (p *Player) closeLocked() error {
	if p.streamer == nil {
		return nil
	}
	err := p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.path = ""
	return err
}
