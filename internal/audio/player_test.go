package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func writeSilence(t *testing.T, path string, samples int) beep.Format {
	t.Helper()
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return format
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "track.ogg"))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil || errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected an open error, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("not a riff header"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Decode(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDecodeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Loop.WAV")
	want := writeSilence(t, path, 2205)

	streamer, format, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer streamer.Close()

	if format.SampleRate != want.SampleRate || format.NumChannels != want.NumChannels {
		t.Fatalf("expected format %+v, got %+v", want, format)
	}
	if streamer.Len() != 2205 {
		t.Fatalf("expected 2205 samples, got %d", streamer.Len())
	}
}

func TestPlayerBeforeOpen(t *testing.T) {
	var p Player
	p.Toggle()
	if p.Playing() {
		t.Fatal("expected idle player not to be playing")
	}
	if p.Path() != "" {
		t.Fatalf("expected no path, got %q", p.Path())
	}
	if err := p.Close(); err != nil {
		t.Fatalf("expected clean close, got %v", err)
	}
}

func TestPlayerOpenRejectsUnsupported(t *testing.T) {
	var p Player
	if err := p.Open("song.txt"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if p.Path() != "" {
		t.Fatalf("expected failed open to leave no track, got %q", p.Path())
	}
}
