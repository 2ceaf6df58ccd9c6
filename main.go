package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-morph/internal/audio"
	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/game"
	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Defaults()
	settings.Bind(flag.CommandLine)
	flag.Parse()

	logging.SetLogger(logging.New(settings.LogLevel, os.Stderr))

	sess, err := session.New(settings)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// A failed source is logged and leaves the field idle; the window stays up.
	sess.StartSignal(ctx)

	player := &audio.Player{}
	defer player.Close()
	if settings.Music != "" {
		if err := player.Open(settings.Music); err != nil {
			return fmt.Errorf("open soundtrack: %w", err)
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Particle Morph - 1-6: shape, C: color, O: music, Esc/Q: quit")

	g := game.New(game.Options{
		Field:  sess.Field,
		Tap:    sess.Tap,
		Keys:   sess.Keys(),
		Player: player,
		Stars:  sess.Stars,
	})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
