// Command particles-tty runs the particle field in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/session"
	"github.com/iburimskiy/particle-morph/internal/tty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Defaults()
	settings.Count = config.ParticleCount / 4
	settings.Bind(flag.CommandLine)
	logFile := flag.String("log-file", "", "write logs to this file; the screen owns stderr")
	fps := flag.Int("fps", config.TerminalFPS, "frames per second")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logging.SetLogger(logging.New(settings.LogLevel, f))
	}

	sess, err := session.New(settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sess.StartSignal(ctx)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	opts := tty.Options{Field: sess.Field, Stars: sess.Stars, FPS: *fps}
	if sess.Keys() {
		opts.Sink = sess.Tap
	}
	return tty.New(screen, opts).Run(ctx)
}
