// Package tty draws the particle field as density glyphs in a terminal.
package tty

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/hand"
	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/shape"
	"github.com/iburimskiy/particle-morph/internal/view"
)

// ramp orders glyphs by how much of a cell they cover.
const ramp = " .:-=+*#%@"

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

type Options struct {
	Field *morph.Field
	// Sink receives the Space-key squeeze. Nil leaves the signal to
	// another source and disables the key.
	Sink  hand.Sink
	Stars []view.Star
	FPS   int
}

// App owns the screen and steps the field once per tick.
type App struct {
	screen  tcell.Screen
	field   *morph.Field
	sink    hand.Sink
	squeeze *hand.Squeeze
	holding bool
	fps     int

	scene  view.Scene
	canvas *view.Canvas
	start  time.Time
	last   time.Time
	err    error
}

// New wraps an initialised screen.
func New(screen tcell.Screen, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = config.TerminalFPS
	}
	a := &App{
		screen:  screen,
		field:   opts.Field,
		sink:    opts.Sink,
		squeeze: hand.NewSqueeze(opts.FPS),
		fps:     opts.FPS,
		scene: view.Scene{
			Camera: view.Camera{Distance: config.CameraDistance, FOV: config.CameraFOV, Aspect: cellAspect},
			Stars:  opts.Stars,
			Alpha:  config.PointAlpha,
		},
		start: time.Now(),
	}
	a.resize()
	return a
}

func (a *App) resize() {
	w, h := a.screen.Size()
	// Top row is the status line.
	h--
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	a.scene.Camera.Width, a.scene.Camera.Height = w, h
	a.canvas = view.NewCanvas(w, h)
}

// Run drives the tick loop until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	a.last = time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.tick(now.Sub(a.last).Seconds())
			a.last = now
			a.Draw()
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

// handleKey applies one key press and reports whether to keep running.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch {
	case r == 'q' || r == 'Q':
		return false
	case r >= '1' && r <= '6':
		t := shape.Templates[r-'1']
		if err := a.field.SelectTemplate(t); err != nil {
			a.err = err
			return true
		}
		logging.Logger().Info("template selected", "template", t.String())
	case r == ' ':
		if a.sink != nil {
			a.holding = !a.holding
		}
	}
	return true
}

func (a *App) tick(delta float64) {
	if a.sink != nil {
		a.squeeze.Feed(a.sink, a.holding)
	}
	a.field.Step(delta)
}

// Draw renders one frame to the screen.
func (a *App) Draw() {
	a.scene.Render(a.canvas, a.field.Positions(), a.field.Rotation(), a.field.Color(), time.Since(a.start).Seconds())

	a.screen.Clear()
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < a.canvas.Height; y++ {
		for x := 0; x < a.canvas.Width; x++ {
			glyph, col := cell(a.canvas.At(x, y))
			a.screen.SetContent(x, y+1, glyph, nil, bg.Foreground(col))
		}
	}
	a.drawStatus()
	a.screen.Show()
}

// cell maps accumulated light to a glyph and its hue at full brightness.
func cell(c colorful.Color) (rune, tcell.Color) {
	v := math.Max(c.R, math.Max(c.G, c.B))
	level := 1 - math.Exp(-v)
	idx := int(level*float64(len(ramp)-1) + 0.5)
	if idx <= 0 || v <= 0 {
		return ' ', tcell.ColorBlack
	}
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return rune(ramp[idx]), tcell.NewRGBColor(channel(c.R/v), channel(c.G/v), channel(c.B/v))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

func (a *App) drawStatus() {
	r := a.field.Signal()
	state := "SEARCHING..."
	if r.Present {
		state = "HANDS CONNECTED"
	}
	line := fmt.Sprintf(" %s  %s  tension %3.0f%%  1-6 shape", state, a.field.Template().Label(), r.Tension*100)
	if a.sink != nil {
		line += "  space squeeze"
	}
	line += "  q quit"
	if a.err != nil {
		line += "  error: " + a.err.Error()
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	w, _ := a.screen.Size()
	x := 0
	for _, ch := range line {
		if x >= w {
			break
		}
		a.screen.SetContent(x, 0, ch, nil, style)
		x++
	}
}
