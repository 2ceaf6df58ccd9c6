// Package game is the ebiten window frontend: it steps the field once per
// tick, draws it over a star field and overlays the hand HUD.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-morph/internal/audio"
	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/hand"
	"github.com/iburimskiy/particle-morph/internal/logging"
	"github.com/iburimskiy/particle-morph/internal/morph"
	"github.com/iburimskiy/particle-morph/internal/shape"
	"github.com/iburimskiy/particle-morph/internal/view"
)

const (
	// HUD layout
	hudX        = 12
	meterY      = 34
	meterWidth  = 200
	meterHeight = 8
	traceY      = 52
	traceHeight = 40
)

var templateKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

type Options struct {
	Field *morph.Field
	// Tap records the signal for the trace and, in keyboard mode, receives
	// the Space squeeze.
	Tap *hand.Tap
	// Keys makes Space the signal source.
	Keys   bool
	Player *audio.Player
	Stars  []view.Star
}

type Game struct {
	field   *morph.Field
	tap     *hand.Tap
	keys    bool
	squeeze *hand.Squeeze
	player  *audio.Player

	scene  view.Scene
	canvas *view.Canvas
	pixels []byte
	frame  *ebiten.Image

	// tension meter
	meter    harmonica.Spring
	meterPos float64
	meterVel float64

	elapsed float64
	start   time.Time
	lastErr error
}

func New(opts Options) *Game {
	w, h := config.WindowWidth, config.WindowHeight
	return &Game{
		field:   opts.Field,
		tap:     opts.Tap,
		keys:    opts.Keys,
		squeeze: hand.NewSqueeze(ebiten.DefaultTPS),
		player:  opts.Player,
		scene: view.Scene{
			Camera: view.Camera{Distance: config.CameraDistance, FOV: config.CameraFOV, Width: w, Height: h},
			Stars:  opts.Stars,
			Alpha:  config.PointAlpha,
		},
		canvas: view.NewCanvas(w, h),
		pixels: make([]byte, w*h*4),
		frame:  ebiten.NewImage(w, h),
		meter:  harmonica.NewSpring(harmonica.FPS(ebiten.DefaultTPS), 6.0, 0.7),
		start:  time.Now(),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for i, k := range templateKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.report(g.selectTemplate(shape.Templates[i]))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.report(g.pickColor())
	}
	if g.player != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			g.report(g.openSoundtrackDialog())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			g.player.Toggle()
		}
	}

	if g.keys && g.tap != nil {
		g.squeeze.Feed(g.tap, ebiten.IsKeyPressed(ebiten.KeySpace))
	}

	delta := 1.0 / float64(ebiten.TPS())
	g.field.Step(delta)
	g.elapsed += delta

	g.meterPos, g.meterVel = g.meter.Update(g.meterPos, g.meterVel, g.field.Signal().Tension)
	return nil
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.lastErr = err
	logging.Logger().Warn("window action failed", "err", err)
}

func (g *Game) selectTemplate(t shape.Template) error {
	if err := g.field.SelectTemplate(t); err != nil {
		return err
	}
	g.lastErr = nil
	logging.Logger().Info("template selected", "template", t.String())
	return nil
}

func (g *Game) pickColor() error {
	c, err := zenity.SelectColor(
		zenity.Title("Particle Color"),
		zenity.Color(g.field.Color()),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.field.SetColorValue(c)
}

func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.player.Open(filename)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Render(g.canvas, g.field.Positions(), g.field.Rotation(), g.field.Color(), g.elapsed)
	g.canvas.Resolve(g.pixels)
	g.frame.WritePixels(g.pixels)
	screen.DrawImage(g.frame, nil)

	g.drawMeter(screen)
	g.drawTrace(screen)
	g.drawStatus(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	r := g.field.Signal()
	state := "SEARCHING..."
	if r.Present {
		state = "HANDS CONNECTED"
	}
	status := fmt.Sprintf("%s | %s | %s | %s", state, g.field.Template().Label(), g.field.Color().Hex(), formatDuration(time.Since(g.start)))
	if g.player != nil {
		status += " | " + g.musicState()
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, hudX, 12)

	help := "1-6: shape  C: color  Esc/Q: quit"
	if g.keys {
		help = "Hold Space: squeeze  " + help
	}
	if g.player != nil {
		help += "  O: open music  M: play/pause"
	}
	ebitenutil.DebugPrintAt(screen, help, hudX, config.WindowHeight-24)
}

func (g *Game) musicState() string {
	path := g.player.Path()
	if path == "" {
		return "no music"
	}
	if g.player.Playing() {
		return "playing " + filepath.Base(path)
	}
	return "paused " + filepath.Base(path)
}

func (g *Game) drawMeter(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, hudX, meterY, meterWidth, meterHeight, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	fill := float32(clamp01(g.meterPos) * meterWidth)
	if fill > 0 {
		vector.DrawFilledRect(screen, hudX, meterY, fill, meterHeight, withAlpha(g.field.Color(), 0.9), false)
	}
	vector.StrokeRect(screen, hudX, meterY, meterWidth, meterHeight, 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
}

// drawTrace plots recent tension readings, oldest on the left.
func (g *Game) drawTrace(screen *ebiten.Image) {
	if g.tap == nil {
		return
	}
	readings := g.tap.Snapshot(config.TraceSize)
	if len(readings) < 2 {
		return
	}
	step := float32(meterWidth) / float32(config.TraceSize-1)
	x0 := float32(hudX) + float32(config.TraceSize-len(readings))*step
	y := func(t float64) float32 {
		return float32(traceY+traceHeight) - float32(clamp01(t))*traceHeight
	}
	line := withAlpha(g.field.Color(), 0.7)
	idle := color.RGBA{R: 90, G: 90, B: 90, A: 160}
	for i := 1; i < len(readings); i++ {
		c := line
		if !readings[i].Present {
			c = idle
		}
		xa := x0 + float32(i-1)*step
		vector.StrokeLine(screen, xa, y(readings[i-1].Tension), xa+step, y(readings[i].Tension), 1, c, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
