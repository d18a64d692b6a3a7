// Package loop runs the menus and the frame loop on a terminal.
package loop

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/spaceshooter/internal/audio"
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/status"
	"github.com/tomz197/spaceshooter/internal/world"
)

// maxFrameDelta caps the time step after a stall (e.g. a suspended terminal).
const maxFrameDelta = 0.25

// Options configures a game loop. Zero values pick defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Settings     config.Settings
	Store        status.HighScores
	Audio        audio.Sink
	Logger       *log.Logger
	Rand         *rand.Rand
}

// NewGameFromOptions builds a session and its menus from opts.
func NewGameFromOptions(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		seed := opts.Settings.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}
	session := world.NewSession(world.Options{
		Screen: physics.V(opts.Settings.Width, opts.Settings.Height),
		Mode:   config.ModeClassic,
		Store:  opts.Store,
		Audio:  opts.Audio,
		Rand:   opts.Rand,
		Logger: opts.Logger,
	})
	return NewGame(session, opts.Logger)
}

// viewport keeps a canvas fitted to the terminal.
type viewport struct {
	canvas   *draw.Canvas
	termSize draw.TermSizeFunc
	termW    int
	termH    int
}

func newViewport(screen physics.Vec2, termSize draw.TermSizeFunc) *viewport {
	return &viewport{
		canvas:   draw.NewScaledCanvas(1, 1, screen.X, screen.Y),
		termSize: termSize,
	}
}

// fit resizes the canvas after a terminal resize and reports whether the
// terminal changed.
func (v *viewport) fit() (bool, error) {
	termW, termH, err := v.termSize()
	if err != nil {
		return false, err
	}
	if termW == v.termW && termH == v.termH {
		return false, nil
	}
	v.termW, v.termH = termW, termH

	width, height, offCol, offRow := draw.FitTermSize(termW, termH,
		config.MaxTermWidth, config.MaxTermHeight,
		v.canvas.LogicalWidth(), v.canvas.LogicalHeight())
	v.canvas.Resize(width, height)
	v.canvas.SetOffset(offCol, offRow)
	return true, nil
}

// Run starts the main game loop on a raw ANSI terminal with the standard
// Input → Update → Draw cycle. It returns when the player quits or r closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	game := NewGameFromOptions(opts)
	stream := input.StartStream(r)
	view := newViewport(game.Session().Screen(), opts.TermSizeFunc)
	cw := draw.NewChunkWriter(w)

	draw.HideCursor(cw)
	draw.ClearScreen(cw)
	if err := cw.Flush(); err != nil {
		return err
	}
	defer func() {
		draw.ClearScreen(cw)
		draw.ShowCursor(cw)
		cw.Flush()
	}()

	return drive(game, stream, func() error {
		resized, err := view.fit()
		if err != nil {
			return err
		}
		if resized || game.TakeChanged() {
			draw.ClearScreen(cw)
			view.canvas.ForceRedraw()
		}

		view.canvas.Clear()
		game.Draw(view.canvas)
		view.canvas.Render(cw)
		view.canvas.RenderBorder(cw)
		return cw.Flush()
	})
}

// RunScreen is Run for an initialised tcell screen. The caller owns the
// screen and finalises it afterwards.
func RunScreen(screen tcell.Screen, opts Options) error {
	game := NewGameFromOptions(opts)
	stream := input.StartScreenStream(screen)
	view := newViewport(game.Session().Screen(), draw.ScreenSizeFunc(screen))

	screen.HideCursor()
	screen.Clear()

	return drive(game, stream, func() error {
		resized, err := view.fit()
		if err != nil {
			return err
		}
		if resized || game.TakeChanged() {
			screen.Clear()
		}

		view.canvas.Clear()
		game.Draw(view.canvas)
		view.canvas.Present(screen)
		return nil
	})
}

// drive runs frames until the game stops running or render fails.
func drive(game *Game, stream *input.Stream, render func() error) error {
	lastTime := time.Now()
	state := game.State()

	for {
		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime).Seconds(), maxFrameDelta)
		lastTime = frameStart

		// ===== INPUT / UPDATE PHASE =====
		if !game.Update(input.ReadInput(stream), dt) {
			return nil
		}
		if s := game.State(); s != state {
			// Keys held on the old screen must not leak into the new one
			input.Reset(stream)
			state = s
		}

		// ===== DRAW PHASE =====
		if err := render(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
}
