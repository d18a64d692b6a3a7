package loop

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/world"
)

// GameState represents the current screen shown to the player.
type GameState int

const (
	GameStateMainMenu     GameState = iota // Title screen
	GameStateInstructions                  // Controls and rules
	GameStateModeSelect                    // Classic or free mode
	GameStatePlaying                       // Active gameplay
)

func (s GameState) String() string {
	switch s {
	case GameStateMainMenu:
		return "main-menu"
	case GameStateInstructions:
		return "instructions"
	case GameStateModeSelect:
		return "mode-select"
	case GameStatePlaying:
		return "playing"
	}
	return "unknown"
}

// Game drives one Session through the menus. It is not safe for
// concurrent use.
type Game struct {
	session *world.Session
	logger  *log.Logger
	state   GameState
	running bool
	changed bool // Screen switched since the last TakeChanged
	played  bool // At least one game has finished
}

// NewGame wraps session, starting at the main menu.
func NewGame(session *world.Session, logger *log.Logger) *Game {
	return &Game{
		session: session,
		logger:  logger,
		state:   GameStateMainMenu,
		running: true,
		changed: true,
	}
}

// State returns the current screen.
func (g *Game) State() GameState {
	return g.state
}

// Session returns the game session being driven.
func (g *Game) Session() *world.Session {
	return g.session
}

// Running reports whether the player has not quit yet.
func (g *Game) Running() bool {
	return g.running
}

// TakeChanged reports whether the screen switched since the last call.
func (g *Game) TakeChanged() bool {
	changed := g.changed
	g.changed = false
	return changed
}

func (g *Game) setState(s GameState) {
	if s == g.state {
		return
	}
	g.logger.Debug("screen", "from", g.state, "to", s)
	g.state = s
	g.changed = true
}

// Update handles one frame of input and advances the game if one is being
// played. It returns false once the player has quit.
func (g *Game) Update(in input.Input, dt float64) bool {
	if !g.running {
		return false
	}
	if in.Quit {
		g.quit()
		return false
	}

	switch g.state {
	case GameStateMainMenu:
		g.updateMainMenu(in)
	case GameStateInstructions:
		if in.JustPressed(input.Key1) || in.JustPressed(input.KeyEscape) {
			g.setState(GameStateMainMenu)
		}
	case GameStateModeSelect:
		g.updateModeSelect(in)
	case GameStatePlaying:
		g.updatePlaying(in, dt)
	}
	return g.running
}

func (g *Game) updateMainMenu(in input.Input) {
	switch {
	case in.JustPressed(input.Key1), in.JustPressed(input.KeyEnter):
		g.setState(GameStateModeSelect)
	case in.JustPressed(input.Key2):
		g.setState(GameStateInstructions)
	case in.JustPressed(input.Key3), in.JustPressed(input.KeyQuit):
		g.quit()
	}
}

func (g *Game) updateModeSelect(in input.Input) {
	switch {
	case in.JustPressed(input.Key1):
		g.start(config.ModeClassic)
	case in.JustPressed(input.Key2):
		g.start(config.ModeFree)
	case in.JustPressed(input.Key3), in.JustPressed(input.KeyEscape):
		g.setState(GameStateMainMenu)
	}
}

func (g *Game) updatePlaying(in input.Input, dt float64) {
	if in.JustPressed(input.KeyEscape) || in.JustPressed(input.KeyQuit) {
		g.leave()
		return
	}

	g.session.Update(in, dt)
	if g.session.Over() {
		g.played = true
		g.setState(GameStateMainMenu)
	}
}

func (g *Game) start(mode config.Mode) {
	if err := g.session.Restart(mode); err != nil {
		g.logger.Error("save high score", "err", err)
	}
	g.logger.Info("game started", "mode", mode, "high", g.session.Status.HighScore)
	g.setState(GameStatePlaying)
}

// leave abandons the game in progress, keeping a beaten high score.
func (g *Game) leave() {
	if err := g.session.Close(); err != nil {
		g.logger.Error("save high score", "err", err)
	}
	g.logger.Info("game abandoned", "mode", g.session.Mode(), "score", g.session.Status.Score)
	g.setState(GameStateMainMenu)
}

func (g *Game) quit() {
	if g.state == GameStatePlaying {
		if err := g.session.Close(); err != nil {
			g.logger.Error("save high score", "err", err)
		}
	}
	g.running = false
}
