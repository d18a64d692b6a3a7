package loop

import (
	"bufio"
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/status"
	"github.com/tomz197/spaceshooter/internal/world"
)

const frame = 1.0 / config.TargetFPS

func press(keys ...input.Key) input.Input {
	return input.Input{Pressed: keys}
}

func newTestGame(t *testing.T) (*Game, *status.FileStore) {
	t.Helper()
	store := status.NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	game := NewGameFromOptions(Options{
		Store: store,
		Rand:  rand.New(rand.NewSource(5)),
	})
	return game, store
}

func TestMenuNavigation(t *testing.T) {
	game, _ := newTestGame(t)
	require.Equal(t, GameStateMainMenu, game.State())
	assert.True(t, game.TakeChanged())
	assert.False(t, game.TakeChanged())

	tests := []struct {
		name string
		in   input.Input
		want GameState
	}{
		{"open instructions", press(input.Key2), GameStateInstructions},
		{"back from instructions", press(input.Key1), GameStateMainMenu},
		{"open mode select", press(input.Key1), GameStateModeSelect},
		{"back from mode select", press(input.Key3), GameStateMainMenu},
		{"enter also plays", press(input.KeyEnter), GameStateModeSelect},
		{"escape backs out", press(input.KeyEscape), GameStateMainMenu},
		{"unbound key is ignored", press(input.KeyFire), GameStateMainMenu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, game.Update(tt.in, frame))
			assert.Equal(t, tt.want, game.State())
		})
	}
}

func TestStartModes(t *testing.T) {
	for _, mode := range config.Modes {
		t.Run(mode.String(), func(t *testing.T) {
			game, _ := newTestGame(t)
			game.Update(press(input.Key1), frame)
			game.Update(press(input.Key1+input.Key(mode)), frame)

			assert.Equal(t, GameStatePlaying, game.State())
			assert.Equal(t, mode, game.Session().Mode())
			assert.False(t, game.Session().Player.IsDead())
		})
	}
}

func TestExitFromMainMenu(t *testing.T) {
	game, _ := newTestGame(t)
	assert.False(t, game.Update(press(input.Key3), frame))
	assert.False(t, game.Running())
	assert.False(t, game.Update(input.Input{}, frame), "stays stopped")
}

func TestQuitSavesGameInProgress(t *testing.T) {
	game, store := newTestGame(t)
	game.Update(press(input.Key1), frame)
	game.Update(press(input.Key2), frame)
	game.Session().Status.AddPoints(400)

	assert.False(t, game.Update(input.Input{Quit: true}, frame))
	saved, err := store.Load(config.ModeFree)
	require.NoError(t, err)
	assert.Equal(t, 400, saved)
}

func TestEscapeLeavesGame(t *testing.T) {
	game, store := newTestGame(t)
	game.Update(press(input.Key1), frame)
	game.Update(press(input.Key1), frame)
	game.Session().Status.AddPoints(120)

	assert.True(t, game.Update(press(input.KeyEscape), frame))
	assert.Equal(t, GameStateMainMenu, game.State())
	assert.True(t, game.Running())

	saved, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Equal(t, 120, saved)
}

func TestGameOverReturnsToMenu(t *testing.T) {
	game, _ := newTestGame(t)
	game.Update(press(input.Key1), frame)
	game.Update(press(input.Key1), frame)

	s := game.Session()
	s.Status.Lives = 1
	s.Status.AddPoints(90)
	seeker := object.NewSeeker(s.Player.Position)
	seeker.Activate()
	s.Registry.Add(seeker)

	for i := 0; i <= config.GameOverFrames+1 && game.State() == GameStatePlaying; i++ {
		game.Update(input.Input{}, frame)
	}
	assert.Equal(t, GameStateMainMenu, game.State())
	assert.Equal(t, 90, s.LastScore())

	text := &textRecorder{}
	game.Draw(text)
	assert.Contains(t, text.lines, "Last score: 90")
}

type textRecorder struct {
	lines   []string
	sprites int
}

func (r *textRecorder) DrawSprite(draw.Visual, physics.Vec2, draw.Tint, float64, physics.Vec2, physics.Vec2) {
	r.sprites++
}

func (r *textRecorder) DrawText(text string, _ physics.Vec2, _ draw.Tint) {
	r.lines = append(r.lines, text)
}

func (r *textRecorder) DrawTextCentered(text string, _ physics.Vec2, _ draw.Tint) {
	r.lines = append(r.lines, text)
}

func TestDrawScreens(t *testing.T) {
	game, _ := newTestGame(t)

	menu := &textRecorder{}
	game.Draw(menu)
	assert.Contains(t, menu.lines, "2  Instructions")
	assert.NotContains(t, strings.Join(menu.lines, "\n"), "Last score")
	assert.Zero(t, menu.sprites)

	game.Update(press(input.Key2), frame)
	help := &textRecorder{}
	game.Draw(help)
	assert.Contains(t, help.lines, "1  Back")

	game.Update(press(input.Key1), frame)
	game.Update(press(input.Key1), frame)
	modes := &textRecorder{}
	game.Draw(modes)
	assert.Equal(t, []string{"Select mode", "1  Classic", "2  Free", "3  Back"}, modes.lines)
}

func TestPlayingHUD(t *testing.T) {
	game, _ := newTestGame(t)
	game.Update(press(input.Key1), frame)
	game.Update(press(input.Key1), frame)

	st := game.Session().Status
	st.AddPoints(30)
	st.IncreaseMultiplier()

	hud := &textRecorder{}
	game.Draw(hud)
	assert.Positive(t, hud.sprites, "the ship is drawn")
	assert.Contains(t, hud.lines, "Lives: 3")
	assert.Contains(t, hud.lines, "30")
	assert.Contains(t, hud.lines, "x2")
	assert.NotContains(t, hud.lines, "GAME OVER")

	st.Lives = 0
	hud = &textRecorder{}
	game.Draw(hud)
	assert.Contains(t, hud.lines, "GAME OVER")
}

func TestFitAfterResize(t *testing.T) {
	w, h := 200, 80
	view := newViewport(physics.V(config.ScreenWidth, config.ScreenHeight), func() (int, int, error) {
		return w, h, nil
	})

	resized, err := view.fit()
	require.NoError(t, err)
	assert.True(t, resized)
	assert.LessOrEqual(t, view.canvas.TerminalWidth(), config.MaxTermWidth)
	assert.LessOrEqual(t, view.canvas.TerminalHeight(), config.MaxTermHeight)
	assert.Positive(t, view.canvas.OffsetCol())

	resized, err = view.fit()
	require.NoError(t, err)
	assert.False(t, resized)

	w, h = 40, 30
	resized, err = view.fit()
	require.NoError(t, err)
	assert.True(t, resized)
	assert.LessOrEqual(t, view.canvas.TerminalWidth(), 40)
}

func TestRunStopsOnExit(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("3")), &out, Options{
		TermSizeFunc: func() (int, int, error) { return 80, 40, nil },
		Logger:       log.New(&logs),
		Settings:     config.Settings{Seed: 11},
	})
	require.NoError(t, err)

	rendered := out.String()
	assert.True(t, strings.HasPrefix(rendered, "\033[?25l"), "cursor hidden first")
	assert.True(t, strings.HasSuffix(rendered, "\033[?25h"), "cursor restored last")
}

func TestRunScreenStopsOnExit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 40)
	screen.InjectKey(tcell.KeyRune, '3', tcell.ModNone)

	require.NoError(t, RunScreen(screen, Options{Settings: config.Settings{Seed: 4}}))
}

func TestNewGameUsesSettings(t *testing.T) {
	game := NewGameFromOptions(Options{
		Settings: config.Settings{Width: 300, Height: 450, Seed: 2},
	})
	assert.Equal(t, physics.V(300, 450), game.Session().Screen())
	assert.IsType(t, &world.Session{}, game.Session())
}
