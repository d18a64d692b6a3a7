package loop

import (
	"fmt"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/world"
)

// TextSurface is a draw.Surface that can also centre text.
type TextSurface interface {
	draw.Surface
	DrawTextCentered(text string, pos physics.Vec2, tint draw.Tint)
}

var titleArt = []string{
	"  ___ ___  _   ___ ___ ",
	" / __| _ \\/_\\ / __| __|",
	" \\__ \\  _/ _ \\ (__| _| ",
	" |___/_|/_/ \\_\\___|___|",
	" SHOOTER",
}

// lineHeight is the logical height of one text row at the default size.
const lineHeight = 20

// Draw renders the current screen onto s.
func (g *Game) Draw(s TextSurface) {
	screen := g.session.Screen()
	switch g.state {
	case GameStateMainMenu:
		drawMainMenu(s, screen, g.played, g.session.LastScore())
	case GameStateInstructions:
		drawInstructions(s, screen)
	case GameStateModeSelect:
		drawModeSelect(s, screen)
	case GameStatePlaying:
		g.session.Draw(s)
		drawPlayingHUD(s, g.session)
	}
}

// drawLines centres each line below top.
func drawLines(s TextSurface, screen physics.Vec2, top float64, lines []string, tint draw.Tint) float64 {
	for i, line := range lines {
		s.DrawTextCentered(line, physics.V(screen.X/2, top+float64(i)*lineHeight), tint)
	}
	return top + float64(len(lines))*lineHeight
}

func drawMainMenu(s TextSurface, screen physics.Vec2, played bool, lastScore int) {
	y := drawLines(s, screen, screen.Y/6, titleArt, draw.LightBlue)

	y = drawLines(s, screen, y+2*lineHeight, []string{
		"1  Play",
		"2  Instructions",
		"3  Exit",
	}, draw.White)

	if played {
		s.DrawTextCentered(fmt.Sprintf("Last score: %d", lastScore), physics.V(screen.X/2, y+2*lineHeight), draw.Yellow)
	}
}

func drawInstructions(s TextSurface, screen physics.Vec2) {
	y := drawLines(s, screen, screen.Y/8, []string{"Instructions"}, draw.LightBlue)

	y = drawLines(s, screen, y+lineHeight, []string{
		"W A S D    Move",
		"Arrows     Aim and shoot",
		"I J K L    Aim and shoot",
		"ESC        Back to menu",
	}, draw.White)

	y = drawLines(s, screen, y+lineHeight, []string{
		"Classic: meteors fall and",
		"split when destroyed.",
		"You fire straight up.",
		"",
		"Free: move anywhere and",
		"fend off seekers and",
		"wanderers.",
		"",
		"Kills raise the multiplier",
		"which fades if you stop.",
	}, draw.Gray)

	drawLines(s, screen, y+lineHeight, []string{"1  Back"}, draw.White)
}

func drawModeSelect(s TextSurface, screen physics.Vec2) {
	y := drawLines(s, screen, screen.Y/4, []string{"Select mode"}, draw.LightBlue)
	drawLines(s, screen, y+lineHeight, []string{
		"1  " + modeTitle(config.ModeClassic),
		"2  " + modeTitle(config.ModeFree),
		"3  Back",
	}, draw.White)
}

func modeTitle(m config.Mode) string {
	switch m {
	case config.ModeClassic:
		return "Classic"
	case config.ModeFree:
		return "Free"
	}
	return m.String()
}

// drawPlayingHUD draws lives, scores and the multiplier over the playfield.
func drawPlayingHUD(s TextSurface, session *world.Session) {
	st := session.Status
	screen := session.Screen()

	s.DrawText(fmt.Sprintf("Lives: %d", st.Lives), physics.V(8, 4), draw.White)
	s.DrawText(fmt.Sprintf("High: %d", st.HighScore), physics.V(8, 4+lineHeight), draw.Gray)
	s.DrawTextCentered(fmt.Sprintf("%d", st.Score), physics.V(screen.X/2, 4), draw.White)
	if st.Multiplier > 1 {
		s.DrawTextCentered(fmt.Sprintf("x%d", st.Multiplier), physics.V(screen.X/2, 4+lineHeight), draw.Yellow)
	}

	if st.IsGameOver() {
		drawLines(s, screen, screen.Y/2-lineHeight, []string{
			"GAME OVER",
			fmt.Sprintf("Score: %d", st.Score),
		}, draw.Red)
	}
}
