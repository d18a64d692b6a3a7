package config

import "fmt"

// Mode selects the ruleset of a game session. Its value doubles as the
// line index in the high-score file.
type Mode int

const (
	ModeClassic Mode = iota
	ModeFree
)

// Modes lists every game mode in high-score file order.
var Modes = []Mode{ModeClassic, ModeFree}

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeFree:
		return "free"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Renderer names accepted by SHOOTER_RENDERER.
const (
	RendererANSI  = "ansi"
	RendererTcell = "tcell"
)

// Settings holds the environment-driven runtime configuration.
type Settings struct {
	Width         float64
	Height        float64
	Seed          int64 // 0 picks a time-based seed
	HighScorePath string
	Audio         bool
	Volume        float64
	Renderer      string
	LogLevel      string
	LogFile       string
}

// LoadSettings reads Settings from the environment, falling back to defaults.
func LoadSettings() Settings {
	s := Settings{
		Width:         GetEnvFloat("SHOOTER_WIDTH", ScreenWidth),
		Height:        GetEnvFloat("SHOOTER_HEIGHT", ScreenHeight),
		Seed:          GetEnvInt("SHOOTER_SEED", 0),
		HighScorePath: GetEnv("SHOOTER_HIGHSCORE_FILE", "highscore.txt"),
		Audio:         GetEnvBool("SHOOTER_AUDIO", false),
		Volume:        GetEnvFloat("SHOOTER_VOLUME", 1),
		Renderer:      GetEnv("SHOOTER_RENDERER", RendererANSI),
		LogLevel:      GetEnv("SHOOTER_LOG_LEVEL", "info"),
		LogFile:       GetEnv("SHOOTER_LOG_FILE", ""),
	}
	if s.Width <= 0 {
		s.Width = ScreenWidth
	}
	if s.Height <= 0 {
		s.Height = ScreenHeight
	}
	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Renderer != RendererTcell {
		s.Renderer = RendererANSI
	}
	return s
}
