package world

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceshooter/internal/audio"
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/particle"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/status"
)

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Screen physics.Vec2 // Playfield size, defaults to ScreenWidth×ScreenHeight
	Mode   config.Mode
	Store  status.HighScores // nil disables persistence
	Audio  audio.Sink
	Rand   *rand.Rand
	Logger *log.Logger
}

// Session owns everything one game needs: entities, particles, score and
// the spawn schedule. It is not safe for concurrent use; each player gets
// their own.
type Session struct {
	Registry  *Registry
	Particles *particle.Pool[particle.State]
	Status    *status.Status
	Player    *object.Player
	Spawner   *Spawner

	screen    physics.Vec2
	audio     audio.Sink
	rand      *rand.Rand
	logger    *log.Logger
	elapsed   float64 // Seconds of game time
	over      bool
	lastScore int
}

// NewSession starts a game in opts.Mode. A high score that cannot be loaded
// is logged and treated as zero.
func NewSession(opts Options) *Session {
	if opts.Screen.IsZero() {
		opts.Screen = physics.V(config.ScreenWidth, config.ScreenHeight)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	sim := particle.Simulation{Width: opts.Screen.X, Height: opts.Screen.Y}
	s := &Session{
		Registry:  NewRegistry(),
		Particles: particle.NewPool[particle.State](config.ParticleCapacity, sim.Update),
		Player:    object.NewPlayer(opts.Screen),
		Spawner:   NewSpawner(opts.Mode),
		screen:    opts.Screen,
		audio:     opts.Audio,
		rand:      opts.Rand,
		logger:    opts.Logger,
	}
	s.Registry.Add(s.Player)

	st, err := status.New(opts.Mode, opts.Store)
	if err != nil {
		s.logger.Warn("load high score", "mode", opts.Mode, "err", err)
	}
	s.Status = st
	return s
}

// Screen returns the playfield size.
func (s *Session) Screen() physics.Vec2 {
	return s.screen
}

// Mode returns the mode being played.
func (s *Session) Mode() config.Mode {
	return s.Spawner.Mode()
}

// Over reports whether the last life has been spent and its respawn delay
// has run out.
func (s *Session) Over() bool {
	return s.over
}

// LastScore returns the score of the most recently finished game.
func (s *Session) LastScore() int {
	return s.lastScore
}

// Update advances the game by one frame. dt is the frame time in seconds
// and only drives the score multiplier timer; movement is per frame.
func (s *Session) Update(in input.Input, dt float64) {
	if s.over {
		return
	}
	s.elapsed += dt
	ctx := s.context(in)

	s.Status.Update(dt)
	if s.Registry.Update(ctx) {
		s.Spawner.Reset()
		s.logger.Info("player killed", "lives", s.Status.Lives, "score", s.Status.Score)
	}
	s.Spawner.Update(s.Registry, ctx)
	s.Particles.Update()

	if s.Status.IsGameOver() && !s.Player.IsDead() {
		s.finish()
	}
}

func (s *Session) context(in input.Input) object.UpdateContext {
	return object.UpdateContext{
		Screen:    s.screen,
		Mode:      s.Spawner.Mode(),
		Input:     in,
		Spawner:   s.Registry,
		Particles: s.Particles,
		Status:    s.Status,
		Audio:     s.audio,
		Player:    s.Player,
		Rand:      s.rand,
		Elapsed:   s.elapsed,
	}
}

// finish ends the game once the final respawn delay has passed.
func (s *Session) finish() {
	s.lastScore = s.Status.Score
	s.logger.Info("game over", "mode", s.Mode(), "score", s.lastScore, "high", s.Status.HighScore)
	if err := s.Status.Reset(); err != nil {
		s.logger.Error("save high score", "err", err)
	}
	s.Registry.Reset()
	s.Particles.Clear()
	s.over = true
}

// Restart begins a fresh game in mode. A beaten high score from the game in
// progress is saved first.
func (s *Session) Restart(mode config.Mode) error {
	var err error
	if mode != s.Status.Mode() {
		err = s.Status.SetMode(mode)
	} else {
		err = s.Status.Reset()
	}

	s.Registry.Reset()
	s.Particles.Clear()
	s.Player.Reset(s.screen)
	s.Registry.Add(s.Player)
	s.Spawner.SetMode(mode)
	s.elapsed = 0
	s.over = false
	return err
}

// Close saves a beaten high score of the game in progress.
func (s *Session) Close() error {
	return s.Status.Commit()
}

// Draw renders particles and then entities.
func (s *Session) Draw(surface draw.Surface) {
	s.Particles.Draw(surface)
	s.Registry.Draw(surface)
}
