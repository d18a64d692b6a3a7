// Package status tracks score, multiplier, lives and high scores for one
// game session.
package status

import (
	"fmt"

	"github.com/tomz197/spaceshooter/internal/config"
)

// Status is the per-session scoreboard.
type Status struct {
	Lives      int
	Score      int
	HighScore  int
	Multiplier int

	mode               config.Mode
	multiplierTimeLeft float64 // Seconds
	stored             int     // High score as last loaded or saved
	store              HighScores
}

// New creates a status for mode backed by store (which may be nil) and
// loads its high score.
func New(mode config.Mode, store HighScores) (*Status, error) {
	s := &Status{mode: mode, store: store}
	err := s.Reset()
	return s, err
}

// Mode returns the game mode the status scores.
func (s *Status) Mode() config.Mode {
	return s.mode
}

// Reset saves a beaten high score, then starts a fresh game and reloads the
// high score. Errors come from persistence only; the status is reset anyway.
func (s *Status) Reset() error {
	saveErr := s.Commit()

	s.Score = 0
	s.Multiplier = 1
	s.Lives = config.InitialLives
	s.multiplierTimeLeft = 0

	if s.store == nil {
		return saveErr
	}
	high, err := s.store.Load(s.mode)
	if err != nil {
		return fmt.Errorf("reset status: %w", err)
	}
	s.HighScore = high
	s.stored = high
	return saveErr
}

// SetMode switches the mode being scored and reloads its high score.
// A beaten high score is saved under the old mode first.
func (s *Status) SetMode(mode config.Mode) error {
	saveErr := s.Commit()
	s.mode = mode
	s.Score = 0
	if err := s.Reset(); err != nil {
		return err
	}
	return saveErr
}

// Commit saves the score if it beats the stored high score.
func (s *Status) Commit() error {
	if s.Score > s.stored {
		return s.Save()
	}
	return nil
}

// Save persists the best of the score and the high score for the mode. A
// higher score saved by another session sharing the store is kept and
// becomes the high score.
func (s *Status) Save() error {
	s.HighScore = max(s.HighScore, s.Score)
	if s.store == nil {
		s.stored = s.HighScore
		return nil
	}
	best, err := s.store.Save(s.mode, s.HighScore)
	if err != nil {
		return err
	}
	s.HighScore = max(s.HighScore, best)
	s.stored = s.HighScore
	return nil
}

// Update keeps the displayed high score in step with the score and runs
// the multiplier expiry timer. dt is in seconds.
func (s *Status) Update(dt float64) {
	s.HighScore = max(s.HighScore, s.Score)
	if s.Multiplier <= 1 {
		return
	}
	s.multiplierTimeLeft -= dt
	if s.multiplierTimeLeft <= 0 {
		s.multiplierTimeLeft = config.MultiplierExpiry
		s.ResetMultiplier()
	}
}

// AddPoints adds basePoints times the multiplier to the score.
func (s *Status) AddPoints(basePoints int) {
	s.Score += basePoints * s.Multiplier
}

// IncreaseMultiplier bumps the multiplier (up to the maximum) and restarts
// its expiry timer.
func (s *Status) IncreaseMultiplier() {
	s.multiplierTimeLeft = config.MultiplierExpiry
	if s.Multiplier < config.MaxMultiplier {
		s.Multiplier++
	}
}

// ResetMultiplier drops the multiplier back to 1.
func (s *Status) ResetMultiplier() {
	s.Multiplier = 1
}

// RemoveLife takes one life away.
func (s *Status) RemoveLife() {
	if s.Lives > 0 {
		s.Lives--
	}
}

// IsGameOver reports whether every life is spent.
func (s *Status) IsGameOver() bool {
	return s.Lives == 0
}
