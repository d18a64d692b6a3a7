package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spaceshooter/internal/config"
)

func TestNewStatusDefaults(t *testing.T) {
	s, err := New(config.ModeClassic, nil)
	require.NoError(t, err)

	assert.Equal(t, config.InitialLives, s.Lives)
	assert.Equal(t, 1, s.Multiplier)
	assert.Zero(t, s.Score)
	assert.False(t, s.IsGameOver())
}

func TestMultiplierDecay(t *testing.T) {
	s, err := New(config.ModeFree, nil)
	require.NoError(t, err)

	s.IncreaseMultiplier()
	s.IncreaseMultiplier()
	require.Equal(t, 3, s.Multiplier)

	s.Update(0.5)
	assert.Equal(t, 3, s.Multiplier, "still inside the expiry window")

	s.Update(0.31)
	assert.Equal(t, 1, s.Multiplier)
}

func TestMultiplierTimerRestartsOnKill(t *testing.T) {
	s, _ := New(config.ModeFree, nil)
	s.IncreaseMultiplier()
	s.Update(0.7)
	s.IncreaseMultiplier()
	s.Update(0.7)
	assert.Equal(t, 3, s.Multiplier)
}

func TestMultiplierCapped(t *testing.T) {
	s, _ := New(config.ModeFree, nil)
	for i := 0; i < 50; i++ {
		s.IncreaseMultiplier()
	}
	assert.Equal(t, config.MaxMultiplier, s.Multiplier)
}

func TestAddPointsUsesMultiplier(t *testing.T) {
	s, _ := New(config.ModeClassic, nil)
	s.AddPoints(100)
	s.IncreaseMultiplier()
	s.AddPoints(50)
	assert.Equal(t, 200, s.Score)
}

func TestLivesAndGameOver(t *testing.T) {
	s, _ := New(config.ModeClassic, nil)
	for i := 0; i < config.InitialLives+2; i++ {
		s.RemoveLife()
	}
	assert.Zero(t, s.Lives)
	assert.True(t, s.IsGameOver())
}

func TestHighScoreMissingFileIsZero(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	score, err := store.Load(config.ModeFree)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestHighScoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	store := NewFileStore(path)

	_, err := store.Save(config.ModeFree, 1234)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n1234\n", string(data))

	_, err = store.Save(config.ModeClassic, 99)
	require.NoError(t, err)
	classic, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	free, err := store.Load(config.ModeFree)
	require.NoError(t, err)
	assert.Equal(t, 99, classic)
	assert.Equal(t, 1234, free)
}

func TestHighScoreMalformedLineIsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n77\n"), 0o644))

	store := NewFileStore(path)
	classic, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Zero(t, classic)

	free, err := store.Load(config.ModeFree)
	require.NoError(t, err)
	assert.Equal(t, 77, free)
}

func TestResetSavesBeatenHighScore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	s, err := New(config.ModeClassic, store)
	require.NoError(t, err)

	s.AddPoints(500)
	require.NoError(t, s.Reset())

	assert.Equal(t, 500, s.HighScore)
	assert.Zero(t, s.Score)
	saved, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Equal(t, 500, saved)

	// A lower score does not overwrite it
	s.AddPoints(10)
	require.NoError(t, s.Reset())
	saved, _ = store.Load(config.ModeClassic)
	assert.Equal(t, 500, saved)
}

func TestSetModeLoadsThatModesHighScore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	_, err := store.Save(config.ModeFree, 42)
	require.NoError(t, err)

	s, err := New(config.ModeClassic, store)
	require.NoError(t, err)
	assert.Zero(t, s.HighScore)

	require.NoError(t, s.SetMode(config.ModeFree))
	assert.Equal(t, 42, s.HighScore)
	assert.Equal(t, config.ModeFree, s.Mode())
}

func TestLoadErrorIsWrapped(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be read as a file
	store := NewFileStore(dir)
	_, err := store.Load(config.ModeClassic)
	assert.Error(t, err)
}

func TestUpdateTracksLiveHighScore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	s, err := New(config.ModeClassic, store)
	require.NoError(t, err)

	s.AddPoints(300)
	s.Update(1.0 / 60)
	assert.Equal(t, 300, s.HighScore)

	// The live value is not persisted until Reset or Save
	saved, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Zero(t, saved)

	require.NoError(t, s.Reset())
	saved, err = store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Equal(t, 300, saved)
}

func TestSetModeSavesUnderOldMode(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	s, err := New(config.ModeClassic, store)
	require.NoError(t, err)

	s.AddPoints(70)
	require.NoError(t, s.SetMode(config.ModeFree))
	assert.Zero(t, s.Score)

	classic, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Equal(t, 70, classic)
	free, err := store.Load(config.ModeFree)
	require.NoError(t, err)
	assert.Zero(t, free)
}

func TestSharedStoreKeepsHigherScore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	a, err := New(config.ModeClassic, store)
	require.NoError(t, err)
	b, err := New(config.ModeClassic, store)
	require.NoError(t, err)

	b.AddPoints(1000)
	require.NoError(t, b.Commit())
	a.AddPoints(500)
	require.NoError(t, a.Commit())

	saved, err := store.Load(config.ModeClassic)
	require.NoError(t, err)
	assert.Equal(t, 1000, saved)
	assert.Equal(t, 1000, a.HighScore, "picks up the other session's record")

	best, err := store.Save(config.ModeClassic, 20)
	require.NoError(t, err)
	assert.Equal(t, 1000, best)
}
