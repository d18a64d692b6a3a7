package world

import (
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Spawner decides when and where new enemies appear.
//
// Classic mode drops a large meteor every ClassicSpawnFrames while the field
// is not crowded. Free mode rolls a 1-in-N chance per frame for a seeker and
// for a wanderer; N shrinks slowly over time and jumps back up when the
// player dies.
type Spawner struct {
	mode          config.Mode
	timer         int     // Frames since the last classic spawn
	inverseChance float64 // N in the free-mode 1-in-N roll
}

// NewSpawner creates a spawner for mode.
func NewSpawner(mode config.Mode) *Spawner {
	s := &Spawner{}
	s.SetMode(mode)
	return s
}

// Mode returns the game mode being spawned for.
func (s *Spawner) Mode() config.Mode {
	return s.mode
}

// SetMode switches mode and restarts the spawn schedule.
func (s *Spawner) SetMode(mode config.Mode) {
	s.mode = mode
	s.timer = 0
	s.inverseChance = config.FreeInitialSpawnChance
}

// Reset eases the free-mode spawn rate after the player dies.
func (s *Spawner) Reset() {
	s.inverseChance = config.FreeResetSpawnChance
}

// InverseChance returns the current free-mode N.
func (s *Spawner) InverseChance() float64 {
	return s.inverseChance
}

// Update spawns the frame's enemies into reg.
func (s *Spawner) Update(reg *Registry, ctx object.UpdateContext) {
	switch s.mode {
	case config.ModeClassic:
		s.updateClassic(reg, ctx)
	case config.ModeFree:
		s.updateFree(reg, ctx)
	}
}

func (s *Spawner) updateClassic(reg *Registry, ctx object.UpdateContext) {
	s.timer++
	if s.timer < config.ClassicSpawnFrames || !ctx.PlayerAlive() {
		return
	}
	if reg.EnemyCount(object.KindLargeMeteor) >= config.ClassicMaxLarge ||
		reg.EnemyCount(object.KindMiddleMeteor) > config.ClassicMaxMiddle ||
		reg.EnemyCount(object.KindSmallMeteor) > config.ClassicMaxSmall {
		return
	}

	// Drop in from somewhere above the top edge
	w := max(int(ctx.Screen.X), 1)
	h := max(int(ctx.Screen.Y)/4, 1)
	pos := physics.V(float64(ctx.Rand.Intn(w)), float64(ctx.Rand.Intn(h)-h))
	reg.Add(object.NewLargeMeteor(pos))
	s.timer = 0
}

func (s *Spawner) updateFree(reg *Registry, ctx object.UpdateContext) {
	if ctx.PlayerAlive() && reg.Count() < config.FreeMaxEntities {
		if s.roll(ctx) {
			if pos, ok := spawnPosition(ctx); ok {
				reg.Add(object.NewSeeker(pos))
			}
		}
		if s.roll(ctx) {
			if pos, ok := spawnPosition(ctx); ok {
				reg.Add(object.NewWanderer(pos))
			}
		}
	}

	if s.inverseChance > config.FreeMinSpawnChance {
		s.inverseChance -= config.FreeSpawnChanceDecay
	}
}

func (s *Spawner) roll(ctx object.UpdateContext) bool {
	return ctx.Rand.Intn(max(int(s.inverseChance), 1)) == 0
}

// spawnPosition picks a point on the playfield far enough from the player.
// It gives up after FreeSpawnAttempts tries.
func spawnPosition(ctx object.UpdateContext) (physics.Vec2, bool) {
	w := max(int(ctx.Screen.X), 1)
	h := max(int(ctx.Screen.Y), 1)
	for range config.FreeSpawnAttempts {
		pos := physics.V(float64(ctx.Rand.Intn(w)), float64(ctx.Rand.Intn(h)))
		if ctx.Player == nil || physics.DistanceSquared(pos, ctx.Player.Position) >= config.FreeMinSpawnDistanceSq {
			return pos, true
		}
	}
	return physics.Vec2{}, false
}
