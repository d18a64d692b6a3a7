// Package object holds the gameplay entities: the player ship, its bullets,
// and the enemies with their movement behaviors.
package object

import (
	"math/rand"

	"github.com/tomz197/spaceshooter/internal/audio"
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/input"
	"github.com/tomz197/spaceshooter/internal/particle"
	"github.com/tomz197/spaceshooter/internal/physics"
	"github.com/tomz197/spaceshooter/internal/status"
)

// Spawner allows objects to spawn new entities during update.
type Spawner interface {
	Add(e Entity)
}

// UpdateContext provides everything an entity needs during one frame.
// Rand must be set; the other collaborators may be nil.
type UpdateContext struct {
	Screen    physics.Vec2 // Playfield size
	Mode      config.Mode
	Input     input.Input
	Spawner   Spawner
	Particles *particle.Pool[particle.State]
	Status    *status.Status
	Audio     audio.Sink
	Player    *Player
	Rand      *rand.Rand
	Elapsed   float64 // Total game time in seconds
}

// Bounds returns the playfield rectangle.
func (ctx UpdateContext) Bounds() physics.Rect {
	return physics.Bounds(ctx.Screen.X, ctx.Screen.Y)
}

// Spawn hands e to the spawner, if there is one.
func (ctx UpdateContext) Spawn(e Entity) {
	if ctx.Spawner != nil {
		ctx.Spawner.Add(e)
	}
}

// PlayerAlive reports whether there is a player and it is not respawning.
func (ctx UpdateContext) PlayerAlive() bool {
	return ctx.Player != nil && !ctx.Player.IsDead()
}

// AddPoints scores for the player. Points are not awarded while the player is dead.
func (ctx UpdateContext) AddPoints(points int) {
	if ctx.Status == nil || (ctx.Player != nil && ctx.Player.IsDead()) {
		return
	}
	ctx.Status.AddPoints(points)
}

// IncreaseMultiplier bumps the score multiplier unless the player is dead.
func (ctx UpdateContext) IncreaseMultiplier() {
	if ctx.Status == nil || (ctx.Player != nil && ctx.Player.IsDead()) {
		return
	}
	ctx.Status.IncreaseMultiplier()
}

// PlaySound plays s with a random pitch offset in [-pitchRange, pitchRange).
func (ctx UpdateContext) PlaySound(s audio.Sound, volume, pitchRange float64) {
	if ctx.Audio == nil {
		return
	}
	ctx.Audio.Play(s, volume, physics.RandFloat(ctx.Rand, -pitchRange, pitchRange), 0)
}

// Entity is a gameplay object that takes part in collisions and updates.
type Entity interface {
	Physics() *Body
	Update(ctx UpdateContext)
	Draw(s draw.Surface)
}

// Body is the state shared by all entities.
type Body struct {
	Position    physics.Vec2
	Velocity    physics.Vec2
	Orientation float64 // Radians
	Radius      float64 // Collision radius
	Expired     bool
	Visual      draw.Visual
	Tint        draw.Tint
}

// Physics returns the body itself.
func (b *Body) Physics() *Body {
	return b
}

// Size returns the pixel size of the body's visual.
func (b *Body) Size() physics.Vec2 {
	return b.Visual.Size()
}

// Expire marks the body for removal at the next sweep.
func (b *Body) Expire() {
	b.Expired = true
}

// Draw renders the body's visual at its position and orientation.
func (b *Body) Draw(s draw.Surface) {
	s.DrawSprite(b.Visual, b.Position, b.Tint, b.Orientation, b.Visual.Center(), physics.Uniform(1))
}

// clampToScreen keeps the body's visual inside the playfield, except that
// its top edge may rise top above the top edge of the screen.
func (b *Body) clampToScreen(screen physics.Vec2, top float64) {
	half := b.Size().Scale(0.5)
	b.Position = b.Position.Clamp(physics.V(half.X, half.Y-top), screen.Sub(half))
}
