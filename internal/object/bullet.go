package object

import (
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/particle"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Bullet is a projectile fired by the player. It flies in a straight line
// until it leaves the playfield.
type Bullet struct {
	Body
}

// NewBullet creates a bullet at pos moving with vel.
func NewBullet(pos, vel physics.Vec2) *Bullet {
	return &Bullet{
		Body: Body{
			Position:    pos,
			Velocity:    vel,
			Orientation: vel.Angle(),
			Radius:      config.BulletRadius,
			Visual:      draw.VisualBullet,
			Tint:        draw.White,
		},
	}
}

// Update moves the bullet and expires it with a spray of sparks once it
// leaves the screen.
func (b *Bullet) Update(ctx UpdateContext) {
	if b.Velocity.LenSq() > 0 {
		b.Orientation = b.Velocity.Angle()
	}
	b.Position = b.Position.Add(b.Velocity)

	if !ctx.Bounds().Contains(b.Position) {
		b.Expire()
		particle.BulletSparks(ctx.Particles, ctx.Rand, b.Position)
	}
}
