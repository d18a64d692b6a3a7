package particle

import (
	"math"
	"math/rand"

	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Effect sizes.
const (
	EnemyExplosionCount  = 120
	PlayerExplosionCount = 1200
	BulletSparkCount     = 30
)

var (
	exhaustSide = draw.RGBA(200, 38, 9, 255)
	exhaustMid  = draw.RGBA(255, 187, 30, 255)
	deathYellow = draw.RGBA(204, 204, 102, 255)
)

// burstSpeed biases speeds toward the maximum so bursts read as rings.
func burstSpeed(r *rand.Rand) float64 {
	return 18 * (1 - 1/physics.RandFloat(r, 1, 10))
}

// EnemyExplosion emits a burst in a random pair of neighbouring hues.
func EnemyExplosion(pool *Pool[State], r *rand.Rand, pos physics.Vec2) {
	if pool == nil {
		return
	}
	hue1 := physics.RandFloat(r, 0, 6)
	hue2 := math.Mod(hue1+physics.RandFloat(r, 0, 2), 6)
	color1 := draw.HSV(hue1, 0.5, 1)
	color2 := draw.HSV(hue2, 0.5, 1)

	for i := 0; i < EnemyExplosionCount; i++ {
		speed := burstSpeed(r)
		state := NewState(physics.RandVec(r, speed, speed), KindEnemy)
		tint := draw.Lerp(color1, color2, r.Float64())
		pool.Create(draw.VisualLineParticle, pos, tint, 190, physics.Uniform(1.5), state)
	}
}

// PlayerExplosion emits the large white-to-yellow burst of a destroyed ship.
func PlayerExplosion(pool *Pool[State], r *rand.Rand, pos physics.Vec2) {
	if pool == nil {
		return
	}
	for i := 0; i < PlayerExplosionCount; i++ {
		speed := burstSpeed(r)
		state := NewState(physics.RandVec(r, speed, speed), KindNone)
		tint := draw.Lerp(draw.White, deathYellow, r.Float64())
		pool.Create(draw.VisualLineParticle, pos, tint, 190, physics.Uniform(1.5), state)
	}
}

// BulletSparks emits the small light-blue spray of a bullet leaving the field.
func BulletSparks(pool *Pool[State], r *rand.Rand, pos physics.Vec2) {
	if pool == nil {
		return
	}
	for i := 0; i < BulletSparkCount; i++ {
		state := NewState(physics.RandVec(r, 0, 9), KindBullet)
		pool.Create(draw.VisualLineParticle, pos, draw.LightBlue, 50, physics.Uniform(1), state)
	}
}

// Exhaust emits one frame of engine flame behind a ship at pos moving with
// vel. elapsed is the total game time in seconds and makes the side streams
// wobble.
func Exhaust(pool *Pool[State], r *rand.Rand, pos, vel physics.Vec2, elapsed float64) {
	if pool == nil {
		return
	}
	const alpha = 0.7
	scale := physics.V(0.5, 1)

	baseVel := vel.ScaleTo(-3)
	perpVel := physics.V(baseVel.Y, -baseVel.X).Scale(0.6 * math.Sin(elapsed*10))
	origin := pos.Add(physics.V(-25, 0).Rotate(vel.Angle()))

	velMid := baseVel.Add(physics.RandVec(r, 0, 1))
	pool.Create(draw.VisualLineParticle, origin, draw.White.Mul(alpha), 60, scale, NewState(velMid, KindEnemy))
	pool.Create(draw.VisualGlow, origin, exhaustMid.Mul(alpha), 60, scale, NewState(velMid, KindEnemy))

	vel1 := baseVel.Add(perpVel).Add(physics.RandVec(r, 0, 0.3))
	vel2 := baseVel.Sub(perpVel).Add(physics.RandVec(r, 0, 0.3))
	for _, v := range []physics.Vec2{vel1, vel2} {
		pool.Create(draw.VisualLineParticle, origin, draw.White.Mul(alpha), 60, scale, NewState(v, KindEnemy))
	}
	for _, v := range []physics.Vec2{vel1, vel2} {
		pool.Create(draw.VisualGlow, origin, exhaustSide.Mul(alpha), 60, scale, NewState(v, KindEnemy))
	}
}
