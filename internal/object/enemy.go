package object

import (
	"strconv"

	"github.com/tomz197/spaceshooter/internal/audio"
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/particle"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Kind identifies an enemy variant.
type Kind int

const (
	KindSeeker Kind = iota
	KindWanderer
	KindLargeMeteor
	KindMiddleMeteor
	KindSmallMeteor
)

func (k Kind) String() string {
	switch k {
	case KindSeeker:
		return "seeker"
	case KindWanderer:
		return "wanderer"
	case KindLargeMeteor:
		return "large meteor"
	case KindMiddleMeteor:
		return "middle meteor"
	case KindSmallMeteor:
		return "small meteor"
	}
	return "unknown"
}

// fragment is a child enemy spawned when its parent is destroyed.
type fragment struct {
	kind     Kind
	velocity physics.Vec2
}

// kindInfo is the per-kind data an enemy is built from.
type kindInfo struct {
	visual     draw.Visual
	health     int
	points     int
	showHealth bool
	fragments  []fragment
	behaviors  func(vel physics.Vec2) []Behavior
}

func seek(physics.Vec2) []Behavior {
	return []Behavior{&Seek{Acceleration: config.SeekerAcceleration}}
}

func wander(physics.Vec2) []Behavior {
	return []Behavior{&Wander{}}
}

func gravity(vel physics.Vec2) []Behavior {
	return []Behavior{&GravityBounce{Velocity: vel}}
}

// Fragment velocities differ in X to sell the weight of the pieces.
var kinds = map[Kind]kindInfo{
	KindSeeker:   {visual: draw.VisualSeeker, health: 1, points: 100, behaviors: seek},
	KindWanderer: {visual: draw.VisualWanderer, health: 1, points: 50, behaviors: wander},
	KindLargeMeteor: {
		visual: draw.VisualLargeMeteor, health: 5, points: 500, showHealth: true, behaviors: gravity,
		fragments: []fragment{
			{KindMiddleMeteor, physics.V(5, -6)},
			{KindMiddleMeteor, physics.V(-5, -6)},
		},
	},
	KindMiddleMeteor: {
		visual: draw.VisualMiddleMeteor, health: 3, points: 250, showHealth: true, behaviors: gravity,
		fragments: []fragment{
			{KindSmallMeteor, physics.V(7, -6)},
			{KindSmallMeteor, physics.V(-7, -6)},
			{KindSmallMeteor, physics.V(0, 6)},
		},
	},
	KindSmallMeteor: {visual: draw.VisualSmallMeteor, health: 1, points: 150, showHealth: true, behaviors: gravity},
}

// Enemy is a hostile entity driven by its behaviors once it has faded in.
type Enemy struct {
	Body

	Kind       Kind
	Health     int
	PointValue int

	timeUntilStart int // Frames left in the spawn-in fade
	behaviors      []Behavior
}

// NewEnemy builds an enemy of the given kind at pos. vel seeds behaviors
// that carry their own velocity.
func NewEnemy(kind Kind, pos, vel physics.Vec2) *Enemy {
	info := kinds[kind]
	e := &Enemy{
		Body: Body{
			Position: pos,
			Radius:   info.visual.Size().X / 2,
			Visual:   info.visual,
			Tint:     draw.Transparent,
		},
		Kind:           kind,
		Health:         info.health,
		PointValue:     info.points,
		timeUntilStart: config.ActivationFrames,
	}
	if info.behaviors != nil {
		e.behaviors = info.behaviors(vel)
	}
	return e
}

// NewSeeker creates an enemy that chases the player.
func NewSeeker(pos physics.Vec2) *Enemy {
	return NewEnemy(KindSeeker, pos, physics.Vec2{})
}

// NewWanderer creates an enemy that drifts around randomly.
func NewWanderer(pos physics.Vec2) *Enemy {
	return NewEnemy(KindWanderer, pos, physics.Vec2{})
}

// NewLargeMeteor creates a meteor that falls from rest.
func NewLargeMeteor(pos physics.Vec2) *Enemy {
	return NewEnemy(KindLargeMeteor, pos, physics.Vec2{})
}

// NewMiddleMeteor creates a middle meteor launched with vel.
func NewMiddleMeteor(pos, vel physics.Vec2) *Enemy {
	return NewEnemy(KindMiddleMeteor, pos, vel)
}

// NewSmallMeteor creates a small meteor launched with vel.
func NewSmallMeteor(pos, vel physics.Vec2) *Enemy {
	return NewEnemy(KindSmallMeteor, pos, vel)
}

// IsActive reports whether the spawn-in delay is over.
func (e *Enemy) IsActive() bool {
	return e.timeUntilStart <= 0
}

// Activate skips the spawn-in delay.
func (e *Enemy) Activate() {
	e.timeUntilStart = 0
	e.Tint = draw.White
}

// AddBehavior attaches another behavior. Behaviors run in the order added.
func (e *Enemy) AddBehavior(b Behavior) {
	e.behaviors = append(e.behaviors, b)
}

// Behaviors returns how many behaviors are still running.
func (e *Enemy) Behaviors() int {
	return len(e.behaviors)
}

// Update fades the enemy in or steps its behaviors, then integrates its
// velocity, clamps it to the screen and applies drag.
func (e *Enemy) Update(ctx UpdateContext) {
	if e.IsActive() {
		e.applyBehaviors(ctx)
	} else {
		e.timeUntilStart--
		e.Tint = draw.White.Mul(1 - float64(e.timeUntilStart)/config.ActivationFrames)
	}

	e.Position = e.Position.Add(e.Velocity)
	// The visual's top edge may rise two bodies above the screen, which
	// leaves the centre at most a body and a half up
	e.clampToScreen(ctx.Screen, 2*e.Size().Y)
	e.Velocity = e.Velocity.Scale(config.EnemyDrag)
}

// applyBehaviors advances every behavior one step and drops the exhausted ones.
func (e *Enemy) applyBehaviors(ctx UpdateContext) {
	n := 0
	for _, b := range e.behaviors {
		if b.Step(e, ctx) {
			e.behaviors[n] = b
			n++
		}
	}
	clear(e.behaviors[n:])
	e.behaviors = e.behaviors[:n]
}

// Draw renders the spawn-in ghost while fading in, the remaining health
// for meteors, and the body.
func (e *Enemy) Draw(s draw.Surface) {
	if !e.IsActive() {
		// Shrinks from double size to nothing as the enemy fades in
		factor := float64(e.timeUntilStart) / config.ActivationFrames
		s.DrawSprite(e.Visual, e.Position, draw.White.Mul(factor), e.Orientation, e.Visual.Center(), physics.Uniform(2-factor))
	}
	if kinds[e.Kind].showHealth {
		size := e.Size()
		s.DrawText(strconv.Itoa(e.Health), e.Position.Sub(physics.V(size.X/15, size.Y/10)), draw.White)
	}
	e.Body.Draw(s)
}

// HandleCollision pushes e away from other with a soft inverse-square impulse.
func (e *Enemy) HandleCollision(other *Enemy) {
	d := e.Position.Sub(other.Position)
	e.Velocity = e.Velocity.Add(d.Scale(10 / (d.LenSq() + 1)))
}

// WasShot takes one point of health and awards a fifth of the enemy's
// points. An active enemy with no health left dies.
func (e *Enemy) WasShot(ctx UpdateContext) {
	if e.Health > 0 {
		e.Health--
	}
	ctx.AddPoints(e.PointValue / 5)

	if e.Health <= 0 && e.IsActive() {
		e.Kill(ctx, true)
	}
}

// Kill expires the enemy. With reward set it also scores, explodes and
// spawns its fragments; without it the enemy simply vanishes, as when the
// player loses a life.
func (e *Enemy) Kill(ctx UpdateContext, reward bool) {
	if e.Expired {
		return
	}
	e.Expire()
	if !reward {
		return
	}

	ctx.AddPoints(e.PointValue)
	ctx.IncreaseMultiplier()
	particle.EnemyExplosion(ctx.Particles, ctx.Rand, e.Position)
	ctx.PlaySound(audio.SoundExplosion, 0.5, 0.2)

	for _, f := range kinds[e.Kind].fragments {
		ctx.Spawn(NewEnemy(f.kind, e.Position, f.velocity))
	}
}
