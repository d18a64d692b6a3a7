package object

import (
	"math"

	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Behavior is a resumable movement routine. Step advances it by exactly one
// frame and reports whether it wants to keep running; state that must
// survive between frames lives in the behavior value.
type Behavior interface {
	Step(e *Enemy, ctx UpdateContext) bool
}

// Seek accelerates towards the player while the player is alive.
type Seek struct {
	Acceleration float64
}

func (s *Seek) Step(e *Enemy, ctx UpdateContext) bool {
	if ctx.PlayerAlive() {
		toPlayer := ctx.Player.Position.Sub(e.Position)
		e.Velocity = e.Velocity.Add(toPlayer.ScaleTo(s.Acceleration))
	}
	if !e.Velocity.IsZero() {
		e.Orientation = e.Velocity.Angle()
	}
	return true
}

const (
	wanderSubSteps = 6
	wanderImpulse  = 0.4
	wanderSpin     = 0.05
	wanderTurn     = 0.1
)

// Wander drifts along a heading that random-walks a little every
// wanderSubSteps frames. Leaving the screen turns it back towards the middle.
type Wander struct {
	direction float64
	step      int
	started   bool
}

func (w *Wander) Step(e *Enemy, ctx UpdateContext) bool {
	if !w.started {
		w.direction = physics.RandFloat(ctx.Rand, 0, 2*math.Pi)
		w.started = true
	}
	if w.step == 0 {
		w.direction = physics.WrapAngle(w.direction + physics.RandFloat(ctx.Rand, -wanderTurn, wanderTurn))
	}

	e.Velocity = e.Velocity.Add(physics.FromPolar(w.direction, wanderImpulse))
	e.Orientation -= wanderSpin

	size := e.Size()
	bounds := ctx.Bounds().Inflate(-size.X/2-1, -size.Y/2-1)
	if !bounds.Contains(e.Position) {
		toCenter := ctx.Screen.Scale(0.5).Sub(e.Position)
		w.direction = toCenter.Angle() + physics.RandFloat(ctx.Rand, -math.Pi/2, math.Pi/2)
	}

	w.step = (w.step + 1) % wanderSubSteps
	return true
}

// GravityBounce falls under constant gravity and bounces off the bottom and
// side edges. It carries its own velocity and overwrites the enemy's each
// frame, so drag does not slow it.
type GravityBounce struct {
	Velocity physics.Vec2
}

func (g *GravityBounce) Step(e *Enemy, ctx UpdateContext) bool {
	g.Velocity.Y += config.Gravity
	e.Velocity = g.Velocity

	half := e.Size().Scale(0.5)
	if ctx.Screen.Y <= e.Position.Y+half.Y {
		g.Velocity.Y *= -1
		e.Position.Y -= e.Velocity.Y + 1
	}

	left := e.Position.X-half.X <= 0
	if left || ctx.Screen.X <= e.Position.X+half.X {
		g.Velocity.X *= -1
		// Step back off the wall so the next frame does not bounce again
		if left {
			e.Position.X -= e.Velocity.X - 1
		} else {
			e.Position.X -= e.Velocity.X + 1
		}
	}
	return true
}

// Timed runs Behavior for a fixed number of frames and then exhausts.
type Timed struct {
	Behavior Behavior
	Frames   int
}

func (t *Timed) Step(e *Enemy, ctx UpdateContext) bool {
	if t.Frames <= 0 {
		return false
	}
	t.Frames--
	return t.Behavior.Step(e, ctx) && t.Frames > 0
}
