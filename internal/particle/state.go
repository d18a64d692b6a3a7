package particle

import (
	"math"

	"github.com/tomz197/spaceshooter/internal/physics"
)

// Kind selects how a particle reacts to drag and how it stretches.
type Kind int

const (
	KindNone Kind = iota
	KindEnemy
	KindBullet
	KindIgnoreGravity
)

// State is the payload carried by gameplay particles.
type State struct {
	Velocity         physics.Vec2
	Kind             Kind
	LengthMultiplier float64
}

// NewState returns a State with a length multiplier of 1.
func NewState(vel physics.Vec2, kind Kind) State {
	return State{Velocity: vel, Kind: kind, LengthMultiplier: 1}
}

// Simulation is the per-frame rule for State particles inside a
// Width×Height field.
type Simulation struct {
	Width, Height float64
}

// stillThreshold is the Manhattan speed below which a particle stops.
const stillThreshold = 1e-11

// Update moves, fades, stretches, bounces and slows one particle.
func (s Simulation) Update(p *Particle[State]) {
	vel := p.State.Velocity
	p.Position = p.Position.Add(vel)

	// Fade out as the particle slows down or nears the end of its life
	speed := vel.Len()
	alpha := math.Min(1, math.Min(p.PercentLife*2, speed))
	alpha *= alpha
	p.Tint.A = uint8(255 * math.Max(alpha, 0))

	// Fast particles stretch along their heading
	stretch := 0.2
	if p.State.Kind == KindBullet {
		stretch = 0.1
	}
	p.Scale.X = p.State.LengthMultiplier * math.Min(math.Min(1, stretch*speed+0.1), alpha)

	p.Orientation = vel.Angle()

	// Bounce off the edges of the field
	pos := p.Position
	if pos.X < 0 {
		vel.X = math.Abs(vel.X)
	} else if pos.X > s.Width {
		vel.X = -math.Abs(vel.X)
	}
	if pos.Y < 0 {
		vel.Y = math.Abs(vel.Y)
	} else if pos.Y > s.Height {
		vel.Y = -math.Abs(vel.Y)
	}

	switch {
	case math.Abs(vel.X)+math.Abs(vel.Y) < stillThreshold:
		vel = physics.Vec2{}
	case p.State.Kind == KindEnemy:
		vel = vel.Scale(0.94)
	default:
		vel = vel.Scale(0.96 + math.Mod(math.Abs(pos.X), 0.04))
	}
	p.State.Velocity = vel
}
