// Package particle holds short-lived visual effects in a fixed-capacity ring
// buffer and the rule that moves and fades them.
package particle

import (
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// InitialPercentLife is the percent-life every new particle starts at.
// Fading runs from here to zero, so effects are shorter than their duration.
const InitialPercentLife = 0.4

// Particle is one visual effect record. State carries the payload the
// pool's update rule understands.
type Particle[T any] struct {
	Visual      draw.Visual
	Position    physics.Vec2
	Orientation float64
	Scale       physics.Vec2
	Tint        draw.Tint
	Duration    float64 // Frames
	PercentLife float64 // Decremented by 1/Duration per frame; removed below 0
	State       T
}

// Alive reports whether the particle survives the current frame.
func (p *Particle[T]) Alive() bool {
	return p.PercentLife >= 0
}

// UpdateFunc advances one particle by one frame.
type UpdateFunc[T any] func(p *Particle[T])

// Pool is a ring buffer of particles. When full, creating a particle
// overwrites the oldest one. Slots are allocated once at construction.
type Pool[T any] struct {
	particles []Particle[T]
	start     int // Physical index of logical particle 0
	count     int
	update    UpdateFunc[T]
}

// NewPool creates a pool with a fixed capacity (at least 1). update may be nil,
// in which case particles only age.
func NewPool[T any](capacity int, update UpdateFunc[T]) *Pool[T] {
	return &Pool[T]{
		particles: make([]Particle[T], max(capacity, 1)),
		update:    update,
	}
}

// at returns the particle at logical index i.
func (p *Pool[T]) at(i int) *Particle[T] {
	return &p.particles[(p.start+i)%len(p.particles)]
}

// Create adds a particle with zero orientation. See CreateOriented.
func (p *Pool[T]) Create(visual draw.Visual, pos physics.Vec2, tint draw.Tint, duration float64, scale physics.Vec2, state T) {
	p.CreateOriented(visual, pos, tint, duration, scale, state, 0)
}

// CreateOriented adds a particle at percent-life InitialPercentLife. A full
// pool evicts its oldest particle to make room.
func (p *Pool[T]) CreateOriented(visual draw.Visual, pos physics.Vec2, tint draw.Tint, duration float64, scale physics.Vec2, state T, orientation float64) {
	var slot *Particle[T]
	if p.count == len(p.particles) {
		slot = p.at(0)
		p.start = (p.start + 1) % len(p.particles)
	} else {
		slot = p.at(p.count)
		p.count++
	}

	*slot = Particle[T]{
		Visual:      visual,
		Position:    pos,
		Orientation: orientation,
		Scale:       scale,
		Tint:        tint,
		Duration:    duration,
		PercentLife: InitialPercentLife,
		State:       state,
	}
}

// Update advances every live particle one frame, then compacts survivors to
// the front in one stable pass. Removed slots keep their stale contents.
func (p *Pool[T]) Update() {
	removed := 0
	for i := 0; i < p.count; i++ {
		cur := p.at(i)
		if p.update != nil {
			p.update(cur)
		}
		cur.PercentLife -= 1 / cur.Duration

		if removed > 0 {
			dst := p.at(i - removed)
			*dst, *cur = *cur, *dst
		}
		if !p.at(i - removed).Alive() {
			removed++
		}
	}
	p.count -= removed
}

// Draw renders every live particle centred on its visual.
func (p *Pool[T]) Draw(s draw.Surface) {
	for i := 0; i < p.count; i++ {
		cur := p.at(i)
		s.DrawSprite(cur.Visual, cur.Position, cur.Tint, cur.Orientation, cur.Visual.Center(), cur.Scale)
	}
}

// Clear drops every particle.
func (p *Pool[T]) Clear() {
	p.count = 0
}

// Count returns the number of live particles.
func (p *Pool[T]) Count() int {
	return p.count
}

// Capacity returns the fixed slot count.
func (p *Pool[T]) Capacity() int {
	return len(p.particles)
}

// At returns the live particle at logical index i (0 is the oldest).
// It panics if i is out of range.
func (p *Pool[T]) At(i int) *Particle[T] {
	if i < 0 || i >= p.count {
		panic("particle: index out of range")
	}
	return p.at(i)
}
