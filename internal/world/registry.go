// Package world runs one game session: the entity registry, collision
// resolution, enemy spawning and the per-frame update order.
package world

import (
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Registry owns the live entities. Enemies and bullets are also kept in
// their own lists, always subsets of the master list once a sweep is done.
//
// Entities added while Update runs are held back and inserted after the
// pass, so they are neither visited nor collided with until the next frame.
type Registry struct {
	entities []object.Entity
	enemies  []*object.Enemy
	bullets  []*object.Bullet
	player   *object.Player

	pending  []object.Entity // Added during Update
	updating bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add inserts e, or queues it until the current update pass finishes.
// Implements object.Spawner.
func (r *Registry) Add(e object.Entity) {
	if r.updating {
		r.pending = append(r.pending, e)
		return
	}
	r.insert(e)
}

func (r *Registry) insert(e object.Entity) {
	r.entities = append(r.entities, e)
	switch v := e.(type) {
	case *object.Enemy:
		r.enemies = append(r.enemies, v)
	case *object.Bullet:
		r.bullets = append(r.bullets, v)
	case *object.Player:
		r.player = v
	}
}

// Update runs one frame: collisions first, then every live entity's step in
// insertion order, then the queued inserts, then the sweep of expired
// entities. It reports whether the player was killed this frame.
//
// ctx.Spawner is set to the registry, and ctx.Player to the registered
// player if there is one.
func (r *Registry) Update(ctx object.UpdateContext) bool {
	ctx.Spawner = r
	if r.player != nil {
		ctx.Player = r.player
	}

	r.updating = true
	killed := r.resolveCollisions(ctx)
	for _, e := range r.entities {
		if !e.Physics().Expired {
			e.Update(ctx)
		}
	}
	r.updating = false

	for _, e := range r.pending {
		r.insert(e)
	}
	clear(r.pending)
	r.pending = r.pending[:0]

	r.entities = sweep(r.entities)
	r.enemies = sweep(r.enemies)
	r.bullets = sweep(r.bullets)
	return killed
}

// sweep drops expired entities in place, keeping the order of the rest.
func sweep[E object.Entity](list []E) []E {
	n := 0
	for _, e := range list {
		if !e.Physics().Expired {
			list[n] = e
			n++
		}
	}
	clear(list[n:])
	return list[:n]
}

// Nearby returns the live entities whose centre lies strictly within radius
// of pos.
func (r *Registry) Nearby(pos physics.Vec2, radius float64) []object.Entity {
	var found []object.Entity
	for _, e := range r.entities {
		b := e.Physics()
		if !b.Expired && physics.PointInCircle(b.Position, pos, radius) {
			found = append(found, e)
		}
	}
	return found
}

// Reset drops every entity, queued ones included.
func (r *Registry) Reset() {
	clear(r.entities)
	clear(r.enemies)
	clear(r.bullets)
	clear(r.pending)
	r.entities = r.entities[:0]
	r.enemies = r.enemies[:0]
	r.bullets = r.bullets[:0]
	r.pending = r.pending[:0]
	r.player = nil
}

// Draw renders every entity in insertion order.
func (r *Registry) Draw(s draw.Surface) {
	for _, e := range r.entities {
		e.Draw(s)
	}
}

// Count returns the number of entities, the player included.
func (r *Registry) Count() int {
	return len(r.entities)
}

// EnemyCount returns how many enemies of kind are registered.
func (r *Registry) EnemyCount(kind object.Kind) int {
	n := 0
	for _, e := range r.enemies {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Enemies returns the registered enemies. The slice must not be modified.
func (r *Registry) Enemies() []*object.Enemy {
	return r.enemies
}

// Bullets returns the registered bullets. The slice must not be modified.
func (r *Registry) Bullets() []*object.Bullet {
	return r.bullets
}

// Player returns the registered player, or nil.
func (r *Registry) Player() *object.Player {
	return r.player
}
