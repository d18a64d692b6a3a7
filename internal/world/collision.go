package world

import (
	"github.com/tomz197/spaceshooter/internal/object"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// Collides reports whether two entities overlap. Expired entities never collide.
func Collides(a, b object.Entity) bool {
	pa, pb := a.Physics(), b.Physics()
	return !pa.Expired && !pb.Expired &&
		physics.CirclesOverlap(pa.Position, pa.Radius, pb.Position, pb.Radius)
}

// resolveCollisions runs the three collision passes and reports whether the
// player died.
func (r *Registry) resolveCollisions(ctx object.UpdateContext) bool {
	checkEnemyEnemyCollisions(r.enemies)
	checkEnemyBulletCollisions(ctx, r.enemies, r.bullets)
	return r.checkPlayerCollisions(ctx)
}

// checkEnemyEnemyCollisions pushes overlapping enemies apart. Each unordered
// pair is tested once.
func checkEnemyEnemyCollisions(enemies []*object.Enemy) {
	for i := 0; i < len(enemies); i++ {
		for j := i + 1; j < len(enemies); j++ {
			if Collides(enemies[i], enemies[j]) {
				enemies[i].HandleCollision(enemies[j])
				enemies[j].HandleCollision(enemies[i])
			}
		}
	}
}

// checkEnemyBulletCollisions damages enemies hit by bullets. A bullet is
// spent on its first hit.
func checkEnemyBulletCollisions(ctx object.UpdateContext, enemies []*object.Enemy, bullets []*object.Bullet) {
	for _, e := range enemies {
		for _, b := range bullets {
			if Collides(e, b) {
				e.WasShot(ctx)
				b.Expire()
			}
		}
	}
}

// checkPlayerCollisions kills the player on the first active enemy touching
// it. Enemies still fading in are harmless.
func (r *Registry) checkPlayerCollisions(ctx object.UpdateContext) bool {
	if r.player == nil || r.player.IsDead() {
		return false
	}
	for _, e := range r.enemies {
		if e.IsActive() && Collides(r.player, e) {
			r.killPlayer(ctx)
			return true
		}
	}
	return false
}

// killPlayer takes a life and clears the field without rewarding the kills.
func (r *Registry) killPlayer(ctx object.UpdateContext) {
	r.player.Kill(ctx)
	for _, e := range r.enemies {
		e.Kill(ctx, false)
	}
}
