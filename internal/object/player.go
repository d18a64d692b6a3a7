package object

import (
	"math"

	"github.com/tomz197/spaceshooter/internal/audio"
	"github.com/tomz197/spaceshooter/internal/config"
	"github.com/tomz197/spaceshooter/internal/draw"
	"github.com/tomz197/spaceshooter/internal/particle"
	"github.com/tomz197/spaceshooter/internal/physics"
)

// muzzleOffset is where bullets leave the ship, relative to its centre
// when aiming along +X.
var muzzleOffset = physics.V(40, -8)

// Player is the player-controlled ship.
type Player struct {
	Body

	cooldown int // Frames until the next shot
	respawn  int // Frames until respawn; > 0 while dead
}

// NewPlayer creates a ship at the bottom centre of a screen of the given size.
func NewPlayer(screen physics.Vec2) *Player {
	return &Player{
		Body: Body{
			Position:    spawnPoint(screen),
			Orientation: -math.Pi / 2, // Start pointing up
			Radius:      config.PlayerRadius,
			Visual:      draw.VisualPlayer,
			Tint:        draw.White,
		},
	}
}

func spawnPoint(screen physics.Vec2) physics.Vec2 {
	return physics.V(screen.X/2, screen.Y-10)
}

// IsDead reports whether the ship is waiting to respawn.
func (p *Player) IsDead() bool {
	return p.respawn > 0
}

// RespawnTimer returns the frames left until the ship respawns.
func (p *Player) RespawnTimer() int {
	return p.respawn
}

// Update handles shooting, movement and exhaust. While dead it only counts
// down the respawn timer.
func (p *Player) Update(ctx UpdateContext) {
	if p.IsDead() {
		p.respawn--
		return
	}

	// Classic mode always fires straight up
	aim := physics.V(0, -1)
	if ctx.Mode == config.ModeFree {
		aim = ctx.Input.Aim
	}
	if aim.LenSq() > 0 && p.cooldown <= 0 {
		p.cooldown = config.FireCooldownFrames
		angle := aim.Angle()
		vel := physics.FromPolar(angle, config.BulletSpeed)
		ctx.Spawn(NewBullet(p.Position.Add(muzzleOffset.Rotate(angle)), vel))
		ctx.PlaySound(audio.SoundShot, 0.2, 0.2)
	}
	if p.cooldown > 0 {
		p.cooldown--
	}

	move := ctx.Input.Move
	if ctx.Mode == config.ModeClassic {
		move = physics.V(move.X, 0).Normalize()
	}
	p.Velocity = p.Velocity.Add(move.Scale(config.PlayerSpeed))
	p.Position = p.Position.Add(p.Velocity)
	p.clampToScreen(ctx.Screen, 0)
	if p.Velocity.LenSq() > 0 {
		p.Orientation = p.Velocity.Angle()
	}

	if p.Velocity.LenSq() > 0.1 {
		particle.Exhaust(ctx.Particles, ctx.Rand, p.Position, p.Velocity, ctx.Elapsed)
	}
	p.Velocity = physics.Vec2{}
}

// Draw renders the ship unless it is dead.
func (p *Player) Draw(s draw.Surface) {
	if !p.IsDead() {
		p.Body.Draw(s)
	}
}

// Kill takes a life, bursts the ship where it died and moves it back to the
// spawn point to wait out the respawn timer.
func (p *Player) Kill(ctx UpdateContext) {
	gameOver := false
	if ctx.Status != nil {
		ctx.Status.RemoveLife()
		gameOver = ctx.Status.IsGameOver()
	}

	particle.PlayerExplosion(ctx.Particles, ctx.Rand, p.Position)

	p.Position = spawnPoint(ctx.Screen)
	p.Velocity = physics.Vec2{}
	p.respawn = config.RespawnFrames
	if gameOver {
		p.respawn = config.GameOverFrames
	}
}

// Reset brings the ship back to life at the spawn point.
func (p *Player) Reset(screen physics.Vec2) {
	p.Position = spawnPoint(screen)
	p.Velocity = physics.Vec2{}
	p.Orientation = -math.Pi / 2
	p.Expired = false
	p.cooldown = 0
	p.respawn = 0
}
