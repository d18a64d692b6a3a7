package config

import "time"

// Playfield - the logical coordinate space every entity lives in.
// Rendering scales it to fit the terminal.
const (
	ScreenWidth  = 400
	ScreenHeight = 600
)

// Frame timing. The simulation is frame-locked: velocities are in units per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Particles
const (
	ParticleCapacity = 1024 * 20
)

// Player
const (
	InitialLives       = 3
	PlayerRadius       = 10
	PlayerSpeed        = 8
	FireCooldownFrames = 9
	BulletSpeed        = 8
	BulletRadius       = 8
	RespawnFrames      = 120
	GameOverFrames     = 300
)

// Enemies
const (
	ActivationFrames   = 60
	EnemyDrag          = 0.8
	SeekerAcceleration = 9.81 / 10
	Gravity            = 9.81 / 60
)

// Scoring
const (
	MultiplierExpiry = 0.8 // Seconds without a kill before the multiplier resets
	MaxMultiplier    = 20
)

// Spawning
const (
	ClassicSpawnFrames     = 120
	ClassicMaxLarge        = 3  // Spawn while fewer than this many large meteors exist
	ClassicMaxMiddle       = 4  // ...and at most this many middle meteors
	ClassicMaxSmall        = 10 // ...and at most this many small meteors
	FreeMaxEntities        = 200
	FreeInitialSpawnChance = 90 // 1-in-N chance per frame
	FreeMinSpawnChance     = 30
	FreeSpawnChanceDecay   = 0.005
	FreeResetSpawnChance   = 50
	FreeMinSpawnDistanceSq = 250 * 500
	FreeSpawnAttempts      = 32
)

// Terminal rendering
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)
