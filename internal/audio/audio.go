// Package audio plays the game's sound effects.
package audio

// Sound identifies a sound effect.
type Sound int

const (
	SoundExplosion Sound = iota
	SoundShot
)

func (s Sound) String() string {
	switch s {
	case SoundExplosion:
		return "explosion"
	case SoundShot:
		return "shot"
	}
	return "unknown"
}

// Sink plays sound effects without blocking the caller.
// volume is in [0,1], pitch in octaves [-1,1] and pan in [-1,1].
type Sink interface {
	Play(s Sound, volume, pitch, pan float64)
}

// Nop is a Sink that discards every sound.
type Nop struct{}

// Play implements Sink.
func (Nop) Play(Sound, float64, float64, float64) {}
