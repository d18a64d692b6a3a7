package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	explosionDuration = 450 * time.Millisecond
	shotDuration      = 90 * time.Millisecond
)

// noiseBurst generates low-passed white noise with an exponential decay.
type noiseBurst struct {
	rand     *rand.Rand
	position int
	total    int
	smooth   float64
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.position >= g.total {
			return i, i > 0
		}
		t := float64(g.position) / float64(g.total)
		// One-pole low-pass makes the noise rumble instead of hiss
		g.smooth += 0.2 * (g.rand.Float64()*2 - 1 - g.smooth)
		val := g.smooth * math.Exp(-5*t)

		samples[i][0] = val
		samples[i][1] = val
		g.position++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error { return nil }

// sweep generates a square wave gliding from one frequency to another.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	position int
	total    int
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.position >= g.total {
			return i, i > 0
		}
		t := float64(g.position) / float64(g.total)
		freq := g.from + (g.to-g.from)*t

		val := 0.35
		if g.phase >= 0.5 {
			val = -0.35
		}
		val *= 1 - t

		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.position++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// generate returns the raw streamer for s.
func generate(s Sound, rate beep.SampleRate, r *rand.Rand) beep.Streamer {
	switch s {
	case SoundExplosion:
		return &noiseBurst{rand: r, total: rate.N(explosionDuration)}
	case SoundShot:
		return &sweep{rate: rate, from: 1400, to: 300, total: rate.N(shotDuration)}
	}
	return nil
}

// newVolume wraps s in a linear volume control.
// math.Log2(0) is -Inf, so 0 volume is handled by making it silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Effect builds a ready-to-mix streamer for s with volume, pitch (octaves)
// and stereo pan applied. It returns nil for unknown sounds.
func Effect(s Sound, rate beep.SampleRate, r *rand.Rand, volume, pitch, pan float64) beep.Streamer {
	st := generate(s, rate, r)
	if st == nil {
		return nil
	}
	if pitch != 0 {
		st = beep.ResampleRatio(4, math.Pow(2, pitch), st)
	}
	return &effects.Pan{Streamer: newVolume(st, volume), Pan: math.Max(-1, math.Min(1, pan))}
}
