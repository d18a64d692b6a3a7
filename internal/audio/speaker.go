package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker is a Sink that mixes effects onto the system audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rand        *rand.Rand
	master      float64
	initialized bool
}

// NewSpeaker creates a speaker whose effects are scaled by master volume.
// Call Init before playing.
func NewSpeaker(master float64) *Speaker {
	return &Speaker{
		mixer:  &beep.Mixer{},
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		master: master,
	}
}

// Init opens the audio device and starts the mixer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play implements Sink. It is a no-op before Init.
func (s *Speaker) Play(snd Sound, volume, pitch, pan float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := Effect(snd, sampleRate, s.rand, volume*s.master, pitch, pan)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences every playing effect.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
