// Package audio plays short tones for the round events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"go.creack.net/breakout/game"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

// tunes maps the message types to the notes they play. Missing types are silent.
var tunes = map[game.MessageType][]note{
	game.MsgStart:          {{440, 80 * time.Millisecond}},
	game.MsgBrickHit:       {{660, 50 * time.Millisecond}},
	game.MsgBrickDestroyed: {{880, 50 * time.Millisecond}, {1320, 70 * time.Millisecond}},
	game.MsgLose:           {{220, 150 * time.Millisecond}, {165, 250 * time.Millisecond}},
	game.MsgCleared:        {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 90 * time.Millisecond}, {1047, 200 * time.Millisecond}},
}

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound returns the streamer for the given message type, nil when it has no sound.
func Sound(mt game.MessageType, vol float64) beep.Streamer {
	notes, ok := tunes[mt]
	if !ok {
		return nil
	}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, elem := range notes {
		sine, err := generators.SineTone(sampleRate, elem.freq)
		if err != nil {
			// Only fails above the Nyquist frequency.
			continue
		}
		seq = append(seq, beep.Take(sampleRate.N(elem.duration), sine))
	}
	return newVolume(beep.Seq(seq...), vol)
}

// SoundManager plays the round events on the speaker.
// Every method is a no-op until Initialize succeeds.
type SoundManager struct {
	Volume float64 // Linear, 1 is full scale.

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		Volume: 0.3,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker. Fails when there is no audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues the sound of the message, if any.
func (sm *SoundManager) Play(msg game.Message) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Sound(msg.Type, sm.Volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup stops every sound. The speaker stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
