// ABOUTME: Fixed-voice playback engine and mixer
// ABOUTME: Sums all voices per tick with hard clamping, refills on demand
package engine

import (
	"log"

	"github.com/padbank/padbank-go/pkg/audio"
)

// DefaultVoices matches the four physical trigger inputs of the
// original hardware.
const DefaultVoices = 4

// DefaultRingCapacity is 1024 samples (2KB) per voice.
const DefaultRingCapacity = 1024

// Engine owns a fixed array of voices and mixes them into one output
// frame per tick. Every method must be called from the single control
// loop; the engine holds no locks because no concurrent mutation
// exists.
type Engine struct {
	voices []*Voice
}

// New creates an engine with the given voice count and per-voice ring
// capacity, both fixed for the engine's lifetime.
func New(store Store, voices, ringCapacity int) *Engine {
	if voices <= 0 {
		voices = DefaultVoices
	}
	if ringCapacity <= 0 {
		ringCapacity = DefaultRingCapacity
	}

	e := &Engine{voices: make([]*Voice, voices)}
	for i := range e.voices {
		e.voices[i] = newVoice(store, ringCapacity)
	}
	return e
}

// Voices returns the number of voice slots.
func (e *Engine) Voices() int { return len(e.voices) }

// Load binds an asset to a voice slot.
func (e *Engine) Load(voice int, ref string) error {
	if voice < 0 || voice >= len(e.voices) {
		return ErrInvalidVoice
	}
	return e.voices[voice].Load(ref)
}

// Trigger starts (or abruptly restarts) playback on a voice slot.
func (e *Engine) Trigger(voice int) error {
	if voice < 0 || voice >= len(e.voices) {
		return ErrInvalidVoice
	}
	return e.voices[voice].Trigger()
}

// Tick produces one output frame: every voice contributes one sample,
// the sum is clamped to [-32767, 32767], and the clamped value is
// emitted on both channels. Equal-weight summation; simultaneous loud
// voices clip audibly.
func (e *Engine) Tick() (int16, int16) {
	var sum int32
	for _, v := range e.voices {
		sum += int32(v.TickOutput())
	}
	s := audio.Clamp(sum)
	return s, s
}

// RefillBelow tops up every playing voice whose buffered sample count
// dropped under threshold. Read failures latch that voice's end-of-data
// and leave it silent; they never stop the loop or other voices.
func (e *Engine) RefillBelow(threshold int) {
	for i, v := range e.voices {
		if v.state == StatePlaying && v.ring.Len() < threshold {
			if err := v.Refill(); err != nil {
				log.Printf("voice %d refill: %v", i, err)
			}
		}
	}
}

// Status snapshots every voice.
func (e *Engine) Status() []VoiceStatus {
	out := make([]VoiceStatus, len(e.voices))
	for i, v := range e.voices {
		out[i] = v.Status()
	}
	return out
}
