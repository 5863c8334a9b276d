// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams interleaved stereo PCM through a pipe-fed persistent player
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/padbank/padbank-go/pkg/audio"
)

const channels = 2

// Oto output implementation using the oto library. The volume is
// atomic: the TUI and control clients set it while the render loop
// reads it inside WriteFrames.
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	volume     atomic.Int32
	ready      bool
}

// NewOto creates a new Oto output.
func NewOto() *Oto {
	o := &Oto{}
	o.volume.Store(100)
	return o
}

// Open initializes the output device.
func (o *Oto) Open(sampleRate int) error {
	// oto allows one context per process; reuse it if the rate matches.
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate {
			log.Printf("Warning: rate change %d -> %d not supported by oto, keeping existing context",
				o.sampleRate, sampleRate)
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate

	// Pipe feeds a persistent player so playback never restarts
	// between batches. The pipe write is the loop's pacing point.
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// WriteFrames outputs interleaved stereo samples, blocking until the
// device accepts them.
func (o *Oto) WriteFrames(samples []int16) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	scaled := applyVolume(samples, int(o.volume.Load()))

	buf := make([]byte, len(scaled)*2)
	for i, sample := range scaled {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}

	if _, err := o.pipeWriter.Write(buf); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close releases output resources.
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100).
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume.Store(int32(volume))
	log.Printf("Volume set to %d", volume)
}

// Volume returns the current volume.
func (o *Oto) Volume() int {
	return int(o.volume.Load())
}

// applyVolume scales samples with clipping protection.
func applyVolume(samples []int16, volume int) []int16 {
	if volume == 100 {
		return samples
	}

	multiplier := float64(volume) / 100.0
	result := make([]int16, len(samples))
	for i, sample := range samples {
		scaled := int32(float64(sample) * multiplier)
		result[i] = audio.Clamp(scaled)
	}
	return result
}
