// ABOUTME: Null audio sink for silent and headless operation
// ABOUTME: Discards frames while pacing the loop at the real sample rate
package output

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Null discards audio but still paces WriteFrames in wall-clock time
// so the control loop runs at the configured rate.
type Null struct {
	sampleRate int
	volume     atomic.Int32
	opened     bool
	next       time.Time
}

// NewNull creates a null sink.
func NewNull(sampleRate int) *Null {
	n := &Null{sampleRate: sampleRate}
	n.volume.Store(100)
	return n
}

// Open marks the sink ready.
func (n *Null) Open(sampleRate int) error {
	n.sampleRate = sampleRate
	n.opened = true
	n.next = time.Now()
	return nil
}

// WriteFrames discards samples, sleeping for the batch duration.
func (n *Null) WriteFrames(samples []int16) error {
	if !n.opened {
		return fmt.Errorf("output not initialized")
	}

	frames := len(samples) / channels
	n.next = n.next.Add(time.Duration(frames) * time.Second / time.Duration(n.sampleRate))
	time.Sleep(time.Until(n.next))
	return nil
}

// Close marks the sink closed.
func (n *Null) Close() error {
	n.opened = false
	return nil
}

// SetVolume records the volume.
func (n *Null) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	n.volume.Store(int32(volume))
}

// Volume returns the recorded volume.
func (n *Null) Volume() int {
	return int(n.volume.Load())
}
