// ABOUTME: Per-voice streaming state machine
// ABOUTME: Owns one ring buffer and one storage cursor, emits one sample per tick
package engine

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/padbank/padbank-go/pkg/audio/wave"
)

// State is a voice's position in its lifecycle.
type State int

const (
	// StateIdle: no bound asset.
	StateIdle State = iota
	// StateLoaded: asset bound, cursor reset, no open handle.
	StateLoaded
	// StatePlaying: handle open, streaming samples.
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Voice is one playback channel. It is exclusively owned by the control
// loop; no method may run concurrently with another.
type Voice struct {
	store Store

	state  State
	asset  string
	rate   int
	total  uint32
	cursor uint32

	ring      *RingBuffer
	handle    io.ReadSeekCloser
	endOfData bool

	underruns uint64
	scratch   []byte
}

func newVoice(store Store, ringCapacity int) *Voice {
	return &Voice{
		store:   store,
		ring:    NewRingBuffer(ringCapacity),
		scratch: make([]byte, ringCapacity*2),
	}
}

// Load binds a canonical asset to the voice. Any open handle is
// discarded and the cursor resets to zero. The asset header is read
// once here to learn the total sample count; non-canonical assets are
// rejected.
func (v *Voice) Load(ref string) error {
	h, err := v.store.Open(ref)
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	hdr, err := wave.Parse(h)
	h.Close()
	if err != nil {
		return fmt.Errorf("asset header: %w", err)
	}
	if !hdr.Canonical() {
		return fmt.Errorf("%w: %d channels, %d-bit", ErrNotCanonical, hdr.Channels, hdr.BitDepth)
	}

	v.closeHandle()
	v.asset = ref
	v.rate = hdr.SampleRate
	v.total = hdr.Frames()
	v.cursor = 0
	v.endOfData = false
	v.state = StateLoaded
	return nil
}

// Trigger starts playback from sample zero. Retriggering a playing
// voice is an abrupt restart: cursor and ring are wiped, a fresh handle
// is opened past the header, and the ring is filled synchronously.
func (v *Voice) Trigger() error {
	if v.state == StateIdle {
		return ErrNotLoaded
	}

	v.cursor = 0
	v.ring.Reset()
	v.endOfData = false
	v.closeHandle()

	h, err := v.store.Open(v.asset)
	if err != nil {
		v.state = StateLoaded
		return fmt.Errorf("open asset: %w", err)
	}
	if _, err := h.Seek(wave.HeaderSize, io.SeekStart); err != nil {
		h.Close()
		v.state = StateLoaded
		return fmt.Errorf("seek past header: %w", err)
	}

	v.handle = h
	v.state = StatePlaying
	return v.Refill()
}

// TickOutput emits the next sample. An empty ring during playback is an
// underrun: the voice emits silence and stays Playing. Reaching the
// total sample count closes the handle and returns the voice to Loaded.
func (v *Voice) TickOutput() int16 {
	if v.state != StatePlaying {
		return 0
	}
	if v.cursor >= v.total {
		// Zero-length asset: nothing to play.
		v.finish()
		return 0
	}

	s, ok := v.ring.Pop()
	if !ok {
		v.underruns++
		return 0
	}

	v.cursor++
	if v.cursor >= v.total {
		v.finish()
	}
	return s
}

// Refill tops the ring up from the open handle with one blocking read.
// A short read latches end-of-data for this playback; no retries.
func (v *Voice) Refill() error {
	if v.state != StatePlaying || v.endOfData {
		return nil
	}

	want := v.ring.Free()
	if remaining := v.total - v.cursor - uint32(v.ring.Len()); uint32(want) > remaining {
		want = int(remaining)
	}
	if want == 0 {
		return nil
	}

	buf := v.scratch[:want*2]
	n, err := io.ReadFull(v.handle, buf)
	for i := 0; i < n/2; i++ {
		v.ring.Push(int16(binary.LittleEndian.Uint16(buf[i*2:])))
	}

	if err != nil {
		v.endOfData = true
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		return fmt.Errorf("refill read: %w", err)
	}
	return nil
}

// Status reports the voice for displays and the control surface.
func (v *Voice) Status() VoiceStatus {
	return VoiceStatus{
		State:     v.state,
		Asset:     v.asset,
		Cursor:    v.cursor,
		Total:     v.total,
		Buffered:  v.ring.Len(),
		Underruns: v.underruns,
	}
}

func (v *Voice) finish() {
	v.closeHandle()
	v.state = StateLoaded
}

func (v *Voice) closeHandle() {
	if v.handle != nil {
		v.handle.Close()
		v.handle = nil
	}
}

// VoiceStatus is a point-in-time snapshot of one voice.
type VoiceStatus struct {
	State     State
	Asset     string
	Cursor    uint32
	Total     uint32
	Buffered  int
	Underruns uint64
}
