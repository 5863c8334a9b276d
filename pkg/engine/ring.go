// ABOUTME: Fixed-capacity ring buffer for 16-bit samples
// ABOUTME: Single-owner circular store backing each voice stream
package engine

// RingBuffer is a fixed-capacity circular store of 16-bit samples.
// Allocated once at startup and reused for the life of its voice.
// Invariant: 0 <= Len() <= Capacity(), head and tail stay inside
// [0, capacity).
type RingBuffer struct {
	buf   []int16
	head  int
	tail  int
	count int
}

// NewRingBuffer allocates a ring holding up to capacity samples.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]int16, capacity)}
}

// Capacity returns the fixed sample capacity.
func (r *RingBuffer) Capacity() int { return len(r.buf) }

// Len returns the number of buffered samples.
func (r *RingBuffer) Len() int { return r.count }

// Free returns how many more samples fit.
func (r *RingBuffer) Free() int { return len(r.buf) - r.count }

// Push appends one sample at the tail. Returns false when full.
func (r *RingBuffer) Push(s int16) bool {
	if r.count == len(r.buf) {
		return false
	}
	r.buf[r.tail] = s
	r.tail = (r.tail + 1) % len(r.buf)
	r.count++
	return true
}

// Pop removes and returns the sample at the head. Returns false when
// empty.
func (r *RingBuffer) Pop() (int16, bool) {
	if r.count == 0 {
		return 0, false
	}
	s := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return s, true
}

// Reset discards all buffered samples.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.tail = 0
	r.count = 0
}
