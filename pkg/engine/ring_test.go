// ABOUTME: Tests for the sample ring buffer
// ABOUTME: Checks the count/head/tail invariant across reachable states
package engine

import "testing"

func checkInvariant(t *testing.T, r *RingBuffer) {
	t.Helper()
	if r.Len() < 0 || r.Len() > r.Capacity() {
		t.Fatalf("count %d outside [0, %d]", r.Len(), r.Capacity())
	}
	if r.head < 0 || r.head >= r.Capacity() {
		t.Fatalf("head %d outside [0, %d)", r.head, r.Capacity())
	}
	if r.tail < 0 || r.tail >= r.Capacity() {
		t.Fatalf("tail %d outside [0, %d)", r.tail, r.Capacity())
	}
}

func TestRingPushPopOrder(t *testing.T) {
	r := NewRingBuffer(4)

	for i := int16(1); i <= 4; i++ {
		if !r.Push(i) {
			t.Fatalf("push %d failed on non-full ring", i)
		}
		checkInvariant(t, r)
	}
	if r.Push(5) {
		t.Error("push succeeded on full ring")
	}
	if r.Len() != 4 || r.Free() != 0 {
		t.Errorf("expected full ring, got len=%d free=%d", r.Len(), r.Free())
	}

	for i := int16(1); i <= 4; i++ {
		s, ok := r.Pop()
		checkInvariant(t, r)
		if !ok || s != i {
			t.Errorf("expected pop %d, got %d ok=%v", i, s, ok)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Error("pop succeeded on empty ring")
	}
}

func TestRingWraparound(t *testing.T) {
	r := NewRingBuffer(3)

	// Drive head and tail through several full revolutions.
	next := int16(0)
	expect := int16(0)
	for i := 0; i < 50; i++ {
		for r.Free() > 0 {
			r.Push(next)
			next++
			checkInvariant(t, r)
		}
		// Drain partially so the indices move unevenly.
		for j := 0; j < 2; j++ {
			s, ok := r.Pop()
			checkInvariant(t, r)
			if !ok || s != expect {
				t.Fatalf("iteration %d: expected %d, got %d ok=%v", i, expect, s, ok)
			}
			expect++
		}
	}
}

func TestRingReset(t *testing.T) {
	r := NewRingBuffer(8)
	for i := 0; i < 5; i++ {
		r.Push(int16(i))
	}
	r.Reset()
	checkInvariant(t, r)

	if r.Len() != 0 {
		t.Errorf("expected empty ring after reset, got %d", r.Len())
	}
	if _, ok := r.Pop(); ok {
		t.Error("pop succeeded after reset")
	}
}
