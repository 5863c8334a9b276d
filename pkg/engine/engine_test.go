// ABOUTME: Tests for the engine mixer and control surface
// ABOUTME: Tests clamping, stereo duplication, refill thresholds, slot bounds
package engine

import (
	"errors"
	"testing"
)

func TestTickMixesAndClamps(t *testing.T) {
	store := newMemStore()
	store.addAsset(t, "loud.wav", constSamples(10, 20000))
	e := New(store, 4, 16)

	for voice := 0; voice < 3; voice++ {
		if err := e.Load(voice, "loud.wav"); err != nil {
			t.Fatalf("load voice %d: %v", voice, err)
		}
		if err := e.Trigger(voice); err != nil {
			t.Fatalf("trigger voice %d: %v", voice, err)
		}
	}

	// Three voices at +20000 sum to 60000 and must clamp, not wrap.
	l, r := e.Tick()
	if l != 32767 {
		t.Errorf("expected clamped 32767, got %d", l)
	}
	if l != r {
		t.Errorf("expected identical channels, got %d / %d", l, r)
	}
}

func TestTickSumsInRange(t *testing.T) {
	store := newMemStore()
	store.addAsset(t, "a.wav", constSamples(10, 1000))
	store.addAsset(t, "b.wav", constSamples(10, -400))
	e := New(store, 4, 16)

	for voice, ref := range map[int]string{0: "a.wav", 1: "b.wav"} {
		if err := e.Load(voice, ref); err != nil {
			t.Fatalf("load: %v", err)
		}
		if err := e.Trigger(voice); err != nil {
			t.Fatalf("trigger: %v", err)
		}
	}

	l, r := e.Tick()
	if l != 600 || r != 600 {
		t.Errorf("expected 600/600, got %d/%d", l, r)
	}
}

func TestTickSilentWhenIdle(t *testing.T) {
	e := New(newMemStore(), 4, 16)
	l, r := e.Tick()
	if l != 0 || r != 0 {
		t.Errorf("expected silence from idle engine, got %d/%d", l, r)
	}
}

func TestRefillBelowThreshold(t *testing.T) {
	store := newMemStore()
	store.addAsset(t, "long.wav", rampSamples(200))
	e := New(store, 2, 16)

	if err := e.Load(0, "long.wav"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := e.Trigger(0); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	// Drain below the threshold, then refill.
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	if got := e.Status()[0].Buffered; got != 6 {
		t.Fatalf("expected 6 buffered, got %d", got)
	}

	e.RefillBelow(8)
	if got := e.Status()[0].Buffered; got != 16 {
		t.Errorf("expected refill to capacity, got %d", got)
	}

	// Above the threshold nothing happens.
	e.Tick()
	e.RefillBelow(8)
	if got := e.Status()[0].Buffered; got != 15 {
		t.Errorf("expected no refill above threshold, got %d", got)
	}
}

func TestEngineInvalidVoice(t *testing.T) {
	e := New(newMemStore(), 4, 16)

	if err := e.Load(-1, "x"); !errors.Is(err, ErrInvalidVoice) {
		t.Errorf("expected ErrInvalidVoice, got %v", err)
	}
	if err := e.Load(4, "x"); !errors.Is(err, ErrInvalidVoice) {
		t.Errorf("expected ErrInvalidVoice, got %v", err)
	}
	if err := e.Trigger(99); !errors.Is(err, ErrInvalidVoice) {
		t.Errorf("expected ErrInvalidVoice, got %v", err)
	}
}

func TestEngineFailingVoiceStaysSilent(t *testing.T) {
	store := newMemStore()
	store.addAsset(t, "ok.wav", constSamples(20, 5))
	e := New(store, 2, 16)

	if err := e.Load(0, "ok.wav"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := e.Trigger(0); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	// Voice 1 was never loaded; its trigger is a reported no-op and the
	// engine keeps mixing voice 0.
	if err := e.Trigger(1); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	l, _ := e.Tick()
	if l != 5 {
		t.Errorf("expected playing voice unaffected, got %d", l)
	}
}

func TestEngineDefaults(t *testing.T) {
	e := New(newMemStore(), 0, 0)
	if e.Voices() != DefaultVoices {
		t.Errorf("expected %d voices, got %d", DefaultVoices, e.Voices())
	}
	statuses := e.Status()
	if len(statuses) != DefaultVoices {
		t.Fatalf("expected %d statuses, got %d", DefaultVoices, len(statuses))
	}
	for i, st := range statuses {
		if st.State != StateIdle {
			t.Errorf("voice %d: expected idle, got %v", i, st.State)
		}
	}
}
