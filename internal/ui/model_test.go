// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests pad triggers, browser navigation, and status refresh
package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/padbank/padbank-go/pkg/engine"
)

// fakeSurface records TUI-driven calls.
type fakeSurface struct {
	triggered []int
	loaded    [][2]int
	rescans   int
	volume    int
	failWith  error
	statuses  []engine.VoiceStatus
	samples   map[string][]string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		volume: 100,
		statuses: []engine.VoiceStatus{
			{State: engine.StateLoaded, Asset: "kick/808.wav", Total: 100},
			{State: engine.StateIdle},
		},
		samples: map[string][]string{
			"kick":  {"808.wav", "909.wav"},
			"snare": {},
		},
	}
}

func (f *fakeSurface) Trigger(voice int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.triggered = append(f.triggered, voice)
	return nil
}

func (f *fakeSurface) LoadIndex(voice, index int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.loaded = append(f.loaded, [2]int{voice, index})
	return nil
}

func (f *fakeSurface) Status() []engine.VoiceStatus { return f.statuses }

func (f *fakeSurface) Samples() map[string][]string { return f.samples }

func (f *fakeSurface) Rescan() error {
	f.rescans++
	return f.failWith
}

func (f *fakeSurface) SetVolume(volume int) { f.volume = volume }

func (f *fakeSurface) Volume() int { return f.volume }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out
}

func TestNewModel(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick", "snare"})

	if m.voice != 0 {
		t.Errorf("expected voice 0 selected, got %d", m.voice)
	}
	if m.volume != 100 {
		t.Errorf("expected volume 100, got %d", m.volume)
	}
	if len(m.statuses) != 2 {
		t.Errorf("expected initial status poll, got %d voices", len(m.statuses))
	}
}

func TestPadKeysTrigger(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick", "snare"})

	m = update(t, m, key("1"))
	m = update(t, m, key("2"))

	if len(surface.triggered) != 2 || surface.triggered[0] != 0 || surface.triggered[1] != 1 {
		t.Errorf("unexpected triggers %v", surface.triggered)
	}
}

func TestPadTriggerErrorShown(t *testing.T) {
	surface := newFakeSurface()
	surface.failWith = engine.ErrNotLoaded
	m := NewModel(surface, []string{"kick"})

	m = update(t, m, key("1"))
	if m.lastErr == "" {
		t.Error("expected error surfaced to the footer")
	}
}

func TestBrowserNavigationAndLoad(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick", "snare"})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor[0] != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor[0])
	}

	// Cursor stops at the end of the folder.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor[0] != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.cursor[0])
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(surface.loaded) != 1 || surface.loaded[0] != [2]int{0, 1} {
		t.Errorf("unexpected loads %v", surface.loaded)
	}
}

func TestLoadEmptyFolder(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick", "snare"})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.voice != 1 {
		t.Fatalf("expected voice 1, got %d", m.voice)
	}

	m = update(t, m, key("s"))
	if len(surface.loaded) != 0 {
		t.Errorf("expected no load from empty folder, got %v", surface.loaded)
	}
	if !strings.Contains(m.lastErr, "empty") {
		t.Errorf("expected empty-folder error, got %q", m.lastErr)
	}
}

func TestVoiceSelectionClamped(t *testing.T) {
	m := NewModel(newFakeSurface(), []string{"kick", "snare"})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.voice != 0 {
		t.Errorf("expected voice clamped at 0, got %d", m.voice)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.voice != 1 {
		t.Errorf("expected voice clamped at 1, got %d", m.voice)
	}
}

func TestVolumeKeys(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick"})

	m = update(t, m, key("-"))
	if m.volume != 95 || surface.volume != 95 {
		t.Errorf("expected volume 95, got model=%d surface=%d", m.volume, surface.volume)
	}

	for i := 0; i < 30; i++ {
		m = update(t, m, key("+"))
	}
	if m.volume != 100 {
		t.Errorf("expected volume clamped at 100, got %d", m.volume)
	}
}

func TestRescanRefreshesSamples(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick", "snare"})

	surface.samples["snare"] = []string{"rim.wav"}
	m = update(t, m, key("r"))

	if surface.rescans != 1 {
		t.Errorf("expected one rescan, got %d", surface.rescans)
	}
	if len(m.folderSamples(1)) != 1 {
		t.Errorf("expected refreshed snare listing, got %v", m.folderSamples(1))
	}
}

func TestRescanError(t *testing.T) {
	surface := newFakeSurface()
	surface.failWith = errors.New("disk gone")
	m := NewModel(surface, []string{"kick"})

	m = update(t, m, key("r"))
	if !strings.Contains(m.lastErr, "disk gone") {
		t.Errorf("expected rescan error surfaced, got %q", m.lastErr)
	}
}

func TestRefreshPollsStatus(t *testing.T) {
	surface := newFakeSurface()
	m := NewModel(surface, []string{"kick", "snare"})

	surface.statuses[1] = engine.VoiceStatus{State: engine.StatePlaying, Asset: "snare/rim.wav", Cursor: 5, Total: 10}
	next, cmd := m.Update(refreshMsg{})
	m = next.(Model)

	if m.statuses[1].State != engine.StatePlaying {
		t.Errorf("expected refreshed status, got %+v", m.statuses[1])
	}
	if cmd == nil {
		t.Error("expected refresh to reschedule itself")
	}
}

func TestViewRenders(t *testing.T) {
	m := NewModel(newFakeSurface(), []string{"kick", "snare"})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.showList = true

	view := m.View()
	for _, want := range []string{"Padbank", "kick/808.wav", "808.wav", "Volume"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
