// ABOUTME: Bubbletea model for the machine TUI
// ABOUTME: Defines pad, voice, and library browser state and update logic
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/padbank/padbank-go/pkg/engine"
)

// Surface is the slice of the machine the TUI drives.
type Surface interface {
	Trigger(voice int) error
	LoadIndex(voice, index int) error
	Status() []engine.VoiceStatus
	Samples() map[string][]string
	Rescan() error
	SetVolume(volume int)
	Volume() int
}

// refreshMsg asks the model to poll machine status.
type refreshMsg struct{}

const refreshInterval = 200 * time.Millisecond

// Model represents the TUI state
type Model struct {
	surface Surface
	folders []string

	// Selection
	voice  int
	cursor []int

	// Machine state
	statuses []engine.VoiceStatus
	samples  map[string][]string
	volume   int

	// View
	showList bool
	lastErr  string
	width    int
	height   int
}

// NewModel creates a new TUI model. folders gives the slot order so
// the browser matches the voice layout.
func NewModel(surface Surface, folders []string) Model {
	m := Model{
		surface: surface,
		folders: folders,
		cursor:  make([]int, len(folders)),
		volume:  100,
	}
	if surface != nil {
		m.samples = surface.Samples()
		m.statuses = surface.Status()
		m.volume = surface.Volume()
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case refreshMsg:
		if m.surface != nil {
			m.statuses = m.surface.Status()
			m.volume = m.surface.Volume()
		}
		return m, m.tick()
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1", "2", "3", "4":
		pad := int(msg.String()[0] - '1')
		m.fire(pad)

	case "left":
		if m.voice > 0 {
			m.voice--
		}

	case "right":
		if m.voice < len(m.folders)-1 {
			m.voice++
		}

	case "up":
		if m.cursor[m.voice] > 0 {
			m.cursor[m.voice]--
		}

	case "down":
		if m.cursor[m.voice] < len(m.folderSamples(m.voice))-1 {
			m.cursor[m.voice]++
		}

	case "enter", "s":
		m.load()

	case "l":
		m.showList = !m.showList

	case "r":
		if m.surface != nil {
			if err := m.surface.Rescan(); err != nil {
				m.lastErr = err.Error()
			} else {
				m.samples = m.surface.Samples()
				m.lastErr = ""
			}
		}

	case "+", "=":
		m.setVolume(m.volume + 5)

	case "-":
		m.setVolume(m.volume - 5)
	}

	return m, nil
}

// fire triggers a pad.
func (m *Model) fire(pad int) {
	if m.surface == nil || pad >= len(m.folders) {
		return
	}
	if err := m.surface.Trigger(pad); err != nil {
		m.lastErr = fmt.Sprintf("pad %d: %v", pad+1, err)
	} else {
		m.lastErr = ""
	}
}

// load binds the selected sample to the selected voice.
func (m *Model) load() {
	if m.surface == nil {
		return
	}
	if len(m.folderSamples(m.voice)) == 0 {
		m.lastErr = fmt.Sprintf("%s: folder is empty", m.folderName(m.voice))
		return
	}
	if err := m.surface.LoadIndex(m.voice, m.cursor[m.voice]); err != nil {
		m.lastErr = err.Error()
	} else {
		m.lastErr = ""
	}
}

func (m *Model) setVolume(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	m.volume = v
	if m.surface != nil {
		m.surface.SetVolume(v)
	}
}

func (m Model) folderName(slot int) string {
	if slot < len(m.folders) {
		return m.folders[slot]
	}
	return ""
}

func (m Model) folderSamples(slot int) []string {
	return m.samples[m.folderName(slot)]
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.renderHeader()
	s += m.renderVoices()
	if m.showList {
		s += m.renderBrowser()
	}
	s += m.renderFooter()

	return s
}

// renderHeader renders the title bar and volume
func (m Model) renderHeader() string {
	volumeBar := renderBar(m.volume, 100, 10)
	return fmt.Sprintf(`┌─ Padbank ────────────────────────────────────────────┐
│ Volume: [%s] %3d%%%-30s │
├──────────────────────────────────────────────────────┤
`, volumeBar, m.volume, "")
}

// renderVoices renders one line per voice
func (m Model) renderVoices() string {
	s := ""
	for i, st := range m.statuses {
		marker := " "
		if i == m.voice {
			marker = ">"
		}

		asset := st.Asset
		if asset == "" {
			asset = "(empty)"
		}

		progress := ""
		if st.State == engine.StatePlaying && st.Total > 0 {
			progress = fmt.Sprintf(" [%s]", renderBar(int(st.Cursor), int(st.Total), 8))
		}

		line := fmt.Sprintf("%s %d %-8s %-7s %s%s",
			marker, i+1, m.folderName(i), st.State, truncate(asset, 22), progress)
		s += fmt.Sprintf("│ %-52s │\n", line)
	}
	if len(m.statuses) == 0 {
		s += "│ (no voices)                                          │\n"
	}
	return s
}

// renderBrowser renders the sample list for the selected voice
func (m Model) renderBrowser() string {
	s := "├──────────────────────────────────────────────────────┤\n"
	names := m.folderSamples(m.voice)
	if len(names) == 0 {
		return s + fmt.Sprintf("│ %-52s │\n", m.folderName(m.voice)+": empty")
	}

	for i, name := range names {
		marker := " "
		if i == m.cursor[m.voice] {
			marker = ">"
		}
		s += fmt.Sprintf("│ %s %-50s │\n", marker, truncate(name, 50))
	}
	return s
}

// renderFooter renders errors and keyboard shortcuts
func (m Model) renderFooter() string {
	s := "├──────────────────────────────────────────────────────┤\n"
	if m.lastErr != "" {
		s += fmt.Sprintf("│ ! %-50s │\n", truncate(m.lastErr, 50))
	}
	s += `│ 1-4:Pads  ←/→:Voice  ↑/↓:Sample  s:Load  l:List     │
│ r:Rescan  +/-:Volume  q:Quit                         │
└──────────────────────────────────────────────────────┘
`
	return s
}

// Utility functions
func renderBar(value, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
