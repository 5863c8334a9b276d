// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the machine UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI over the given machine surface.
func Run(surface Surface, folders []string) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(surface, folders), tea.WithAltScreen())
	return p, nil
}
