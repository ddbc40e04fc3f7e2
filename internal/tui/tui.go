package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calmhq/calm-cli/internal/config"
	"github.com/calmhq/calm-cli/internal/store"
)

// Run starts the carousel TUI against the given store and settings.
func Run(st *store.Manager, cfgMgr *config.Manager) error {
	model, err := NewModel(st, cfgMgr)
	if err != nil {
		return fmt.Errorf("failed to create TUI model: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
