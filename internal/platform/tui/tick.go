// Package tui runs games in the terminal with Bubble Tea, locally or over SSH.
// It owns the fixed tick, key mapping, persistence of finished runs and
// config hot reload.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-kraken/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// ConfigReloadMsg carries a freshly loaded config from the watcher.
type ConfigReloadMsg struct {
	Config config.OverworldConfig
}

// ConfigErrorMsg reports a config file that failed to load.
type ConfigErrorMsg struct {
	Err error
}

// tickCmd returns a command that sends a TickMsg after one tick interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForReload blocks until the watcher produces a config or an error.
// It returns nil once the watcher is closed.
func waitForReload(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return ConfigReloadMsg{Config: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}
