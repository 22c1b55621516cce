package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-kraken/internal/storage"
)

func TestScoreboardSwitchesViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("overworld", 120)
	store.SaveRun(storage.Run{GameID: "overworld", Score: 120, Kills: 12, Ticks: 3600, Player: "alice"})

	m := NewScoreboardModel(store, "overworld", "Kraken Waters", 100, 30)
	if len(m.rows) != 1 {
		t.Fatalf("high score rows = %d, want 1", len(m.rows))
	}
	if !strings.Contains(m.View(), "High scores") {
		t.Error("expected high scores view first")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != viewRecentRuns {
		t.Fatalf("view = %v, want recent runs", m.view)
	}
	if len(m.rows) != 1 || m.rows[0][3] != "alice" || m.rows[0][2] != "1:00" {
		t.Errorf("run rows = %v", m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != viewHighScores {
		t.Errorf("view = %v, want wrap to high scores", m.view)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "overworld", "Kraken Waters", 60, 20)
	if !strings.Contains(m.View(), "No score database") {
		t.Error("expected missing database message")
	}
}
