package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/storage"
)

// scriptedGame ends after a fixed number of ticks.
type scriptedGame struct {
	ticks    int
	endAt    int
	resets   int
	lastIn   core.InputFrame
	reloaded *config.OverworldConfig
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = core.NewInputFrame()
	for a := range in.Actions {
		g.lastIn.Set(a)
	}
	if g.ticks < g.endAt {
		g.ticks++
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:    g.ticks * 10,
		Kills:    g.ticks,
		Ticks:    g.ticks,
		GameOver: g.ticks >= g.endAt,
	}
}

func (g *scriptedGame) ApplyConfig(cfg config.OverworldConfig) {
	g.reloaded = &cfg
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &scriptedGame{endAt: 3}
	m := NewModel(game, Options{Store: store, Player: "tester"}, testConfig())
	m.Init()

	for i := 0; i < 6; i++ {
		m = step(t, m, TickMsg{})
	}
	if !m.GameState().GameOver {
		t.Fatal("expected game over")
	}

	runs, err := store.RecentRuns("scripted", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want exactly 1", len(runs))
	}
	if runs[0].Score != 30 || runs[0].Kills != 3 || runs[0].Player != "tester" {
		t.Errorf("run = %+v", runs[0])
	}
	if high, _ := store.HighScore("scripted"); high != 30 {
		t.Errorf("high score = %d, want 30", high)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &scriptedGame{endAt: 1}
	m := NewModel(game, Options{}, testConfig())
	m.Init()

	m = step(t, m, TickMsg{})
	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg{})

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.GameState().GameOver {
		t.Error("expected a fresh run after restart")
	}
}

func TestModelForwardsKeysAsActions(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, Options{}, testConfig())
	m.Init()

	m = step(t, m, runeKey('d'))
	m = step(t, m, runeKey('e'))
	m = step(t, m, TickMsg{})

	if !game.lastIn.Has(core.ActionRight) || !game.lastIn.Has(core.ActionSpecial) {
		t.Errorf("game saw %v", game.lastIn.Actions)
	}

	m = step(t, m, TickMsg{})
	if len(game.lastIn.Actions) != 0 {
		t.Errorf("input not cleared between ticks: %v", game.lastIn.Actions)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&scriptedGame{endAt: 100}, Options{}, testConfig())
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelAppliesConfigReload(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewModel(game, Options{}, testConfig())
	m.Init()

	cfg := config.DefaultOverworldConfig()
	cfg.Player.Speed = 123
	m = step(t, m, ConfigReloadMsg{Config: cfg})

	if game.reloaded == nil || game.reloaded.Player.Speed != 123 {
		t.Fatal("config reload not applied")
	}
	if !strings.Contains(m.View(), "config reloaded") {
		t.Error("expected reload status in view")
	}
}
