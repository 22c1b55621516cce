package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/registry"
	"github.com/vovakirdan/tui-kraken/internal/storage"
)

// Reconfigurable is implemented by games that accept new tunables mid-run.
type Reconfigurable interface {
	ApplyConfig(cfg config.OverworldConfig)
}

// Options are the collaborators of a Model. All fields are optional.
type Options struct {
	Store   *storage.Store
	Logger  *log.Logger
	Watcher *config.Watcher // Pushes config reloads into the running game
	Player  string          // Recorded with each finished run
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the current game over has been recorded
	status     string
	statusTTL  int // Ticks left to show status
}

// NewModel creates a model for game.
func NewModel(game registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalized()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Info("run started", "game", m.game.ID(), "seed", m.config.Seed)
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ConfigReloadMsg:
		return m.handleReload(msg)

	case ConfigErrorMsg:
		m.opts.Logger.Error("config reload failed", "error", msg.Err)
		m.setStatus("config error, keeping previous settings")
		return m, waitForReload(m.opts.Watcher)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.opts.Logger.Info("run abandoned", "game", m.game.ID(), "score", m.gameState.Score, "ticks", m.gameState.Ticks)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleReload(msg ConfigReloadMsg) (tea.Model, tea.Cmd) {
	if rc, ok := m.game.(Reconfigurable); ok {
		rc.ApplyConfig(msg.Config)
		if m.opts.Watcher != nil {
			m.opts.Logger.Info("config reloaded", "path", m.opts.Watcher.Path())
		}
		m.setStatus("config reloaded")
	}
	return m, waitForReload(m.opts.Watcher)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		m.opts.Logger.Info("run started", "game", m.game.ID(), "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	if m.statusTTL > 0 {
		m.statusTTL--
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Failures are logged; play goes on.
func (m *Model) saveRun() {
	st := m.gameState
	logger := m.opts.Logger.With("game", m.game.ID(), "score", st.Score, "kills", st.Kills, "ticks", st.Ticks)
	if m.opts.Store == nil {
		logger.Info("run over")
		return
	}

	if st.Score > 0 {
		if _, err := m.opts.Store.SaveScore(m.game.ID(), st.Score); err != nil {
			logger.Error("cannot save score", "error", err)
		}
	}
	id, err := m.opts.Store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Score:  st.Score,
		Kills:  st.Kills,
		Ticks:  st.Ticks,
		Player: m.opts.Player,
	})
	if err != nil {
		logger.Error("cannot save run", "error", err)
		return
	}
	logger.Info("run over", "run", id)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTTL = 2 * m.config.TickRate
}

// saveScreenshot writes the current frame to ~/.kraken/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.setStatus("screenshot saved")
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusTTL > 0 && m.screen.Height() > 0 {
		m.screen.DrawTextColored(0, m.screen.Height()-1, " "+m.status+" ", core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run plays game in the local terminal until the player quits.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, opts, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
