package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/games/overworld"
	"github.com/vovakirdan/tui-kraken/internal/platform/tui"
	"github.com/vovakirdan/tui-kraken/internal/registry"
	"github.com/vovakirdan/tui-kraken/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagProfile    bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Set sail",
	Long: `Start a new run.

Controls:
  WASD/Arrows  - Steer (a press keeps steering for a moment)
  Space/F      - Fire the forward cannon
  E/X          - Shockwave (long cooldown)
  P/Esc        - Pause
  G/Tab        - Toggle the collision overlay
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Every few kills the cannon levels up: heavier, faster balls, and from the
top level they pierce. Octopuses come in three kinds; the tougher ones
appear as the difficulty rises.

Difficulty options:
  easy   - Start at lowest difficulty, more health
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, less health, tougher octopuses
  fixed  - No progression, stays at the config's initial level

With --watch the config file is reloaded while you play; speeds, timers and
spawn rules change without restarting the run.

Examples:
  kraken play
  kraken play --difficulty hard
  kraken play --config ./overworld.yaml --watch
  kraken play --profile`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	playCmd.Flags().BoolVar(&flagProfile, "profile", false, "Write a CPU profile to ~/.kraken/profile")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	if err := play(gameID); err != nil {
		fail("%v", err)
	}
}

func play(gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'kraken list')", gameID)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	// Fail on a broken config file now, not silently inside the game
	if _, err := config.LoadOverworld(flagConfig); err != nil {
		return err
	}
	overworld.SetConfigPath(flagConfig)
	overworld.SetDifficultyPreset(flagDifficulty)

	logger, closeLog, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger, closeLog = newLogger(io.Discard, "kraken"), func() {}
	}
	defer closeLog()

	if flagProfile {
		dir := filepath.Join(filepath.Dir(flagDBPathExpanded()), "profile")
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet).Stop()
		logger.Info("cpu profiling", "dir", dir)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var watcher *config.Watcher
	if flagWatch {
		path, err := watchTarget(flagConfig)
		if err != nil {
			return err
		}
		watcher, err = config.NewWatcher(path)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		defer watcher.Close()
		logger.Info("watching config", "path", watcher.Path())
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, tui.Options{
		Store:   store,
		Logger:  logger,
		Watcher: watcher,
		Player:  playerName(),
	}, cfg)
}

// watchTarget picks the file --watch follows: the --config file, else the
// first config file that exists on the search path.
func watchTarget(custom string) (string, error) {
	if custom != "" {
		return custom, nil
	}
	candidates := []string{
		config.UserConfigPath("overworld.yaml"),
		filepath.Join("configs", "overworld.yaml"),
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", errors.New("--watch needs a config file: pass --config or create ~/.kraken/configs/overworld.yaml")
}

func flagDBPathExpanded() string {
	p := flagDBPath
	if p != "" && p[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
