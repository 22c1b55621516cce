// kraken is a top-down naval action game for the terminal.
//
// Usage:
//
//	kraken play              - Set sail
//	kraken scores            - Print high scores and recent runs
//	kraken board             - Browse scores interactively
//	kraken serve             - Start SSH server for remote play
//	kraken list              - List available games
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.kraken/scores.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kraken/internal/config"
	_ "github.com/vovakirdan/tui-kraken/internal/games/overworld" // Registers the game
)

const defaultGame = "overworld"

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kraken",
	Short: "Kraken Waters - sink octopuses in your terminal",
	Long: `Kraken Waters is a top-down naval action game played in the terminal.
Steer your boat between the rocks, fire the cannons and survive the
octopuses for as long as you can.

Examples:
  kraken play
  kraken play --difficulty hard --seed 42
  kraken play --config ./overworld.yaml --watch
  kraken serve --ssh :2222
  kraken scores --runs`,
	SilenceUsage: true,
}

func init() {
	defaultDB := filepath.Join("~", config.AppDir, "scores.db")

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the structured logger used by every command.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// openLogFile returns a logger writing to ~/.kraken/kraken.log. The game owns
// the terminal while it runs, so nothing may be logged to stderr.
func openLogFile() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, config.AppDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}

	path := filepath.Join(dir, "kraken.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, "kraken"), func() { f.Close() }, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
