package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kraken/internal/config"
	"github.com/vovakirdan/tui-kraken/internal/games/overworld"
	"github.com/vovakirdan/tui-kraken/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
	flagServePreset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server so others can play over ssh.

Each connection gets its own run. All players share the server's
leaderboard; runs are recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.kraken/host_key

Examples:
  kraken serve                           # Listen on :23234
  kraken serve --ssh :2222               # Listen on port 2222
  kraken serve --host-key ./my_host_key  # Use specific host key
  kraken serve --difficulty hard

Players connect with:
  ssh -t localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServePreset, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	if _, ok := config.ParsePreset(flagServePreset); !ok {
		fail("unknown difficulty %q (want easy, normal, hard or fixed)", flagServePreset)
	}
	if _, err := config.LoadOverworld(flagServeConfig); err != nil {
		fail("%v", err)
	}
	overworld.SetConfigPath(flagServeConfig)
	overworld.SetDifficultyPreset(flagServePreset)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	logger := newLogger(os.Stderr, "kraken-ssh")
	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Connect with: ssh -t localhost -p <port> (listening on %s)\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
