package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-kraken/internal/platform/tui"
	"github.com/vovakirdan/tui-kraken/internal/registry"
	"github.com/vovakirdan/tui-kraken/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board [game]",
	Short: "Browse high scores and recent runs",
	Args:  cobra.MaximumNArgs(1),
	Run:   runBoard,
}

func runBoard(cmd *cobra.Command, args []string) {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fail("%v (run 'kraken list')", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunScoreboard(store, gameID, game.Title(), width, height); err != nil {
		store.Close()
		fail("%v", err)
	}
}
