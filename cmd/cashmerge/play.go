package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cash-merge/internal/analytics"
	"github.com/vovakirdan/cash-merge/internal/core"
	"github.com/vovakirdan/cash-merge/internal/platform/tui"
)

var (
	flagPlayer  string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Cash Merge",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD    - Move the cursor
  Enter/Space    - Pick up a coin, then drop it on an empty cell or a coin
  Mouse          - Click a cell
  X              - Toggle exchange mode (spends a token on the next coin)
  R              - New game
  T              - High scores
  ?              - All keys
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - 5 starting tokens, one more every 8 merges
  normal - 3 starting tokens, one more every 10 merges
  hard   - 1 starting token, one more every 15 merges

Examples:
  cashmerge play
  cashmerge play --difficulty hard
  cashmerge play --config ./my-rules.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name on the scoreboard (default: $USER)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, fileErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if fileErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", fileErr)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "cashmerge",
	})

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	store := openStore()
	collector := analytics.Start(recorder(store), logger)

	runErr := tui.Run(tui.Options{
		Rules:     rules,
		Runtime:   runtime,
		Store:     store,
		Collector: collector,
		Logger:    logger,
		Player:    player,
	})

	// Flush telemetry before the store goes away
	collector.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
