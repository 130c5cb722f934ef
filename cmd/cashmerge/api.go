package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cash-merge/internal/analytics"
	"github.com/vovakirdan/cash-merge/internal/platform/web"
)

var (
	flagAPIAddr     string
	flagMaxSessions int
	flagVerbose     bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the JSON API server",
	Long: `Start an HTTP server for browser clients.

Endpoints:
  POST   /api/sessions                 - Start a game {"player": "...", "seed": 0}
  GET    /api/sessions/{id}            - Current state
  POST   /api/sessions/{id}/click      - Click a cell {"row": 0, "col": 0}
  POST   /api/sessions/{id}/exchange   - Toggle exchange mode
  POST   /api/sessions/{id}/reset      - New game
  DELETE /api/sessions/{id}            - End a game
  GET    /api/scores                   - Top scores
  GET    /api/rules                    - Currencies, events and rewards

Moves and swaps are answered with the fully settled board.

Examples:
  cashmerge api
  cashmerge api --addr 127.0.0.1:9000 --verbose`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", web.DefaultMaxSessions, "Maximum concurrent games")
	apiCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every request")
}

func runAPI(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cashmerge-api",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	store := openStore()
	collector := analytics.Start(recorder(store), logger)

	server := web.NewServer(web.ServerConfig{
		Address:     flagAPIAddr,
		Rules:       rules,
		Store:       store,
		Collector:   collector,
		Logger:      logger,
		MaxSessions: flagMaxSessions,
	})
	runErr := server.ListenAndServe()

	collector.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("server error", "error", runErr)
		os.Exit(1)
	}
}
