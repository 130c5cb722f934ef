// cashmerge is a coin-merging puzzle for the terminal.
//
// Usage:
//
//	cashmerge play      - Play in this terminal
//	cashmerge serve     - Start SSH server for remote play
//	cashmerge api       - Start the JSON API for browser clients
//	cashmerge scores    - Show high scores
//	cashmerge rules     - Print currencies, events and rewards
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for a reproducible board
//	--db <path>          - Set database path (default: ~/.cashmerge/cashmerge.db)
//	--config <path>      - Load rules from a YAML file
//	--difficulty <name>  - Token economy preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cash-merge/internal/analytics"
	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cashmerge",
	Short: "Cash Merge - merge coins up their denominations",
	Long: `Cash Merge is a 5x5 puzzle of won, dollar and yen coins. Move or swap
coins so that two equal neighbours merge into the next denomination.
Exchange tokens convert a coin into another currency, and timed
exchange-rate events boost some merges.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  api      - Start the JSON API for browser clients
  scores   - View high scores
  rules    - Print currencies, events and rewards

Examples:
  cashmerge play
  cashmerge play --difficulty easy --seed 42
  cashmerge serve --ssh :2222
  cashmerge api --addr :8080
  cashmerge scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(rulesCmd)
}

// loadRules resolves the rules file and applies the difficulty preset.
func loadRules() (config.CashMergeConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.CashMergeConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}

	rules, err := config.Load(flagConfig)
	if err != nil {
		return rules, err
	}
	config.ApplyPreset(&rules, preset)
	return rules, nil
}

// openStore opens the database, or returns nil with a warning so the game
// still runs without saved scores.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// recorder returns store as a telemetry sink, or nil without one.
func recorder(store *storage.Store) analytics.Recorder {
	if store == nil {
		return nil
	}
	return store
}
