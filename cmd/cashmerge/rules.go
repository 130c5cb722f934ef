package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/games/cashmerge"
)

var flagRulesTemplate bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print currencies, events and rewards",
	Long: `Print the denomination ladders, exchange-rate events and coupon
rewards, followed by the effective rules for the chosen config and
difficulty.

Use --template to print a commented rules file to start a custom config from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagRulesTemplate {
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}
		rules, err := loadRules()
		if err != nil {
			return err
		}
		printRules(cmd.OutOrStdout(), rules)
		return nil
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesTemplate, "template", false, "Print the default rules YAML")
}

func printRules(w io.Writer, rules config.CashMergeConfig) {
	fmt.Fprintln(w, "Currencies (two equal neighbours merge into the next coin):")
	for _, c := range cashmerge.Currencies {
		info := c.Info()
		steps := make([]string, len(info.Ladder))
		for i, v := range info.Ladder {
			steps[i] = info.Symbol + strconv.Itoa(v)
		}
		fmt.Fprintf(w, "  %-3s %-7s %s\n", info.Code, info.Name, strings.Join(steps, " > "))
	}
	fmt.Fprintln(w, "  Top coins never merge. A merge scores the new coin's value.")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exchange-rate events:")
	for _, ev := range cashmerge.Events {
		fmt.Fprintf(w, "  %-14s %s (%ds)\n", ev.Name, ev.Description, ev.Duration)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Coupons at game over:")
	for _, tier := range cashmerge.CouponTiers() {
		fmt.Fprintf(w, "  %6d+ points  %s\n", tier.MinScore, tier.Label)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Current rules:")
	fmt.Fprintf(w, "  Opening coins:     %d\n", rules.Board.InitialTiles)
	fmt.Fprintf(w, "  Coins per turn:    %d\n", rules.Board.SpawnPerTurn)
	fmt.Fprintf(w, "  Starting tokens:   %d\n", rules.Tokens.Initial)
	fmt.Fprintf(w, "  Token every:       %d merges\n", rules.Tokens.MergesPerToken)
	fmt.Fprintf(w, "  Event every:       %s\n", rules.Events.ActivationInterval)
}
