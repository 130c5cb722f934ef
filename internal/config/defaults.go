package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/cashmerge.yaml
var defaultCashMergeYAML []byte

// DefaultCashMergeConfig returns the default Cash Merge rules.
func DefaultCashMergeConfig() CashMergeConfig {
	return CashMergeConfig{
		Board: BoardRules{
			InitialTiles: 8,
			SpawnPerTurn: 2,
		},
		Tokens: TokenRules{
			Initial:        3,
			MergesPerToken: 10,
		},
		Events: EventRules{
			ActivationInterval: 20 * time.Second,
			CountdownStep:      time.Second,
			BiasProbability:    0.6,
		},
		Pacing: PacingRules{
			MoveDelay:   100 * time.Millisecond,
			MergeSettle: 300 * time.Millisecond,
			ChainDelay:  100 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultCashMergeYAML
}
