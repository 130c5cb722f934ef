// Package config provides YAML-based rules loading and difficulty presets
// for Cash Merge.
package config

import "time"

// CashMergeConfig contains all tunable rules for a Cash Merge session.
type CashMergeConfig struct {
	Board  BoardRules  `yaml:"board"`
	Tokens TokenRules  `yaml:"tokens"`
	Events EventRules  `yaml:"events"`
	Pacing PacingRules `yaml:"pacing"`
}

// BoardRules defines how many coins appear and when.
type BoardRules struct {
	InitialTiles int `yaml:"initial_tiles"`
	SpawnPerTurn int `yaml:"spawn_per_turn"`
}

// TokenRules defines the exchange-token economy.
type TokenRules struct {
	Initial        int `yaml:"initial"`
	MergesPerToken int `yaml:"merges_per_token"` // One token per this many merges
}

// EventRules defines the exchange-rate event clocks.
type EventRules struct {
	ActivationInterval time.Duration `yaml:"activation_interval"`
	CountdownStep      time.Duration `yaml:"countdown_step"`
	BiasProbability    float64       `yaml:"bias_probability"` // Chance a biased spawn picks the favoured currency
}

// PacingRules defines the delays of the animated cascade. They only pace
// presentation and never change the outcome.
type PacingRules struct {
	MoveDelay   time.Duration `yaml:"move_delay"`
	MergeSettle time.Duration `yaml:"merge_settle"`
	ChainDelay  time.Duration `yaml:"chain_delay"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// ApplyPreset adjusts the token economy for a difficulty preset.
func ApplyPreset(cfg *CashMergeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Tokens.Initial = 5
		cfg.Tokens.MergesPerToken = 8
	case DifficultyHard:
		cfg.Tokens.Initial = 1
		cfg.Tokens.MergesPerToken = 15
	}
}

// Normalize replaces unusable values with defaults.
func (c *CashMergeConfig) Normalize() {
	def := DefaultCashMergeConfig()

	if c.Board.InitialTiles < 0 {
		c.Board.InitialTiles = def.Board.InitialTiles
	}
	if c.Board.SpawnPerTurn < 0 {
		c.Board.SpawnPerTurn = def.Board.SpawnPerTurn
	}
	if c.Tokens.Initial < 0 {
		c.Tokens.Initial = def.Tokens.Initial
	}
	if c.Tokens.MergesPerToken <= 0 {
		c.Tokens.MergesPerToken = def.Tokens.MergesPerToken
	}
	if c.Events.ActivationInterval <= 0 {
		c.Events.ActivationInterval = def.Events.ActivationInterval
	}
	if c.Events.CountdownStep <= 0 {
		c.Events.CountdownStep = def.Events.CountdownStep
	}
	if c.Events.BiasProbability <= 0 || c.Events.BiasProbability > 1 {
		c.Events.BiasProbability = def.Events.BiasProbability
	}
	if c.Pacing.MoveDelay < 0 {
		c.Pacing.MoveDelay = def.Pacing.MoveDelay
	}
	if c.Pacing.MergeSettle < 0 {
		c.Pacing.MergeSettle = def.Pacing.MergeSettle
	}
	if c.Pacing.ChainDelay < 0 {
		c.Pacing.ChainDelay = def.Pacing.ChainDelay
	}
}
