package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

func TestPrintRules(t *testing.T) {
	var buf bytes.Buffer
	printRules(&buf, config.DefaultCashMergeConfig())
	out := buf.String()

	for _, want := range []string{
		"₩100 > ₩500 > ₩1000 > ₩5000 > ₩10000 > ₩50000",
		"$1 > $5 > $10 > $20 > $50 > $100",
		"¥100",
		"Dollar Surge!",
		"Weak Yen!",
		"Strong Won!",
		"50% exchange fee discount",
		"Starting tokens:   3",
		"Token every:       10 merges",
		"Event every:       20s",
	} {
		assert.Contains(t, out, want)
	}
}

func withFlags(t *testing.T, cfgPath, difficulty string) {
	t.Helper()
	oldCfg, oldDiff := flagConfig, flagDifficulty
	flagConfig, flagDifficulty = cfgPath, difficulty
	t.Cleanup(func() { flagConfig, flagDifficulty = oldCfg, oldDiff })
}

func TestLoadRulesPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  spawn_per_turn: 3\n"), 0o600))

	tests := []struct {
		difficulty  string
		wantInitial int
		wantPer     int
	}{
		{"", 3, 10},
		{"normal", 3, 10},
		{"easy", 5, 8},
		{"hard", 1, 15},
	}
	for _, tt := range tests {
		t.Run("preset "+tt.difficulty, func(t *testing.T) {
			withFlags(t, path, tt.difficulty)
			rules, err := loadRules()
			require.NoError(t, err)
			assert.Equal(t, 3, rules.Board.SpawnPerTurn, "file values apply")
			assert.Equal(t, tt.wantInitial, rules.Tokens.Initial)
			assert.Equal(t, tt.wantPer, rules.Tokens.MergesPerToken)
		})
	}
}

func TestLoadRulesErrors(t *testing.T) {
	withFlags(t, "", "nightmare")
	_, err := loadRules()
	assert.ErrorContains(t, err, "unknown difficulty")

	withFlags(t, filepath.Join(t.TempDir(), "missing.yaml"), "")
	_, err = loadRules()
	assert.Error(t, err)
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var buf bytes.Buffer
	require.NoError(t, printScores(&buf, store, 10))
	assert.Contains(t, buf.String(), "No scores recorded yet.")

	_, err = store.SaveScore(storage.ScoreEntry{Player: "erin", Score: 10500, Merges: 33, CouponPercent: 10})
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, printScores(&buf, store, 10))
	out := buf.String()
	assert.Contains(t, out, "erin")
	assert.Contains(t, out, "10%")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Best: 10500"))
}
