package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandHome("~/.cashmerge/x.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cashmerge", "x.db"); got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}
	if got, _ := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{Player: "ana", Score: 12000, Merges: 30, CouponPercent: 10},
		{Player: "bo", Score: 55000, Merges: 90, CouponPercent: 50},
		{Player: "cy", Score: 800, Merges: 4},
		{Player: "di", Score: 12000, Merges: 28, CouponPercent: 10},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(scores))
	}

	want := []string{"bo", "ana", "di"}
	for i, name := range want {
		if scores[i].Player != name {
			t.Errorf("rank %d = %s, want %s", i+1, scores[i].Player, name)
		}
	}
	if scores[0].Merges != 90 || scores[0].CouponPercent != 50 {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("created_at was not parsed")
	}
}

func TestStoreTopScoresDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 15 {
		store.SaveScore(ScoreEntry{Score: i * 100})
	}

	scores, err := store.TopScores(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 10 {
		t.Errorf("got %d scores, want 10", len(scores))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	if hs, err := store.HighScore(); err != nil || hs != 0 {
		t.Fatalf("empty HighScore() = %d, %v", hs, err)
	}

	store.SaveScore(ScoreEntry{Score: 500})
	store.SaveScore(ScoreEntry{Score: 31000})

	if hs, _ := store.HighScore(); hs != 31000 {
		t.Errorf("HighScore() = %d, want 31000", hs)
	}

	if err := store.ClearScores(); err != nil {
		t.Fatal(err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("%d scores left after clear", len(scores))
	}
}

func TestStoreTelemetry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.RecordTelemetry(ctx, "s1", "merge", map[string]any{"currency": "KRW", "to": 5000}))
	must(store.RecordTelemetry(ctx, "s1", "exchange", nil))
	must(store.RecordTelemetry(ctx, "s2", "merge", map[string]any{"currency": "USD", "to": 10}))

	n, err := store.CountTelemetry(ctx, "merge")
	must(err)
	if n != 2 {
		t.Errorf("merge count = %d, want 2", n)
	}

	records, err := store.SessionTelemetry(ctx, "s1")
	must(err)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Kind != "merge" || records[0].Payload["currency"] != "KRW" {
		t.Errorf("first record = %+v", records[0])
	}
	// JSON numbers decode as float64.
	if records[0].Payload["to"] != float64(5000) {
		t.Errorf("payload to = %v", records[0].Payload["to"])
	}
	if records[1].Kind != "exchange" || len(records[1].Payload) != 0 {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestStoreTelemetryHonoursContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.RecordTelemetry(ctx, "s1", "merge", nil); err == nil {
		t.Error("RecordTelemetry with a cancelled context should fail")
	}
}
