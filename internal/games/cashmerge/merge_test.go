package cashmerge

import "testing"

func eventOf(typ EventType) *Event {
	for _, ev := range Events {
		if ev.Type == typ {
			return &ev
		}
	}
	return nil
}

func TestResolveOneHorizontal(t *testing.T) {
	b := boardOf(map[Pos]Tile{
		at(2, 2): coin(CurrencyKRW, 1000),
		at(2, 3): coin(CurrencyKRW, 1000),
	})
	r := NewResolver(NewRand(1))

	res := r.ResolveOne(b, nil)

	if !res.Merged {
		t.Fatal("expected a merge")
	}
	if res.ScoreDelta != 5000 {
		t.Errorf("score = %d, want 5000", res.ScoreDelta)
	}
	got := res.Board.At(at(2, 2))
	if got == nil || got.Currency != CurrencyKRW || got.Value != 5000 {
		t.Fatalf("(2,2) = %+v, want ₩5000", got)
	}
	if !got.IsMerging {
		t.Error("result of ResolveOne should be flagged as merging")
	}
	if res.Board.At(at(2, 3)) != nil {
		t.Error("(2,3) should be empty")
	}
	if res.Board.TileCount() != 1 {
		t.Errorf("tile count = %d, want 1", res.Board.TileCount())
	}
	if err := res.Board.Validate(); err != nil {
		t.Error(err)
	}
}

func TestResolveOneLeavesInputUntouched(t *testing.T) {
	b := boardOf(map[Pos]Tile{
		at(0, 0): coin(CurrencyUSD, 5),
		at(0, 1): coin(CurrencyUSD, 5),
	})
	before := b.Clone()

	NewResolver(NewRand(1)).ResolveOne(b, nil)

	for _, p := range []Pos{at(0, 0), at(0, 1)} {
		if b.At(p) == nil || *b.At(p) != *before.At(p) {
			t.Errorf("input board changed at %v", p)
		}
	}
}

func TestResolveOneVerticalLandsOnUpperCell(t *testing.T) {
	b := boardOf(map[Pos]Tile{
		at(1, 4): coin(CurrencyJPY, 100),
		at(2, 4): coin(CurrencyJPY, 100),
	})

	res := NewResolver(NewRand(1)).ResolveOne(b, nil)

	if got := res.Board.At(at(1, 4)); got == nil || got.Value != 500 {
		t.Fatalf("(1,4) = %+v, want ¥500", got)
	}
	if res.Board.At(at(2, 4)) != nil {
		t.Error("(2,4) should be empty")
	}
	if res.Merge.To != at(1, 4) || res.Merge.From != at(2, 4) || res.Merge.With != at(1, 4) {
		t.Errorf("merge = %+v", res.Merge)
	}
}

func TestResolveOneEventBonus(t *testing.T) {
	tests := []struct {
		name  string
		cur   Currency
		value int
		event *Event
		score int
		bonus bool
	}{
		{"no event", CurrencyKRW, 1000, nil, 5000, false},
		{"strong won doubles won", CurrencyKRW, 1000, eventOf(EventWonStrong), 10000, true},
		{"strong won ignores yen", CurrencyJPY, 1000, eventOf(EventWonStrong), 5000, false},
		{"dollar surge doubles dollar", CurrencyUSD, 20, eventOf(EventDollarSurge), 100, true},
		{"weak yen never doubles", CurrencyJPY, 100, eventOf(EventYenWeak), 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardOf(map[Pos]Tile{
				at(3, 0): coin(tt.cur, tt.value),
				at(3, 1): coin(tt.cur, tt.value),
			})
			res := NewResolver(NewRand(1)).ResolveOne(b, tt.event)
			if res.ScoreDelta != tt.score || res.Merge.Bonus != tt.bonus {
				t.Errorf("score = %d bonus = %v, want %d %v", res.ScoreDelta, res.Merge.Bonus, tt.score, tt.bonus)
			}
		})
	}
}

func TestResolveOneTopOfLadderDoesNotMerge(t *testing.T) {
	b := boardOf(map[Pos]Tile{
		at(0, 0): coin(CurrencyUSD, 100),
		at(0, 1): coin(CurrencyUSD, 100),
		at(4, 4): coin(CurrencyKRW, 50000),
		at(3, 4): coin(CurrencyKRW, 50000),
	})

	res := NewResolver(NewRand(1)).ResolveOne(b, nil)

	if res.Merged || res.ScoreDelta != 0 {
		t.Errorf("top-of-ladder pair merged: %+v", res.Merge)
	}
	if res.Board.TileCount() != 4 {
		t.Errorf("tile count = %d, want 4", res.Board.TileCount())
	}
	if b.HasEligibleMerge() {
		t.Error("HasEligibleMerge should ignore top-of-ladder pairs")
	}
}

func TestResolveOneMismatchesDoNotMerge(t *testing.T) {
	b := boardOf(map[Pos]Tile{
		at(0, 0): coin(CurrencyKRW, 100),
		at(0, 1): coin(CurrencyJPY, 100), // Same value, other currency
		at(1, 0): coin(CurrencyKRW, 500), // Same currency, other value
		at(1, 1): coin(CurrencyKRW, 100), // Diagonal to (0,0)
	})

	if res := NewResolver(NewRand(1)).ResolveOne(b, nil); res.Merged {
		t.Errorf("unexpected merge %+v", res.Merge)
	}
}

func TestResolveOnePriority(t *testing.T) {
	t.Run("bottom row scanned first", func(t *testing.T) {
		b := boardOf(map[Pos]Tile{
			at(0, 0): coin(CurrencyKRW, 100),
			at(0, 1): coin(CurrencyKRW, 100),
			at(4, 3): coin(CurrencyUSD, 1),
			at(4, 4): coin(CurrencyUSD, 1),
		})
		res := NewResolver(NewRand(1)).ResolveOne(b, nil)
		if res.Merge.From != at(4, 4) || res.Merge.To != at(4, 3) {
			t.Errorf("merge = %+v, want (4,4) into (4,3)", res.Merge)
		}
	})

	t.Run("up before left for the scanned tile", func(t *testing.T) {
		// (4,3) is scanned before (3,4) and (3,3); its up neighbour wins.
		b := boardOf(map[Pos]Tile{
			at(3, 3): coin(CurrencyJPY, 100),
			at(3, 4): coin(CurrencyJPY, 100),
			at(4, 3): coin(CurrencyJPY, 100),
		})
		res := NewResolver(NewRand(1)).ResolveOne(b, nil)
		if res.Merge.From != at(4, 3) || res.Merge.With != at(3, 3) {
			t.Fatalf("merge = %+v, want (4,3) with (3,3)", res.Merge)
		}
		if got := res.Board.At(at(3, 3)); got == nil || got.Value != 500 {
			t.Errorf("(3,3) = %+v, want ¥500", got)
		}
		if got := res.Board.At(at(3, 4)); got == nil || got.Value != 100 {
			t.Errorf("(3,4) = %+v, want ¥100 untouched", got)
		}
	})

	t.Run("right column scanned first within a row", func(t *testing.T) {
		b := boardOf(map[Pos]Tile{
			at(2, 0): coin(CurrencyUSD, 10),
			at(2, 1): coin(CurrencyUSD, 10),
			at(2, 3): coin(CurrencyUSD, 50),
			at(2, 4): coin(CurrencyUSD, 50),
		})
		res := NewResolver(NewRand(1)).ResolveOne(b, nil)
		if res.Merge.ToValue != 100 || res.Merge.To != at(2, 3) {
			t.Errorf("merge = %+v, want $100 at (2,3)", res.Merge)
		}
	})
}

func TestResolveOneEmptyBoard(t *testing.T) {
	res := NewResolver(NewRand(1)).ResolveOne(Board{}, nil)
	if res.Merged || res.ScoreDelta != 0 || res.Board.TileCount() != 0 {
		t.Errorf("empty board result = %+v", res)
	}
}

func TestMergedTileGetsNewIdentity(t *testing.T) {
	a, b := coin(CurrencyKRW, 500), coin(CurrencyKRW, 500)
	board := boardOf(map[Pos]Tile{at(0, 0): a, at(0, 1): b})

	res := NewResolver(NewRand(7)).ResolveOne(board, nil)

	got := res.Board.At(at(0, 0))
	if got.ID == a.ID || got.ID == b.ID {
		t.Error("merged tile reused a source identity")
	}
}
