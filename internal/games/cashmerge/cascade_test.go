package cashmerge

import "testing"

func TestCascadeChains(t *testing.T) {
	b := boardOf(map[Pos]Tile{
		at(0, 0): coin(CurrencyUSD, 5),
		at(0, 1): coin(CurrencyUSD, 1),
		at(0, 2): coin(CurrencyUSD, 1),
	})

	res := NewResolver(NewRand(1)).Cascade(b, nil)

	if res.TotalMerges != 2 {
		t.Fatalf("merges = %d, want 2", res.TotalMerges)
	}
	if res.TotalScore != 5+10 {
		t.Errorf("score = %d, want 15", res.TotalScore)
	}
	if res.Steps != 3 {
		t.Errorf("steps = %d, want 3", res.Steps)
	}
	if got := res.Board.At(at(0, 0)); got == nil || got.Value != 10 {
		t.Errorf("(0,0) = %+v, want $10", got)
	}
	if got := res.Board.At(at(0, 0)); got != nil && got.IsMerging {
		t.Error("silent cascade must not set presentation flags")
	}
	if res.Board.TileCount() != 1 {
		t.Errorf("tile count = %d, want 1", res.Board.TileCount())
	}
}

func TestCascadeIsIdempotent(t *testing.T) {
	r := NewResolver(NewRand(3))
	first := r.Cascade(deadBoard(), nil)
	if first.TotalMerges != 0 || first.Steps != 1 {
		t.Fatalf("dead board cascade = %+v", first)
	}

	b := boardOf(map[Pos]Tile{
		at(1, 1): coin(CurrencyJPY, 100),
		at(1, 2): coin(CurrencyJPY, 100),
		at(2, 1): coin(CurrencyJPY, 500),
	})
	once := r.Cascade(b, nil)
	twice := r.Cascade(once.Board, nil)
	if twice.TotalMerges != 0 || twice.TotalScore != 0 {
		t.Errorf("second cascade merged again: %+v", twice)
	}
	for _, tile := range once.Board.Tiles() {
		if got := twice.Board.At(tile.Pos); got == nil || *got != tile {
			t.Errorf("second cascade changed %v", tile.Pos)
		}
	}
}

func TestCascadeTerminatesOnRandomBoards(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rng := NewRand(seed)
		var b Board
		for r := range BoardSize {
			for c := range BoardSize {
				if rng.Float64() < 0.15 {
					continue
				}
				cur := Currencies[rng.Intn(currencyCount)]
				b.Place(at(r, c), Tile{ID: newID(rng), Currency: cur, Value: ValueAt(cur, rng.Intn(3))})
			}
		}
		before := b.TileCount()

		res := NewResolver(rng).Cascade(b, nil)

		if res.Steps > maxResolveCalls {
			t.Fatalf("seed %d: %d steps", seed, res.Steps)
		}
		if res.Board.HasEligibleMerge() {
			t.Fatalf("seed %d: eligible merge left after cascade", seed)
		}
		if got := res.Board.TileCount(); got != before-res.TotalMerges {
			t.Fatalf("seed %d: %d tiles, want %d", seed, got, before-res.TotalMerges)
		}
		if err := res.Board.Validate(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
}
