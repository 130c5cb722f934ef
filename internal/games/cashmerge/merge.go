package cashmerge

// neighborOrder is the direction priority for each scanned tile:
// down, right, up, left.
var neighborOrder = [4]Pos{
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
	{Row: -1, Col: 0},
	{Row: 0, Col: -1},
}

// Merge describes one resolved pair.
type Merge struct {
	From      Pos      `json:"from"` // Scanned tile
	With      Pos      `json:"with"` // Matching neighbour
	To        Pos      `json:"to"`   // Cell holding the result
	Currency  Currency `json:"currency"`
	FromValue int      `json:"from_value"`
	ToValue   int      `json:"to_value"`
	Bonus     bool     `json:"bonus"`
	Score     int      `json:"score"`
}

// MergeResult is the outcome of a single resolver call.
type MergeResult struct {
	Board      Board
	ScoreDelta int
	Merged     bool
	Merge      Merge // Zero when Merged is false
}

// Resolver performs single merges.
type Resolver struct {
	rng Rand
}

// NewResolver creates a resolver; rng supplies identities for merged tiles.
func NewResolver(rng Rand) *Resolver {
	return &Resolver{rng: rng}
}

// ResolveOne performs the highest-priority merge on b, marking the result
// as merging for presentation. The input board is not modified.
func (r *Resolver) ResolveOne(b Board, ev *Event) MergeResult {
	return r.resolve(b, ev, true)
}

// resolve scans bottom-to-top, right-to-left and merges the first eligible
// pair. Vertical pairs land on the upper cell, horizontal pairs on the left.
func (r *Resolver) resolve(b Board, ev *Event, markMerging bool) MergeResult {
	from, with, ok := findMerge(&b)
	if !ok {
		return MergeResult{Board: b}
	}

	src := *b.At(from)
	next, _ := NextValue(src.Currency, src.Value)
	bonus := HasBonus(src.Currency, ev)
	score := next
	if bonus {
		score *= 2
	}

	dest := from
	if with.Col == from.Col {
		dest.Row = min(from.Row, with.Row)
	} else {
		dest.Col = min(from.Col, with.Col)
	}

	b.Clear(from)
	b.Clear(with)
	b.Place(dest, Tile{
		ID:        newID(r.rng),
		Currency:  src.Currency,
		Value:     next,
		IsMerging: markMerging,
	})

	return MergeResult{
		Board:      b,
		ScoreDelta: score,
		Merged:     true,
		Merge: Merge{
			From:      from,
			With:      with,
			To:        dest,
			Currency:  src.Currency,
			FromValue: src.Value,
			ToValue:   next,
			Bonus:     bonus,
			Score:     score,
		},
	}
}

// findMerge locates the first eligible pair in priority order.
func findMerge(b *Board) (from, with Pos, ok bool) {
	for row := BoardSize - 1; row >= 0; row-- {
		for col := BoardSize - 1; col >= 0; col-- {
			p := Pos{Row: row, Col: col}
			t := b.At(p)
			if t == nil {
				continue
			}
			for _, d := range neighborOrder {
				n := Pos{Row: row + d.Row, Col: col + d.Col}
				if canMerge(t, b.At(n)) {
					return p, n, true
				}
			}
		}
	}
	return Pos{}, Pos{}, false
}
