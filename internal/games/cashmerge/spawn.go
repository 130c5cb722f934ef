package cashmerge

// DefaultBiasProbability is the chance a biased spawn picks the favoured currency.
const DefaultBiasProbability = 0.6

// Spawner places new coins on empty cells.
type Spawner struct {
	rng  Rand
	bias float64
}

// NewSpawner creates a spawner drawing from rng. A bias outside (0, 1]
// falls back to DefaultBiasProbability.
func NewSpawner(rng Rand, bias float64) *Spawner {
	if bias <= 0 || bias > 1 {
		bias = DefaultBiasProbability
	}
	return &Spawner{rng: rng, bias: bias}
}

// Spawn fills up to count distinct empty cells, chosen uniformly without
// replacement, with lowest-denomination coins. If fewer cells are empty it
// fills them all. The board is mutated in place; the placed tiles are returned.
func (s *Spawner) Spawn(b *Board, count int, effect Effect) []Tile {
	empty := b.EmptyCells()
	if count > len(empty) {
		count = len(empty)
	}
	if count <= 0 {
		return nil
	}

	order := s.rng.Perm(len(empty))
	placed := make([]Tile, 0, count)
	for _, i := range order[:count] {
		cur := s.pickCurrency(effect)
		t := b.Place(empty[i], Tile{
			ID:       newID(s.rng),
			Currency: cur,
			Value:    LowestValue(cur),
			IsNew:    true,
		})
		placed = append(placed, *t)
	}
	return placed
}

// pickCurrency chooses the currency of a new coin.
func (s *Spawner) pickCurrency(effect Effect) Currency {
	if effect == EffectYenSpawn && s.rng.Float64() < s.bias {
		return CurrencyJPY
	}
	return Currencies[s.rng.Intn(currencyCount)]
}
