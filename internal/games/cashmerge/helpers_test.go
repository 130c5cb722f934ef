package cashmerge

import "github.com/google/uuid"

// coin builds an unplaced tile with a fresh identity.
func coin(cur Currency, value int) Tile {
	return Tile{ID: uuid.New(), Currency: cur, Value: value}
}

// boardOf places the given coins on an empty board.
func boardOf(coins map[Pos]Tile) Board {
	var b Board
	for p, t := range coins {
		b.Place(p, t)
	}
	return b
}

// deadBoard returns a full board where no two neighbours share a currency.
func deadBoard() Board {
	var b Board
	for r := range BoardSize {
		for c := range BoardSize {
			cur := CurrencyKRW
			if (r+c)%2 == 1 {
				cur = CurrencyUSD
			}
			b.Place(Pos{Row: r, Col: c}, coin(cur, ValueAt(cur, (r*BoardSize+c)%LadderLen)))
		}
	}
	return b
}

func at(r, c int) Pos { return Pos{Row: r, Col: c} }
