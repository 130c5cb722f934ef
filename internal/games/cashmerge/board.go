package cashmerge

import (
	"fmt"

	"github.com/google/uuid"
)

// BoardSize is the board dimension.
const BoardSize = 5

// Pos is a cell coordinate.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether p lies on the board.
func (p Pos) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Tile is a coin on the board. Tiles are never mutated once placed;
// every change installs a new *Tile.
type Tile struct {
	ID        uuid.UUID
	Currency  Currency
	Value     int
	Pos       Pos
	IsNew     bool // Spawned this turn (presentation only)
	IsMerging bool // Produced by the merge currently on display (presentation only)
}

// Rung returns the tile's ladder index.
func (t Tile) Rung() int {
	idx, _ := LadderIndex(t.Currency, t.Value)
	return idx
}

// Matches reports whether two tiles share currency and denomination.
func (t Tile) Matches(o Tile) bool {
	return t.Currency == o.Currency && t.Value == o.Value
}

// Board is the grid of optional tiles; a nil cell is empty.
type Board [BoardSize][BoardSize]*Tile

// At returns the tile at p, or nil.
func (b Board) At(p Pos) *Tile {
	if !p.InBounds() {
		return nil
	}
	return b[p.Row][p.Col]
}

// Place puts a copy of t at p, rewriting its position.
func (b *Board) Place(p Pos, t Tile) *Tile {
	t.Pos = p
	b[p.Row][p.Col] = &t
	return b[p.Row][p.Col]
}

// Clear empties the cell at p.
func (b *Board) Clear(p Pos) {
	if p.InBounds() {
		b[p.Row][p.Col] = nil
	}
}

// Clone returns a board that shares no tile pointers with b.
func (b Board) Clone() Board {
	var out Board
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b[r][c]; t != nil {
				cp := *t
				out[r][c] = &cp
			}
		}
	}
	return out
}

// EmptyCells returns the empty cells in row-major order.
func (b Board) EmptyCells() []Pos {
	var cells []Pos
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == nil {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// TileCount returns the number of occupied cells.
func (b Board) TileCount() int {
	n := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] != nil {
				n++
			}
		}
	}
	return n
}

// IsFull returns true if no cell is empty.
func (b Board) IsFull() bool {
	return b.TileCount() == BoardSize*BoardSize
}

// Tiles returns every tile in row-major order.
func (b Board) Tiles() []Tile {
	var tiles []Tile
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b[r][c]; t != nil {
				tiles = append(tiles, *t)
			}
		}
	}
	return tiles
}

// ClearTransientFlags drops IsNew and IsMerging from every tile.
func (b *Board) ClearTransientFlags() {
	for r := range BoardSize {
		for c := range BoardSize {
			t := b[r][c]
			if t == nil || (!t.IsNew && !t.IsMerging) {
				continue
			}
			cp := *t
			cp.IsNew = false
			cp.IsMerging = false
			b[r][c] = &cp
		}
	}
}

// canMerge reports whether a and b form an eligible merge pair.
func canMerge(a, b *Tile) bool {
	if a == nil || b == nil || !a.Matches(*b) {
		return false
	}
	_, ok := NextValue(a.Currency, a.Value)
	return ok
}

// HasEligibleMerge returns true if any adjacent pair can merge.
// Top-of-ladder pairs are not eligible.
func (b Board) HasEligibleMerge() bool {
	for r := range BoardSize {
		for c := range BoardSize {
			t := b[r][c]
			if t == nil {
				continue
			}
			if c < BoardSize-1 && canMerge(t, b[r][c+1]) {
				return true
			}
			if r < BoardSize-1 && canMerge(t, b[r+1][c]) {
				return true
			}
		}
	}
	return false
}

// Validate checks the board invariants: ladder membership, positions
// matching cells, and unique identities.
func (b Board) Validate() error {
	seen := make(map[uuid.UUID]Pos)
	for r := range BoardSize {
		for c := range BoardSize {
			t := b[r][c]
			if t == nil {
				continue
			}
			here := Pos{Row: r, Col: c}
			if _, ok := LadderIndex(t.Currency, t.Value); !ok {
				return fmt.Errorf("cashmerge: tile at %v has value %d off the %s ladder", here, t.Value, t.Currency)
			}
			if t.Pos != here {
				return fmt.Errorf("cashmerge: tile at %v records position %v", here, t.Pos)
			}
			if prev, dup := seen[t.ID]; dup {
				return fmt.Errorf("cashmerge: tile %s appears at %v and %v", t.ID, prev, here)
			}
			seen[t.ID] = here
		}
	}
	return nil
}
