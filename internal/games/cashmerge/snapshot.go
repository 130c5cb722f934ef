package cashmerge

import "strconv"

// Label formats the coin as symbol plus denomination, e.g. "₩1000".
func (t Tile) Label() string {
	return t.Currency.Symbol() + strconv.Itoa(t.Value)
}

// CellView is the read-only projection of one occupied cell.
type CellView struct {
	ID        string   `json:"id"`
	Currency  Currency `json:"currency"`
	Value     int      `json:"value"`
	Label     string   `json:"label"`
	IsNew     bool     `json:"is_new,omitempty"`
	IsMerging bool     `json:"is_merging,omitempty"`
}

// EventView is the running event and its countdown.
type EventView struct {
	Event
	Remaining int `json:"remaining"`
}

// Snapshot captures everything a front end may display. It shares no
// memory with the session.
type Snapshot struct {
	Generation    uint64                          `json:"generation"`
	Phase         Phase                           `json:"phase"`
	Board         [BoardSize][BoardSize]*CellView `json:"board"`
	Score         int                             `json:"score"`
	Tokens        int                             `json:"tokens"`
	Merges        int                             `json:"merges"`
	OpeningMerges int                             `json:"opening_merges"` // Settled before play; never scored
	Event         *EventView                      `json:"event,omitempty"`
	Selected      *Pos                            `json:"selected,omitempty"`
	ExchangeMode  bool                            `json:"exchange_mode"`
	GameOver      bool                            `json:"game_over"`
	Coupon        *Coupon                         `json:"coupon,omitempty"`
	LastMerge     *Merge                          `json:"last_merge,omitempty"`
}

// Snapshot returns the current read-only projection.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Generation:    s.generation,
		Phase:         s.Phase(),
		Score:         s.score,
		Tokens:        s.tokens,
		Merges:        s.mergeCount,
		OpeningMerges: s.setupMerges,
		ExchangeMode:  s.exchangeMode,
		GameOver:      s.gameOver,
	}

	for r := range BoardSize {
		for c := range BoardSize {
			t := s.board[r][c]
			if t == nil {
				continue
			}
			snap.Board[r][c] = &CellView{
				ID:        t.ID.String(),
				Currency:  t.Currency,
				Value:     t.Value,
				Label:     t.Label(),
				IsNew:     t.IsNew,
				IsMerging: t.IsMerging,
			}
		}
	}

	if ev := s.events.Active(); ev != nil {
		snap.Event = &EventView{Event: *ev, Remaining: s.events.Remaining()}
	}
	if s.selected != nil {
		p := *s.selected
		snap.Selected = &p
	}
	if s.lastMerge != nil {
		m := *s.lastMerge
		snap.LastMerge = &m
	}
	if s.gameOver {
		if coupon, ok := CouponFor(s.score); ok {
			snap.Coupon = &coupon
		}
	}
	return snap
}
