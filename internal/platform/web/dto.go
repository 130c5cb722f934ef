package web

import (
	"time"

	"github.com/vovakirdan/cash-merge/internal/games/cashmerge"
)

type CreateSessionRequest struct {
	Player string `json:"player"`
	Seed   int64  `json:"seed"` // Optional; zero picks a random board
}

type ClickRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SessionResponse is a game's id plus its current snapshot.
type SessionResponse struct {
	ID     string `json:"id"`
	Player string `json:"player"`
	cashmerge.Snapshot
}

// ExchangeView summarizes a completed exchange.
type ExchangeView struct {
	Pos    cashmerge.Pos `json:"pos"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Merges int           `json:"merges"` // Cascade merges triggered by the exchange
	Score  int           `json:"score"`
}

// ClickResponse reports what a click did and the settled state.
type ClickResponse struct {
	Outcome       string            `json:"outcome"`
	Merges        []cashmerge.Merge `json:"merges,omitempty"`
	TokensAwarded int               `json:"tokens_awarded,omitempty"`
	Spawned       []cashmerge.Pos   `json:"spawned,omitempty"`
	Exchange      *ExchangeView     `json:"exchange,omitempty"`
	State         SessionResponse   `json:"state"`
}

type ScoreResponse struct {
	Rank          int       `json:"rank"`
	Player        string    `json:"player"`
	Score         int       `json:"score"`
	Merges        int       `json:"merges"`
	CouponPercent int       `json:"coupon_percent,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Ladder []int  `json:"ladder"`
}

type RulesResponse struct {
	Currencies []CurrencyResponse     `json:"currencies"`
	Events     []cashmerge.Event      `json:"events"`
	Coupons    []cashmerge.CouponTier `json:"coupons"`
}

// NewRulesResponse describes the fixed catalogs.
func NewRulesResponse() RulesResponse {
	resp := RulesResponse{
		Events:  cashmerge.Events,
		Coupons: cashmerge.CouponTiers(),
	}
	for _, c := range cashmerge.Currencies {
		info := c.Info()
		resp.Currencies = append(resp.Currencies, CurrencyResponse{
			Code:   info.Code,
			Name:   info.Name,
			Symbol: info.Symbol,
			Ladder: info.Ladder[:],
		})
	}
	return resp
}
