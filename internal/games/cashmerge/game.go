package cashmerge

import (
	"fmt"

	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/core"
)

// GameID is the identifier scores are stored under.
const GameID = "cashmerge"

// Game puts a Session on a character screen: it tracks the keyboard cursor,
// the screen size and a one-line notification. Timing lives in the platform.
type Game struct {
	cfg     config.CashMergeConfig
	session *Session
	cursor  Pos
	message string

	screenW  int
	screenH  int
	tooSmall bool
}

// NewGame creates a game that will run under cfg.
func NewGame(cfg config.CashMergeConfig) *Game {
	cfg.Normalize()
	return &Game{cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Cash Merge" }

// Reset starts a new game. The first call seeds the session; later calls
// reset it so the generation keeps increasing.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.session == nil {
		g.session = NewSession(g.cfg, NewRand(rc.Seed))
	} else {
		g.session.Reset()
	}
	g.cursor = Pos{Row: BoardSize / 2, Col: BoardSize / 2}
	g.message = "Pick a coin, then an empty cell or another coin"
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize records the screen size without touching game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Session exposes the underlying session.
func (g *Game) Session() *Session { return g.session }

// Cursor returns the keyboard cursor.
func (g *Game) Cursor() Pos { return g.cursor }

// Message returns the current notification line.
func (g *Game) Message() string { return g.message }

// State summarizes the game for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
	}
}

// MoveCursor shifts the cursor, clamped to the board.
func (g *Game) MoveCursor(dRow, dCol int) {
	g.cursor.Row = core.Clamp(g.cursor.Row+dRow, 0, BoardSize-1)
	g.cursor.Col = core.Clamp(g.cursor.Col+dCol, 0, BoardSize-1)
}

// Click clicks the cell under the cursor.
func (g *Game) Click() Outcome {
	exchanging := g.session.ExchangeMode()
	out := g.session.HandleCellClick(g.cursor.Row, g.cursor.Col)
	g.describeClick(out, exchanging)
	if out == OutcomeExchanged && g.session.GameOver() {
		g.message = "No moves left"
	}
	return out
}

// ClickAt maps screen coordinates to a cell, moves the cursor there and
// clicks it. Returns false when (x, y) is not inside a cell.
func (g *Game) ClickAt(x, y int) (Outcome, bool) {
	p, ok := g.CellAt(x, y)
	if !ok {
		return OutcomeIgnored, false
	}
	g.cursor = p
	return g.Click(), true
}

// ToggleExchange flips exchange mode.
func (g *Game) ToggleExchange() {
	if g.session.GameOver() {
		return
	}
	if g.session.Tokens() <= 0 {
		g.message = "No exchange tokens left"
		return
	}
	if g.session.ToggleExchangeMode() {
		g.message = "Exchange mode: pick a coin to convert"
	} else {
		g.message = "Exchange cancelled"
	}
}

// Step advances the animated cascade by one step.
func (g *Game) Step() CascadeStep {
	step := g.session.StepCascade()
	switch {
	case step.Merged:
		m := step.Merge
		g.message = fmt.Sprintf("%s%d + %s%d = %s%d  +%d",
			m.Currency.Symbol(), m.FromValue,
			m.Currency.Symbol(), m.FromValue,
			m.Currency.Symbol(), m.ToValue, m.Score)
		if m.Bonus {
			g.message += " (x2 event bonus)"
		}
		if step.TokensAwarded > 0 {
			g.message += fmt.Sprintf("  +%d token", step.TokensAwarded)
		}
	case step.TurnEnded && g.session.GameOver():
		g.message = "No moves left"
	}
	return step
}

// ActivationTick forwards the activation clock and announces new events.
// Finished games start no events. Returns true if an event started.
func (g *Game) ActivationTick() bool {
	if g.session.GameOver() || !g.session.ActivationTick() {
		return false
	}
	ev := g.session.ActiveEvent()
	g.message = ev.Name + " " + ev.Description
	return true
}

// CountdownTick forwards the countdown clock and announces expiry.
func (g *Game) CountdownTick() bool {
	if !g.session.CountdownTick() {
		return false
	}
	if !g.session.GameOver() {
		g.message = "Exchange rates are back to normal"
	}
	return true
}

func (g *Game) describeClick(out Outcome, exchanging bool) {
	switch out {
	case OutcomeSelected:
		g.message = "Coin picked"
	case OutcomeDeselected:
		g.message = "Selection cleared"
	case OutcomeExchanged:
		if ex := g.session.LastExchange(); ex != nil {
			g.message = fmt.Sprintf("Exchanged %s into %s", ex.Before.Label(), ex.After.Label())
			if n := ex.Cascade.TotalMerges; n > 0 {
				g.message += fmt.Sprintf("  %d merges +%d", n, ex.Cascade.TotalScore)
			}
		}
	case OutcomeIgnored:
		if exchanging {
			g.message = "Pick a coin to exchange"
		}
	}
}
