package cashmerge

import (
	"github.com/vovakirdan/cash-merge/internal/config"
)

// Phase is the controller state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSelecting Phase = "selecting"
	PhaseResolving Phase = "resolving"
	PhaseGameOver  Phase = "game_over"
)

// Outcome reports what a cell click did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeSelected
	OutcomeDeselected
	OutcomeMoved
	OutcomeSwapped
	OutcomeExchanged
)

// String returns a short label for logs and telemetry.
func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeMoved:
		return "moved"
	case OutcomeSwapped:
		return "swapped"
	case OutcomeExchanged:
		return "exchanged"
	default:
		return "ignored"
	}
}

// ExchangeResult describes a completed exchange.
type ExchangeResult struct {
	Before  Tile
	After   Tile
	Cascade CascadeResult
	Spawned []Tile
}

// CascadeStep is the outcome of one animated cascade step.
type CascadeStep struct {
	Merged        bool
	Merge         Merge
	TurnEnded     bool
	Spawned       []Tile
	TokensAwarded int
}

// Session owns all mutable game state. It is not safe for concurrent use;
// callers serialize access so each action completes before the next starts.
type Session struct {
	cfg      config.CashMergeConfig
	rng      Rand
	spawner  *Spawner
	resolver *Resolver

	board        Board
	score        int
	tokens       int
	mergeCount   int
	events       EventTimer
	selected     *Pos
	exchangeMode bool
	resolving    bool
	gameOver     bool
	generation   uint64 // Bumped on every reset
	setupMerges  int    // Merges absorbed while settling the opening board
	lastMerge    *Merge
	lastExchange *ExchangeResult
}

// NewSession creates a session with a freshly dealt board.
func NewSession(cfg config.CashMergeConfig, rng Rand) *Session {
	cfg.Normalize()
	s := &Session{
		cfg:      cfg,
		rng:      rng,
		spawner:  NewSpawner(rng, cfg.Events.BiasProbability),
		resolver: NewResolver(rng),
	}
	s.Reset()
	return s
}

// Reset recreates the session from scratch.
func (s *Session) Reset() {
	s.board = Board{}
	s.spawner.Spawn(&s.board, s.cfg.Board.InitialTiles, EffectNone)
	settled := s.resolver.Cascade(s.board, nil)
	s.board = settled.Board
	s.setupMerges = settled.TotalMerges

	s.score = 0
	s.tokens = s.cfg.Tokens.Initial
	s.mergeCount = 0
	s.events.Clear()
	s.selected = nil
	s.exchangeMode = false
	s.resolving = false
	s.gameOver = false
	s.lastMerge = nil
	s.lastExchange = nil
	s.generation++
}

// Config returns the rules the session runs under.
func (s *Session) Config() config.CashMergeConfig { return s.cfg }

// Board returns a copy of the board.
func (s *Session) Board() Board { return s.board.Clone() }

func (s *Session) Score() int          { return s.score }
func (s *Session) Tokens() int         { return s.tokens }
func (s *Session) MergeCount() int     { return s.mergeCount }
func (s *Session) ExchangeMode() bool  { return s.exchangeMode }
func (s *Session) GameOver() bool      { return s.gameOver }
func (s *Session) Generation() uint64  { return s.generation }
func (s *Session) ActiveEvent() *Event { return s.events.Active() }
func (s *Session) LastMerge() *Merge   { return s.lastMerge }

// Selected returns the selected cell, if any.
func (s *Session) Selected() (Pos, bool) {
	if s.selected == nil {
		return Pos{}, false
	}
	return *s.selected, true
}

// LastExchange returns the most recent exchange, if any.
func (s *Session) LastExchange() *ExchangeResult { return s.lastExchange }

// Phase returns the controller state.
func (s *Session) Phase() Phase {
	switch {
	case s.gameOver:
		return PhaseGameOver
	case s.resolving:
		return PhaseResolving
	case s.selected != nil:
		return PhaseSelecting
	default:
		return PhaseIdle
	}
}

// ToggleExchangeMode flips exchange mode when tokens are available and
// clears any selection. Returns the new mode.
func (s *Session) ToggleExchangeMode() bool {
	if s.gameOver || s.tokens <= 0 {
		return s.exchangeMode
	}
	s.exchangeMode = !s.exchangeMode
	s.selected = nil
	return s.exchangeMode
}

// HandleCellClick applies a player click at (row, col).
// Clicks are ignored after game over, while a cascade is resolving, and
// outside the board.
func (s *Session) HandleCellClick(row, col int) Outcome {
	target := Pos{Row: row, Col: col}
	if s.gameOver || s.resolving || !target.InBounds() {
		return OutcomeIgnored
	}
	clicked := s.board.At(target)

	if s.exchangeMode {
		if clicked == nil || s.tokens <= 0 {
			return OutcomeIgnored
		}
		s.exchange(target)
		return OutcomeExchanged
	}

	if s.selected == nil {
		if clicked == nil {
			return OutcomeIgnored
		}
		s.selected = &target
		return OutcomeSelected
	}

	from := *s.selected
	s.selected = nil
	switch {
	case from == target:
		return OutcomeDeselected
	case clicked == nil:
		s.move(from, target)
		return OutcomeMoved
	default:
		s.swap(from, target)
		return OutcomeSwapped
	}
}

// move relocates the tile at from to the empty cell to.
func (s *Session) move(from, to Pos) {
	s.board.ClearTransientFlags()
	t := *s.board.At(from)
	s.board.Clear(from)
	s.board.Place(to, t)
	s.resolving = true
}

// swap exchanges the tiles at a and b.
func (s *Session) swap(a, b Pos) {
	s.board.ClearTransientFlags()
	ta, tb := *s.board.At(a), *s.board.At(b)
	s.board.Place(a, tb)
	s.board.Place(b, ta)
	s.resolving = true
}

// StepCascade performs one step of the animated cascade. A merge stays
// flagged until the next step; when nothing merges the turn ends with new
// coins and a game-over check.
func (s *Session) StepCascade() CascadeStep {
	if !s.resolving {
		return CascadeStep{}
	}
	s.board.ClearTransientFlags()

	res := s.resolver.ResolveOne(s.board, s.events.Active())
	if res.Merged {
		s.board = res.Board
		s.score += res.ScoreDelta
		merge := res.Merge
		s.lastMerge = &merge
		return CascadeStep{
			Merged:        true,
			Merge:         merge,
			TokensAwarded: s.tallyMerges(1),
		}
	}

	s.resolving = false
	spawned := s.spawner.Spawn(&s.board, s.cfg.Board.SpawnPerTurn, EffectOf(s.events.Active()))
	s.checkGameOver()
	return CascadeStep{TurnEnded: true, Spawned: spawned}
}

// ClearMergeFlags drops presentation flags once a merge has been shown.
func (s *Session) ClearMergeFlags() {
	s.board.ClearTransientFlags()
}

// Settle runs the animated cascade to the end of the turn without pacing.
func (s *Session) Settle() []CascadeStep {
	var steps []CascadeStep
	for s.resolving {
		steps = append(steps, s.StepCascade())
	}
	return steps
}

// exchange converts the tile at p into another currency, settles the board
// silently and ends the turn.
func (s *Session) exchange(p Pos) {
	before := *s.board.At(p)

	others := make([]Currency, 0, currencyCount-1)
	for _, c := range Currencies {
		if c != before.Currency {
			others = append(others, c)
		}
	}
	cur := others[s.rng.Intn(len(others))]

	after := before
	after.Currency = cur
	after.Value = ValueAt(cur, min(before.Rung(), LadderLen-1))
	after.IsNew = false
	after.IsMerging = false
	s.board.ClearTransientFlags()
	s.board.Place(p, after)

	s.tokens--
	s.exchangeMode = false

	settled := s.resolver.Cascade(s.board, s.events.Active())
	s.board = settled.Board
	s.score += settled.TotalScore
	s.tallyMerges(settled.TotalMerges)

	spawned := s.spawner.Spawn(&s.board, s.cfg.Board.SpawnPerTurn, EffectOf(s.events.Active()))
	after.Pos = p
	s.lastExchange = &ExchangeResult{
		Before:  before,
		After:   after,
		Cascade: settled,
		Spawned: spawned,
	}
	s.checkGameOver()
}

// tallyMerges adds n merges and awards one token per crossed multiple of
// the configured merge quota. Returns the tokens awarded.
func (s *Session) tallyMerges(n int) int {
	if n <= 0 {
		return 0
	}
	per := s.cfg.Tokens.MergesPerToken
	before := s.mergeCount
	s.mergeCount += n
	awarded := s.mergeCount/per - before/per
	s.tokens += awarded
	return awarded
}

// checkGameOver ends the game once the board is full and no adjacent pair
// can merge. The flag is only cleared by Reset.
func (s *Session) checkGameOver() {
	if s.gameOver {
		return
	}
	if s.board.IsFull() && !s.board.HasEligibleMerge() {
		s.gameOver = true
		s.resolving = false
		s.selected = nil
		s.exchangeMode = false
	}
}

// ActivationTick is fired by the activation clock. It starts an event only
// when none is running. Returns true if an event started.
func (s *Session) ActivationTick() bool {
	return s.events.Activate(s.rng)
}

// CountdownTick is fired by the one-second clock. Returns true if the
// running event expired.
func (s *Session) CountdownTick() bool {
	return s.events.Countdown()
}
