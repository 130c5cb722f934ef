// Package web serves Cash Merge over a JSON API for browser clients.
//
// Every live game owns a mutex and a clock goroutine. Player actions settle
// the whole cascade before responding, so clients never poll mid-turn.
package web

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cash-merge/internal/analytics"
	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/games/cashmerge"
	"github.com/vovakirdan/cash-merge/internal/storage"
)

// DefaultMaxSessions caps concurrent games per server.
const DefaultMaxSessions = 1000

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many live sessions")
	ErrManagerClosed   = errors.New("server is shutting down")
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Rules       config.CashMergeConfig
	Store       *storage.Store       // Optional; scores are not saved without it
	Collector   *analytics.Collector // Optional
	Logger      *log.Logger          // Optional
	MaxSessions int
}

// liveSession is one game served over HTTP.
type liveSession struct {
	id     string
	player string

	mu      sync.Mutex // Guards everything below
	session *cashmerge.Session
	cancel  context.CancelFunc
	stopped bool // Set by Delete and Close; the clock never restarts
	saved   bool
}

// Manager owns the live games.
type Manager struct {
	rules       config.CashMergeConfig
	store       *storage.Store
	collector   *analytics.Collector
	logger      *log.Logger
	maxSessions int

	mu       sync.RWMutex
	sessions map[string]*liveSession
	closed   bool
	wg       sync.WaitGroup // Clock goroutines; Add only under mu while open
}

// NewManager creates an empty manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	cfg.Rules.Normalize()
	return &Manager{
		rules:       cfg.Rules,
		store:       cfg.Store,
		collector:   cfg.Collector,
		logger:      cfg.Logger,
		maxSessions: cfg.MaxSessions,
		sessions:    make(map[string]*liveSession),
	}
}

// Create starts a new game. A zero seed picks a time-based one.
func (m *Manager) Create(player string, seed int64) (SessionResponse, error) {
	if player == "" {
		player = "guest"
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ls := &liveSession{
		id:      uuid.NewString(),
		player:  player,
		session: cashmerge.NewSession(m.rules, cashmerge.NewRand(seed)),
	}

	// The clock starts before the session is published, so Delete and
	// Close always find a cancel func.
	m.mu.Lock()
	switch {
	case m.closed:
		m.mu.Unlock()
		return SessionResponse{}, ErrManagerClosed
	case len(m.sessions) >= m.maxSessions:
		m.mu.Unlock()
		return SessionResponse{}, ErrTooManySessions
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	m.startClocks(ls)
	m.sessions[ls.id] = ls
	m.mu.Unlock()

	m.logger.Info("session created", "session", ls.id, "player", player)
	m.collector.Track(ls.id, analytics.KindSessionStart, map[string]any{
		"player": player,
		"seed":   seed,
	})
	return m.view(ls), nil
}

// get looks up a live game.
func (m *Manager) get(id string) (*liveSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ls, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

// Delete stops a game and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	ls, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	ls.stop()
	m.logger.Info("session deleted", "session", id)
	return nil
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops every clock and waits for them to exit. Later Creates fail
// with ErrManagerClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*liveSession)
	m.mu.Unlock()

	for _, ls := range sessions {
		ls.stop()
	}
	m.wg.Wait()
}

// Click applies a cell click and settles the turn.
func (m *Manager) Click(id string, pos cashmerge.Pos) (ClickResponse, error) {
	ls, err := m.get(id)
	if err != nil {
		return ClickResponse{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	s := ls.session
	out := s.HandleCellClick(pos.Row, pos.Col)
	m.collector.TrackClick(ls.id, out, s)

	resp := ClickResponse{Outcome: out.String()}
	switch out {
	case cashmerge.OutcomeMoved, cashmerge.OutcomeSwapped:
		for _, step := range s.Settle() {
			m.collector.TrackStep(ls.id, step, s)
			if step.Merged {
				resp.Merges = append(resp.Merges, step.Merge)
				resp.TokensAwarded += step.TokensAwarded
			}
			resp.Spawned = append(resp.Spawned, positions(step.Spawned)...)
		}
		s.ClearMergeFlags()
	case cashmerge.OutcomeExchanged:
		if ex := s.LastExchange(); ex != nil {
			resp.Exchange = &ExchangeView{
				Pos:    ex.After.Pos,
				From:   ex.Before.Label(),
				To:     ex.After.Label(),
				Merges: ex.Cascade.TotalMerges,
				Score:  ex.Cascade.TotalScore,
			}
			resp.Merges = ex.Cascade.Merges
			resp.Spawned = positions(ex.Spawned)
		}
	}

	m.finish(ls)
	resp.State = m.view(ls)
	return resp, nil
}

// ToggleExchange flips exchange mode.
func (m *Manager) ToggleExchange(id string) (SessionResponse, error) {
	ls, err := m.get(id)
	if err != nil {
		return SessionResponse{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.session.ToggleExchangeMode()
	return m.view(ls), nil
}

// Reset deals a new board and restarts the clocks.
func (m *Manager) Reset(id string) (SessionResponse, error) {
	ls, err := m.get(id)
	if err != nil {
		return SessionResponse{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.stopped {
		return SessionResponse{}, ErrSessionNotFound
	}

	ls.cancel()
	ls.session.Reset()
	ls.saved = false
	m.startClocks(ls)
	m.collector.Track(ls.id, analytics.KindReset, nil)
	return m.view(ls), nil
}

// Snapshot returns the current state.
func (m *Manager) Snapshot(id string) (SessionResponse, error) {
	ls, err := m.get(id)
	if err != nil {
		return SessionResponse{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return m.view(ls), nil
}

// stop cancels the clock for good.
func (ls *liveSession) stop() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.stopped = true
	ls.cancel()
}

// view builds a response. Caller holds ls.mu.
func (m *Manager) view(ls *liveSession) SessionResponse {
	return SessionResponse{
		ID:       ls.id,
		Player:   ls.player,
		Snapshot: ls.session.Snapshot(),
	}
}

// finish saves the score once the game is over. Caller holds ls.mu.
func (m *Manager) finish(ls *liveSession) {
	s := ls.session
	if ls.saved || !s.GameOver() {
		return
	}
	ls.saved = true
	m.logger.Info("game over", "session", ls.id, "player", ls.player, "score", s.Score())
	if m.store == nil || s.Score() == 0 {
		return
	}

	entry := storage.ScoreEntry{Player: ls.player, Score: s.Score(), Merges: s.MergeCount()}
	if coupon, ok := cashmerge.CouponFor(s.Score()); ok {
		entry.CouponPercent = coupon.Percent
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("could not save score", "session", ls.id, "error", err)
	}
}

// startClocks launches the event clocks for the current generation.
// Caller holds ls.mu.
func (m *Manager) startClocks(ls *liveSession) {
	ctx, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel
	gen := ls.session.Generation()
	ev := ls.session.Config().Events

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.runClocks(ctx, ls, gen, ev)
	}()
}

// runClocks drives both event clocks until ctx is cancelled. Ticks that
// race a reset are dropped by the generation check.
func (m *Manager) runClocks(ctx context.Context, ls *liveSession, gen uint64, ev config.EventRules) {
	activation := time.NewTicker(ev.ActivationInterval)
	defer activation.Stop()
	countdown := time.NewTicker(ev.CountdownStep)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-activation.C:
			ls.mu.Lock()
			s := ls.session
			if s.Generation() == gen && !s.GameOver() && s.ActivationTick() {
				m.collector.TrackEventStart(ls.id, s.ActiveEvent())
			}
			ls.mu.Unlock()

		case <-countdown.C:
			ls.mu.Lock()
			if ls.session.Generation() == gen {
				ls.session.CountdownTick()
			}
			ls.mu.Unlock()
		}
	}
}

func positions(tiles []cashmerge.Tile) []cashmerge.Pos {
	if len(tiles) == 0 {
		return nil
	}
	out := make([]cashmerge.Pos, len(tiles))
	for i, t := range tiles {
		out[i] = t.Pos
	}
	return out
}
