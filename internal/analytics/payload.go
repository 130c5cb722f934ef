package analytics

import "github.com/vovakirdan/cash-merge/internal/games/cashmerge"

// TrackStep records the outcome of one animated cascade step.
func (c *Collector) TrackStep(sessionID string, step cashmerge.CascadeStep, s *cashmerge.Session) {
	switch {
	case step.Merged:
		c.Track(sessionID, KindMerge, MergePayload(step.Merge))
	case step.TurnEnded && s.GameOver():
		c.Track(sessionID, KindGameOver, GameOverPayload(s))
	}
}

// TrackClick records a click that changed the game.
func (c *Collector) TrackClick(sessionID string, out cashmerge.Outcome, s *cashmerge.Session) {
	switch out {
	case cashmerge.OutcomeMoved, cashmerge.OutcomeSwapped:
		c.Track(sessionID, KindMove, map[string]any{"action": out.String()})
	case cashmerge.OutcomeExchanged:
		if ex := s.LastExchange(); ex != nil {
			c.Track(sessionID, KindExchange, map[string]any{
				"from":   ex.Before.Label(),
				"to":     ex.After.Label(),
				"merges": ex.Cascade.TotalMerges,
				"score":  ex.Cascade.TotalScore,
			})
		}
		if s.GameOver() {
			c.Track(sessionID, KindGameOver, GameOverPayload(s))
		}
	}
}

// TrackEventStart records a newly started exchange-rate event.
func (c *Collector) TrackEventStart(sessionID string, ev *cashmerge.Event) {
	if ev == nil {
		return
	}
	c.Track(sessionID, KindEventStart, map[string]any{"event": string(ev.Type)})
}

// MergePayload describes a merge.
func MergePayload(m cashmerge.Merge) map[string]any {
	return map[string]any{
		"currency": m.Currency.String(),
		"from":     m.FromValue,
		"to":       m.ToValue,
		"bonus":    m.Bonus,
		"score":    m.Score,
	}
}

// GameOverPayload describes a finished game.
func GameOverPayload(s *cashmerge.Session) map[string]any {
	payload := map[string]any{
		"score":  s.Score(),
		"merges": s.MergeCount(),
	}
	if coupon, ok := cashmerge.CouponFor(s.Score()); ok {
		payload["coupon"] = coupon.Percent
	}
	return payload
}
