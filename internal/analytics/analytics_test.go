package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cash-merge/internal/config"
	"github.com/vovakirdan/cash-merge/internal/games/cashmerge"
)

type memoryRecorder struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (m *memoryRecorder) RecordTelemetry(_ context.Context, sessionID, kind string, payload map[string]any) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{SessionID: sessionID, Kind: kind, Payload: payload})
	return m.err
}

func (m *memoryRecorder) kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

func TestCollectorFlushesOnClose(t *testing.T) {
	rec := &memoryRecorder{}
	c := Start(rec, nil)
	require.True(t, c.Enabled())

	c.Track("s1", KindSessionStart, nil)
	c.Track("s1", KindMerge, map[string]any{"to": 500})
	c.Close()

	assert.Equal(t, []string{KindSessionStart, KindMerge}, rec.kinds())
}

func TestCollectorWithoutRecorderIsNoop(t *testing.T) {
	c := Start(nil, nil)

	assert.False(t, c.Enabled())
	assert.NotPanics(t, func() {
		c.Track("s1", KindMerge, nil)
		c.Close()
		c.Close()
	})

	var nilCollector *Collector
	assert.NotPanics(t, func() {
		nilCollector.Track("s1", KindMerge, nil)
		nilCollector.Close()
	})
}

func TestCollectorSwallowsWriteErrors(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("disk full")}
	c := Start(rec, nil)

	c.Track("s1", KindMerge, nil)
	c.Close()

	assert.Len(t, rec.kinds(), 1)
}

func TestCollectorDropsWhenFull(t *testing.T) {
	rec := &memoryRecorder{block: make(chan struct{})}
	c := Start(rec, nil)

	// One event is held by the blocked writer, bufferSize fill the queue.
	for range bufferSize + 10 {
		c.Track("s1", KindMove, nil)
	}
	assert.Positive(t, c.Dropped())

	close(rec.block)
	c.Close()
	assert.Equal(t, int64(bufferSize+10), int64(len(rec.kinds()))+c.Dropped())
}

func TestCollectorIgnoresTrackAfterClose(t *testing.T) {
	rec := &memoryRecorder{}
	c := Start(rec, nil)
	c.Close()

	c.Track("s1", KindMerge, nil)

	assert.Empty(t, rec.kinds())
}

func TestTrackStepAndClick(t *testing.T) {
	rec := &memoryRecorder{}
	c := Start(rec, nil)
	s := cashmerge.NewSession(config.DefaultCashMergeConfig(), cashmerge.NewRand(4))

	c.TrackStep("s1", cashmerge.CascadeStep{
		Merged: true,
		Merge:  cashmerge.Merge{Currency: cashmerge.CurrencyUSD, FromValue: 5, ToValue: 10, Score: 10},
	}, s)
	c.TrackClick("s1", cashmerge.OutcomeSwapped, s)
	c.TrackClick("s1", cashmerge.OutcomeSelected, s)
	c.TrackEventStart("s1", &cashmerge.Events[0])
	c.TrackEventStart("s1", nil)
	c.Close()

	require.Equal(t, []string{KindMerge, KindMove, KindEventStart}, rec.kinds())
	assert.Equal(t, "USD", rec.events[0].Payload["currency"])
	assert.Equal(t, "swapped", rec.events[1].Payload["action"])
}

func TestGameOverPayload(t *testing.T) {
	s := cashmerge.NewSession(config.DefaultCashMergeConfig(), cashmerge.NewRand(4))

	payload := GameOverPayload(s)

	assert.Equal(t, 0, payload["score"])
	_, hasCoupon := payload["coupon"]
	assert.False(t, hasCoupon)
}
