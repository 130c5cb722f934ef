// Package analytics forwards gameplay telemetry to storage in the background.
// It never fails or blocks its caller: without a recorder it is a no-op, and
// when its buffer is full events are dropped.
package analytics

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Event kinds.
const (
	KindSessionStart = "session_start"
	KindMove         = "move"
	KindMerge        = "merge"
	KindExchange     = "exchange"
	KindEventStart   = "event_start"
	KindGameOver     = "game_over"
	KindReset        = "reset"
)

const (
	bufferSize   = 256
	writeTimeout = 2 * time.Second
)

// Recorder persists one telemetry event. *storage.Store satisfies it.
type Recorder interface {
	RecordTelemetry(ctx context.Context, sessionID, kind string, payload map[string]any) error
}

// Event is a queued telemetry record.
type Event struct {
	SessionID string
	Kind      string
	Payload   map[string]any
}

// Collector queues events and writes them from a single goroutine.
type Collector struct {
	recorder Recorder
	logger   *log.Logger

	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
	wg       sync.WaitGroup
	dropped  atomic.Int64
}

// Start creates a collector. A nil recorder yields a no-op collector; a nil
// logger discards log output.
func Start(recorder Recorder, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Collector{
		recorder: recorder,
		logger:   logger,
		done:     make(chan struct{}),
	}
	if recorder == nil {
		logger.Warn("telemetry disabled: no store available")
		return c
	}
	c.events = make(chan Event, bufferSize)
	c.wg.Add(1)
	go c.processEvents()
	return c
}

// Enabled reports whether events are recorded.
func (c *Collector) Enabled() bool {
	return c != nil && c.events != nil
}

// Track queues an event without blocking.
func (c *Collector) Track(sessionID, kind string, payload map[string]any) {
	if !c.Enabled() {
		return
	}
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- Event{SessionID: sessionID, Kind: kind, Payload: payload}:
	default:
		c.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (c *Collector) Dropped() int64 {
	return c.dropped.Load()
}

// Close flushes queued events and stops the writer. Safe to call twice.
func (c *Collector) Close() {
	if c == nil {
		return
	}
	c.doneOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
}

func (c *Collector) processEvents() {
	defer c.wg.Done()
	for {
		select {
		case evt := <-c.events:
			c.write(evt)
		case <-c.done:
			for {
				select {
				case evt := <-c.events:
					c.write(evt)
				default:
					return
				}
			}
		}
	}
}

func (c *Collector) write(evt Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := c.recorder.RecordTelemetry(ctx, evt.SessionID, evt.Kind, evt.Payload); err != nil {
		c.logger.Warn("telemetry write failed", "kind", evt.Kind, "session", evt.SessionID, "error", err)
	}
}
