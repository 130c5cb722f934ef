package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TelemetryRecord is one gameplay event as stored.
type TelemetryRecord struct {
	ID        int64
	SessionID string
	Kind      string
	Payload   map[string]any
	CreatedAt time.Time
}

// RecordTelemetry appends an event. The payload is stored as JSON.
func (s *Store) RecordTelemetry(ctx context.Context, sessionID, kind string, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("storage: cannot encode telemetry payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO telemetry (session_id, kind, payload) VALUES (?, ?, ?)",
		sessionID, kind, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record telemetry: %w", err)
	}
	return nil
}

// CountTelemetry returns how many events of kind were recorded.
func (s *Store) CountTelemetry(ctx context.Context, kind string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM telemetry WHERE kind = ?", kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count telemetry: %w", err)
	}
	return n, nil
}

// SessionTelemetry returns the events of one session in recording order.
func (s *Store) SessionTelemetry(ctx context.Context, sessionID string) ([]TelemetryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, kind, payload, created_at
		 FROM telemetry
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query telemetry: %w", err)
	}
	defer rows.Close()

	var records []TelemetryRecord
	for rows.Next() {
		var rec TelemetryRecord
		var payload string
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Kind, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
			return nil, fmt.Errorf("storage: cannot decode telemetry payload: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}
