package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO generation_events (document_id, operation, model, latency_ms, fragments, success, error, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.DocumentID, data.Operation, data.Model,
		data.LatencyMs, data.Fragments, data.Success, data.ErrorMessage,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentGenerations(ctx context.Context, q EventQuery) ([]GenerationEvent, error) {
	// The operation filter runs before LIMIT so a limited query still
	// returns a full page of the requested operation.
	query := `
SELECT id, document_id, operation, model, latency_ms, fragments, success, error, created_at
FROM generation_events`
	var args []any
	if q.Operation != "" {
		query += " WHERE operation = ?"
		args = append(args, q.Operation)
	}
	query += " ORDER BY id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var out []GenerationEvent
	for rows.Next() {
		var e GenerationEvent
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.Operation, &e.Model,
			&e.LatencyMs, &e.Fragments, &e.Success, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
