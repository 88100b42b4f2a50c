package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type contentRepo struct {
	db *sql.DB
}

func (r *contentRepo) SaveGeneratedContent(ctx context.Context, documentID string, upd ContentUpdate) error {
	if documentID == "" {
		return errors.New("document ID is empty")
	}
	if upd.Summary == nil && upd.KeyPoints == nil {
		return errors.New("empty content update")
	}

	// Upsert preserving whichever field the update does not carry.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO generated_content (document_id, summary, key_points, updated_at)
VALUES (?, COALESCE(?, ''), COALESCE(?, ''), ?)
ON CONFLICT(document_id) DO UPDATE SET
	summary    = COALESCE(?, generated_content.summary),
	key_points = COALESCE(?, generated_content.key_points),
	updated_at = excluded.updated_at`,
		documentID, upd.Summary, upd.KeyPoints, time.Now().UTC(),
		upd.Summary, upd.KeyPoints,
	)
	if err != nil {
		return fmt.Errorf("save generated content: %w", err)
	}
	return nil
}

func (r *contentRepo) Content(ctx context.Context, documentID string) (*GeneratedContent, error) {
	var c GeneratedContent
	err := r.db.QueryRowContext(ctx, `
SELECT document_id, summary, key_points, updated_at
FROM generated_content WHERE document_id = ?`, documentID).
		Scan(&c.DocumentID, &c.Summary, &c.KeyPoints, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load generated content: %w", err)
	}
	return &c, nil
}
