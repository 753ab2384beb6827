// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/oct-rank/models"
)

// RequestTimeout bounds every remote call. A call that exceeds it is
// treated as failed, not retried; the caller degrades to local export.
const RequestTimeout = 10 * time.Second

// Inserter is the capability the submission pipeline needs from the
// remote store. Tests inject a fake that fails deterministically on a
// chosen call index.
type Inserter interface {
	InsertClinician(ctx context.Context, c models.Clinician) error
	UpsertRanking(ctx context.Context, row models.RankingRow) error
}

// Client is a thin wrapper over the hosted database: lazy one-time
// connection check, fixed per-call timeout, inserts only.
type Client struct {
	db      *sql.DB
	once    sync.Once
	initErr error
}

func NewClient(db *sql.DB) *Client {
	return &Client{db: db}
}

// init verifies the connection exactly once, on first use.
func (c *Client) init(ctx context.Context) error {
	c.once.Do(func() {
		c.initErr = c.db.PingContext(ctx)
	})
	if c.initErr != nil {
		return fmt.Errorf("store unavailable: %w", c.initErr)
	}
	return nil
}

// InsertClinician writes the rater identity record. Duplicate-key errors
// pass through unchanged so the caller can treat them as benign via
// IsDuplicate.
func (c *Client) InsertClinician(ctx context.Context, cl models.Clinician) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if err := c.init(ctx); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO clinicians (id, name, institution, experience, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, cl.ID, cl.Name, cl.Institution, cl.Experience, cl.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert clinician: %w", err)
	}

	return nil
}

// UpsertRanking writes one judgment row, keyed on (clinician_id,
// image_id) so re-running a submission after a partial failure updates
// rows already saved instead of duplicating them.
func (c *Client) UpsertRanking(ctx context.Context, row models.RankingRow) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if err := c.init(ctx); err != nil {
		return err
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO rankings (id, clinician_id, image_id, model_rankings, model_sequence, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (clinician_id, image_id) DO UPDATE SET
			model_rankings = excluded.model_rankings,
			model_sequence = excluded.model_sequence,
			submitted_at = excluded.submitted_at
	`, uuid.NewString(), row.ClinicianID, row.ImageID,
		strings.Join(row.ModelRankings, ","), strings.Join(row.ModelSequence, ","),
		row.SubmittedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert ranking for image %d: %w", row.ImageID, err)
	}

	return nil
}

// IsDuplicate reports whether the error is a duplicate-key violation, in
// either backend's wording.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
