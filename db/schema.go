// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
// subset shared by SQLite and PostgreSQL so both backends work unchanged.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Clinicians (rater identity records)
-- Timestamps are stored as RFC 3339 text so SQLite and PostgreSQL scan
-- them identically.
CREATE TABLE IF NOT EXISTS clinicians (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    institution TEXT,
    experience TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Rankings: one row per clinician per answered question.
-- model_rankings and model_sequence are comma-joined label lists.
-- The UNIQUE pair makes re-submission after a partial failure an upsert
-- instead of a duplicate row.
CREATE TABLE IF NOT EXISTS rankings (
    id TEXT PRIMARY KEY,
    clinician_id TEXT NOT NULL,
    image_id INTEGER NOT NULL,
    model_rankings TEXT NOT NULL,
    model_sequence TEXT NOT NULL,
    submitted_at TEXT NOT NULL,
    UNIQUE (clinician_id, image_id)
);

CREATE INDEX IF NOT EXISTS idx_rankings_clinician ON rankings(clinician_id);
CREATE INDEX IF NOT EXISTS idx_rankings_image ON rankings(image_id);
`
