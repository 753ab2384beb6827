// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Two tables:

  - clinicians: rater identity records (id, name, institution, experience,
    created_at)
  - rankings: one row per clinician per answered question, with the
    best-to-worst order and the as-shown order stored as comma-joined
    label lists, UNIQUE on (clinician_id, image_id)

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

The schema uses IF NOT EXISTS and portable DDL, so it is safe to run on
every startup against either SQLite or PostgreSQL.
*/
package db
