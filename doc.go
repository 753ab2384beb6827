// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the OCT Rank API server.

OCT Rank is a clinical survey service: retina specialists rank five
AI-enhanced renderings of the same OCT scan, best to worst, across a
fixed sequence of ten questions. Answers accumulate in the rater's
session and are pushed to a hosted database at the end, with a local CSV
download as the fallback when that push fails.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=survey.db go run main.go

Or with flags:

	go run main.go -p 3418 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3418)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_PASSWORD (-admin-password): Coordinator password
  - DATASET (-dataset): Dataset name used in export filenames

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (session, questions, submission, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - ranking: Canonical per-question ranking state
  - sequence: Deterministic question sequence generation
  - session: Server-side session storage
  - pipeline: Per-question snapshots and final submission
  - store: Hosted database writes
  - export: CSV fallback export
  - auth: Clinician IDs and admin password check
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
