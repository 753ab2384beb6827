// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store wraps the hosted database behind a small insert-only
capability.

Client adds exactly three things over database/sql: a lazy one-time
connection check, a fixed 10-second timeout per call, and upsert semantics
for ranking rows keyed on (clinician_id, image_id). The Inserter interface
is what the submission pipeline consumes, so tests substitute a fake store
that fails on a chosen call.

Reads are not part of the core; auxiliary reporting queries the database
directly.
*/
package store
