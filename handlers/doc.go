// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the OCT Rank API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - SessionHandler: Rater registration and session info
  - QuestionHandler: Question payloads and ranking-state mutations
  - SubmitHandler: Final submission and the CSV fallback export
  - AdminHandler: Coordinator views over the hosted database

# Evaluation Flow

A rater registers once, then answers the fixed question sequence:

	POST /session                          → Login (returns session_token)
	GET  /session/questions/{image}        → Get (live ranking state)
	POST /session/questions/{image}/move   → Move (drag reorder)
	POST /session/questions/{image}/swap   → Tap (tap-to-swap)
	POST /session/questions/{image}/rank   → Rank (numeric buttons)
	POST /session/questions/{image}/submit → Submit (lock in ranking)
	POST /session/submit                   → Finalize (push to database)

Rater operations require the X-Session-Token header. All three mutation
endpoints operate on the same ranking state, so drag, tap and numeric
input can be mixed freely within a question.

# Fallback Export

When Finalize fails, the session record stays intact and the answers
remain downloadable:

	GET /session/export → CSV attachment

# Coordinator Reporting

Read-only views over the hosted database, gated by the X-Admin-Password
header:

	GET /admin/clinicians
	GET /admin/rankings
	GET /admin/stats
	GET /admin/clinicians.csv
	GET /admin/rankings.csv
*/
package handlers
