// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the OCT Rank API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, sessions, seq, cfg)

# Endpoints

Health:

	GET /health

Session (rater identity):

	POST /session - Register and open a session
	GET  /session - Identity and progress

Evaluation questions (require X-Session-Token):

	GET  /session/questions                - Question list with answered flags
	GET  /session/questions/{image}        - One question with live ranking state
	POST /session/questions/{image}/move   - Drag a candidate to a position
	POST /session/questions/{image}/swap   - Tap-to-swap two positions
	POST /session/questions/{image}/rank   - Assign a numeric rank
	POST /session/questions/{image}/submit - Lock in the completed ranking

Final submission:

	POST /session/submit - Push all answers to the hosted database
	GET  /session/export - Download answers as CSV (fallback path)

Practice (public, never recorded):

	GET /practice

Coordinator reporting (require X-Admin-Password):

	GET /admin/clinicians
	GET /admin/rankings
	GET /admin/stats
	GET /admin/clinicians.csv
	GET /admin/rankings.csv

# Handler Initialization

The router creates handler instances with dependency injection:

	pipe := pipeline.New(store.NewClient(db))
	sessionHandler := handlers.NewSessionHandler(sessions, seq, cfg)
	questionHandler := handlers.NewQuestionHandler(sessions, pipe, seq, cfg)
	submitHandler := handlers.NewSubmitHandler(sessions, pipe, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
*/
package router
