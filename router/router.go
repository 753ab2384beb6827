// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/oct-rank/cliparse"
	"github.com/danielhkuo/oct-rank/handlers"
	"github.com/danielhkuo/oct-rank/middleware"
	"github.com/danielhkuo/oct-rank/pipeline"
	"github.com/danielhkuo/oct-rank/session"
	"github.com/danielhkuo/oct-rank/store"
)

func NewRouter(db *sql.DB, sessions *session.Manager, seq []int, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pipe := pipeline.New(store.NewClient(db))
	sessionHandler := handlers.NewSessionHandler(sessions, seq, cfg)
	questionHandler := handlers.NewQuestionHandler(sessions, pipe, seq, cfg)
	submitHandler := handlers.NewSubmitHandler(sessions, pipe, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session (rater identity)
	mux.HandleFunc("POST /session", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.Get))

	// Evaluation questions (requires X-Session-Token)
	mux.HandleFunc("GET /session/questions", middleware.WithLogging(questionHandler.List))
	mux.HandleFunc("GET /session/questions/{image}", middleware.WithLogging(questionHandler.Get))
	mux.HandleFunc("POST /session/questions/{image}/move", middleware.WithLogging(questionHandler.Move))
	mux.HandleFunc("POST /session/questions/{image}/swap", middleware.WithLogging(questionHandler.Tap))
	mux.HandleFunc("POST /session/questions/{image}/rank", middleware.WithLogging(questionHandler.Rank))
	mux.HandleFunc("POST /session/questions/{image}/submit", middleware.WithLogging(questionHandler.Submit))

	// Final submission and local fallback export
	mux.HandleFunc("POST /session/submit", middleware.WithLogging(submitHandler.Finalize))
	mux.HandleFunc("GET /session/export", middleware.WithLogging(submitHandler.Export))

	// Practice question (no session required, never recorded)
	mux.HandleFunc("GET /practice", middleware.WithLogging(questionHandler.Practice))

	// Coordinator reporting (requires X-Admin-Password)
	mux.HandleFunc("GET /admin/clinicians", middleware.WithLogging(adminHandler.Clinicians))
	mux.HandleFunc("GET /admin/rankings", middleware.WithLogging(adminHandler.Rankings))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(adminHandler.Stats))
	mux.HandleFunc("GET /admin/clinicians.csv", middleware.WithLogging(adminHandler.CliniciansCSV))
	mux.HandleFunc("GET /admin/rankings.csv", middleware.WithLogging(adminHandler.RankingsCSV))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("oct-rank API v1"))
	})

	return mux
}
