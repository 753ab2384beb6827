// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/oct-rank/auth"
	"github.com/danielhkuo/oct-rank/cliparse"
	"github.com/danielhkuo/oct-rank/middleware"
	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/session"
)

type SessionHandler struct {
	sessions *session.Manager
	seq      []int
	cfg      cliparse.Config
}

func NewSessionHandler(sessions *session.Manager, seq []int, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{sessions: sessions, seq: seq, cfg: cfg}
}

// Login handles POST /session
// Creates the rater's session and identity record. Name and institution
// are optional; the experience tier is the only required field.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Experience != models.ExperienceJunior && req.Experience != models.ExperienceSenior {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"experience must be "+models.ExperienceJunior+" or "+models.ExperienceSenior)
		return
	}

	clinicianID, err := auth.GenerateClinicianID()
	if err != nil {
		slog.Error("failed to generate clinician id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, st := h.sessions.Create()
	session.SaveIdentity(st, models.Clinician{
		ID:          clinicianID,
		Name:        req.Name,
		Institution: req.Institution,
		Experience:  req.Experience,
		CreatedAt:   time.Now().UTC(),
	})

	slog.Info("session created", "clinician_id", clinicianID)

	middleware.JSONResponse(w, http.StatusCreated, models.LoginResponse{
		SessionToken: token,
		ClinicianID:  clinicianID,
	})
}

// Get handles GET /session
// Returns the rater's identity and progress.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}

	rec := session.LoadRecord(st)
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		ClinicianID: rec.Clinician.ID,
		Name:        rec.Clinician.Name,
		Institution: rec.Clinician.Institution,
		Experience:  rec.Clinician.Experience,
		CreatedAt:   rec.Clinician.CreatedAt.Format(time.RFC3339),
		Answered:    len(rec.AnsweredOrder),
		Total:       len(h.seq),
		StoreError:  rec.StoreError,
	})
}

// requireSession resolves the X-Session-Token header to a session store.
func requireSession(m *session.Manager, w http.ResponseWriter, r *http.Request) (session.Store, bool) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Session-Token header required")
		return nil, false
	}

	st, ok := m.Lookup(token)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session token")
		return nil, false
	}
	return st, true
}
