// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/oct-rank/cliparse"
	"github.com/danielhkuo/oct-rank/export"
	"github.com/danielhkuo/oct-rank/middleware"
	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/pipeline"
	"github.com/danielhkuo/oct-rank/session"
)

type SubmitHandler struct {
	sessions *session.Manager
	pipe     *pipeline.Pipeline
	cfg      cliparse.Config
}

func NewSubmitHandler(sessions *session.Manager, pipe *pipeline.Pipeline, cfg cliparse.Config) *SubmitHandler {
	return &SubmitHandler{sessions: sessions, pipe: pipe, cfg: cfg}
}

// Finalize handles POST /session/submit
// Pushes every answered question to the hosted database. On failure the
// local record is preserved and the client is pointed at the CSV export.
func (h *SubmitHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}

	saved, err := h.pipe.Finalize(r.Context(), st)
	if err != nil {
		if errors.Is(err, pipeline.ErrNothingToSubmit) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "No answered questions to submit")
			return
		}
		middleware.JSONResponse(w, http.StatusBadGateway, models.ErrorResponse{
			Error:   "Submission failed",
			Message: "Your answers are kept locally. Download them from /session/export and contact the study coordinators.",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalizeResponse{
		Saved:   saved,
		Message: "All rankings saved. Thank you for participating.",
	})
}

// Export handles GET /session/export
// Streams the local record as a CSV download, the fallback path when the
// hosted database cannot be reached.
func (h *SubmitHandler) Export(w http.ResponseWriter, r *http.Request) {
	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}

	rec := session.LoadRecord(st)
	if len(rec.AnsweredOrder) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No answered questions to export")
		return
	}

	now := time.Now().UTC()
	data, err := export.CSV(rec, now)
	if err != nil {
		slog.Error("failed to build CSV export", "error", err, "clinician_id", rec.Clinician.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	filename := export.Filename(h.cfg.Dataset, rec.Clinician.ID, now)
	slog.Info("serving CSV export",
		"clinician_id", rec.Clinician.ID,
		"rows", len(rec.AnsweredOrder),
		"size", humanize.Bytes(uint64(len(data))))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
