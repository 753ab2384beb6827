// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/oct-rank/auth"
	"github.com/danielhkuo/oct-rank/cliparse"
	"github.com/danielhkuo/oct-rank/middleware"
	"github.com/danielhkuo/oct-rank/models"
)

// AdminHandler serves the study coordinators' read-only views over the
// hosted database. All endpoints require the shared admin password in the
// X-Admin-Password header.
type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if !auth.CheckAdminPassword(r.Header.Get("X-Admin-Password"), h.cfg.AdminPassword) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin password")
		return false
	}
	return true
}

// Clinicians handles GET /admin/clinicians
func (h *AdminHandler) Clinicians(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	items, err := h.listClinicians(r)
	if err != nil {
		slog.Error("failed to list clinicians", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch clinicians")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// Rankings handles GET /admin/rankings
func (h *AdminHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	items, err := h.listRankings(r)
	if err != nil {
		slog.Error("failed to list rankings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch rankings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// Stats handles GET /admin/stats
// Row counts plus the experience-tier split of registered clinicians.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var stats models.AdminStats

	err := h.db.QueryRowContext(r.Context(),
		"SELECT COUNT(*) FROM clinicians").Scan(&stats.Clinicians)
	if err == nil {
		err = h.db.QueryRowContext(r.Context(),
			"SELECT COUNT(*) FROM rankings").Scan(&stats.Rankings)
	}
	if err != nil {
		slog.Error("failed to count rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	rows, err := h.db.QueryContext(r.Context(),
		"SELECT experience, COUNT(*) FROM clinicians GROUP BY experience")
	if err != nil {
		slog.Error("failed to group by experience", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			slog.Error("failed to scan experience row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
			return
		}
		switch tier {
		case models.ExperienceJunior:
			stats.ExperienceJunior = count
		case models.ExperienceSenior:
			stats.ExperienceSenior = count
		default:
			stats.ExperienceOther += count
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read experience rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// CliniciansCSV handles GET /admin/clinicians.csv
func (h *AdminHandler) CliniciansCSV(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	items, err := h.listClinicians(r)
	if err != nil {
		slog.Error("failed to list clinicians", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch clinicians")
		return
	}

	records := [][]string{{"id", "name", "institution", "experience", "created_at"}}
	for _, c := range items {
		records = append(records, []string{c.ID, c.Name, c.Institution, c.Experience, c.CreatedAt})
	}
	h.serveCSV(w, "clinicians", records)
}

// RankingsCSV handles GET /admin/rankings.csv
func (h *AdminHandler) RankingsCSV(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	items, err := h.listRankings(r)
	if err != nil {
		slog.Error("failed to list rankings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch rankings")
		return
	}

	records := [][]string{{"clinician_id", "image_id", "model_rankings", "model_sequence", "submitted_at"}}
	for _, row := range items {
		records = append(records, []string{
			row.ClinicianID,
			strconv.Itoa(row.ImageID),
			strings.Join(row.ModelRankings, ","),
			strings.Join(row.ModelSequence, ","),
			row.SubmittedAt,
		})
	}
	h.serveCSV(w, "rankings", records)
}

func (h *AdminHandler) listClinicians(r *http.Request) ([]models.ClinicianListItem, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, institution, experience, created_at
		FROM clinicians
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ClinicianListItem{}
	for rows.Next() {
		var c models.ClinicianListItem
		var institution sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &institution, &c.Experience, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Institution = institution.String
		items = append(items, c)
	}
	return items, rows.Err()
}

func (h *AdminHandler) listRankings(r *http.Request) ([]models.RankingListItem, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT clinician_id, image_id, model_rankings, model_sequence, submitted_at
		FROM rankings
		ORDER BY clinician_id, image_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.RankingListItem{}
	for rows.Next() {
		var row models.RankingListItem
		var ranked, shown string
		if err := rows.Scan(&row.ClinicianID, &row.ImageID, &ranked, &shown, &row.SubmittedAt); err != nil {
			return nil, err
		}
		row.ModelRankings = strings.Split(ranked, ",")
		row.ModelSequence = strings.Split(shown, ",")
		items = append(items, row)
	}
	return items, rows.Err()
}

func (h *AdminHandler) serveCSV(w http.ResponseWriter, name string, records [][]string) {
	filename := name + "_" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.WriteAll(records)
	if err := cw.Error(); err != nil {
		slog.Error("failed to stream admin CSV", "error", err, "name", name)
	}
}
