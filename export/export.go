// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/oct-rank/models"
)

// Headers is the fixed column order of the combined export.
var Headers = []string{
	"clinician_id",
	"clinician_name",
	"clinician_institution",
	"clinician_experience",
	"clinician_created_at",
	"image_id",
	"model_rankings",
	"model_sequence",
	"submitted_at",
}

// Rows flattens a session record into one row per answered question, in
// answer order, with the clinician identity repeated on every row. A
// missing shown order falls back to the ranking itself.
func Rows(rec *models.SessionRecord, exportedAt time.Time) [][]string {
	rows := make([][]string, 0, len(rec.AnsweredOrder))
	for _, imageID := range rec.AnsweredOrder {
		ranked, ok := rec.Rankings[imageID]
		if !ok {
			continue
		}
		shown := rec.ShownOrders[imageID]
		if len(shown) == 0 {
			shown = ranked
		}

		rows = append(rows, []string{
			rec.Clinician.ID,
			rec.Clinician.Name,
			rec.Clinician.Institution,
			rec.Clinician.Experience,
			rec.Clinician.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(imageID),
			strings.Join(ranked, ","),
			strings.Join(shown, ","),
			exportedAt.Format(time.RFC3339),
		})
	}
	return rows
}

// CSV renders the record as UTF-8 delimited text: header first, then one
// row per answered question. Fields containing the delimiter or quote
// character are quote-wrapped with internal quotes doubled.
func CSV(rec *models.SessionRecord, exportedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Rows(rec, exportedAt) {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name: {dataset}_{clinicianId}_{ISO date}.csv
func Filename(dataset, clinicianID string, when time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", dataset, clinicianID, when.Format("2006-01-02"))
}
