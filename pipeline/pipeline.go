// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/ranking"
	"github.com/danielhkuo/oct-rank/session"
	"github.com/danielhkuo/oct-rank/store"
)

var (
	ErrIncomplete      = errors.New("ranking is not complete")
	ErrNothingToSubmit = errors.New("no answered questions to submit")
)

// Pipeline turns in-memory rankings into persisted records, degrading to
// the local session record when the remote store fails.
type Pipeline struct {
	store store.Inserter
}

func New(ins store.Inserter) *Pipeline {
	return &Pipeline{store: ins}
}

// SubmitQuestion snapshots one completed ranking into durable session
// storage: the canonical best-to-worst order, the as-shown order (first
// submission only), and the answer position. Incomplete rankings are
// rejected; they must never reach persistence.
func (p *Pipeline) SubmitQuestion(st session.Store, imageID int, state *ranking.State) error {
	if !state.IsComplete() {
		return ErrIncomplete
	}

	session.SaveRanking(st, imageID, state.OrderedLabels(), state.ShownOrder())
	session.ClearLiveState(st, imageID)

	slog.Info("ranking saved", "image_id", imageID)
	return nil
}

// Finalize pushes the whole local record to the remote store.
//
// The clinician identity is written first: a duplicate-key failure means
// the rater already registered and is treated as success; any other
// failure is logged and skipped, since identity rows are recoverable from
// the ranking rows. The per-question writes then run strictly one at a
// time, in answer order, so a failure has a deterministic cut point. On
// the first failed write the remaining writes are abandoned, the
// remote-failure flag is set, and the local record is left intact for CSV
// export. Writes are upserts, so re-running Finalize after a partial
// failure is safe.
//
// Returns the number of ranking rows written.
func (p *Pipeline) Finalize(ctx context.Context, st session.Store) (int, error) {
	rec := session.LoadRecord(st)
	if len(rec.AnsweredOrder) == 0 {
		return 0, ErrNothingToSubmit
	}

	if err := p.store.InsertClinician(ctx, rec.Clinician); err != nil {
		if store.IsDuplicate(err) {
			slog.Info("clinician already registered", "clinician_id", rec.Clinician.ID)
		} else {
			slog.Warn("could not save clinician record, continuing", "error", err, "clinician_id", rec.Clinician.ID)
		}
	}

	submittedAt := time.Now().UTC()
	saved := 0
	for _, imageID := range rec.AnsweredOrder {
		ranked, ok := rec.Rankings[imageID]
		if !ok {
			continue
		}
		shown := rec.ShownOrders[imageID]
		if len(shown) == 0 {
			shown = ranked
		}

		row := models.RankingRow{
			ClinicianID:   rec.Clinician.ID,
			ImageID:       imageID,
			ModelRankings: ranked,
			ModelSequence: shown,
			SubmittedAt:   submittedAt,
		}

		if err := p.store.UpsertRanking(ctx, row); err != nil {
			slog.Error("ranking write failed, aborting submission",
				"error", err, "image_id", imageID, "saved", saved)
			session.SetStoreError(st, err.Error())
			return saved, fmt.Errorf("submission failed at image %d: %w", imageID, err)
		}
		saved++
	}

	session.ClearStoreError(st)
	slog.Info("submission complete", "clinician_id", rec.Clinician.ID, "rankings", saved)
	return saved, nil
}
