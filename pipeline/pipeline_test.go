// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/ranking"
	"github.com/danielhkuo/oct-rank/session"
)

// fakeStore implements store.Inserter and fails deterministically on a
// chosen ranking-write index (1-based; 0 = never fail).
type fakeStore struct {
	clinicianErr  error
	failOnRanking int
	clinicians    []models.Clinician
	rankings      []models.RankingRow
}

func (f *fakeStore) InsertClinician(_ context.Context, c models.Clinician) error {
	if f.clinicianErr != nil {
		return f.clinicianErr
	}
	f.clinicians = append(f.clinicians, c)
	return nil
}

func (f *fakeStore) UpsertRanking(_ context.Context, row models.RankingRow) error {
	if f.failOnRanking > 0 && len(f.rankings)+1 == f.failOnRanking {
		return errors.New("connection reset by peer")
	}
	f.rankings = append(f.rankings, row)
	return nil
}

func sessionWithAnswers(t *testing.T, n int) session.Store {
	t.Helper()

	st := session.NewStore()
	session.SaveIdentity(st, models.Clinician{
		ID:          "clinician_pipe01",
		Name:        "Dr. Example",
		Institution: "University Hospital",
		Experience:  models.ExperienceSenior,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	for i := 0; i < n; i++ {
		state := ranking.New(models.Models, nil)
		if err := New(&fakeStore{}).SubmitQuestion(st, 100+i, state); err != nil {
			t.Fatalf("SubmitQuestion failed: %v", err)
		}
	}
	return st
}

func TestSubmitQuestionRejectsIncomplete(t *testing.T) {
	st := session.NewStore()
	p := New(&fakeStore{})

	state := ranking.New(models.Models, nil)
	if err := state.AssignRank("DDPM", 1); err != nil {
		t.Fatalf("AssignRank failed: %v", err)
	}

	if err := p.SubmitQuestion(st, 92, state); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Expected ErrIncomplete, got %v", err)
	}
	if rec := session.LoadRecord(st); len(rec.Rankings) != 0 {
		t.Error("Expected nothing persisted for incomplete ranking")
	}
}

func TestSubmitQuestionSnapshotsAndClearsLiveState(t *testing.T) {
	st := session.NewStore()
	p := New(&fakeStore{})

	state := ranking.New(models.Models, nil)
	session.SaveLiveState(st, 92, state)

	if err := p.SubmitQuestion(st, 92, state); err != nil {
		t.Fatalf("SubmitQuestion failed: %v", err)
	}

	rec := session.LoadRecord(st)
	if len(rec.Rankings[92]) != models.ModelCount {
		t.Errorf("Expected full ranking snapshot, got %v", rec.Rankings[92])
	}
	if len(rec.ShownOrders[92]) != models.ModelCount {
		t.Errorf("Expected shown order snapshot, got %v", rec.ShownOrders[92])
	}
	if session.LoadLiveState(st, 92) != nil {
		t.Error("Expected live state cleared after submission")
	}
}

func TestFinalizeNothingToSubmit(t *testing.T) {
	st := session.NewStore()
	p := New(&fakeStore{})

	if _, err := p.Finalize(context.Background(), st); !errors.Is(err, ErrNothingToSubmit) {
		t.Errorf("Expected ErrNothingToSubmit, got %v", err)
	}
}

func TestFinalizeSuccess(t *testing.T) {
	st := sessionWithAnswers(t, 3)
	fake := &fakeStore{}
	p := New(fake)

	saved, err := p.Finalize(context.Background(), st)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if saved != 3 {
		t.Errorf("Expected 3 rankings saved, got %d", saved)
	}
	if len(fake.clinicians) != 1 {
		t.Errorf("Expected 1 clinician record, got %d", len(fake.clinicians))
	}

	// Writes follow answer order
	for i, row := range fake.rankings {
		if row.ImageID != 100+i {
			t.Errorf("Expected write %d for image %d, got %d", i, 100+i, row.ImageID)
		}
		if row.ClinicianID != "clinician_pipe01" {
			t.Errorf("Unexpected clinician id %q", row.ClinicianID)
		}
	}

	if rec := session.LoadRecord(st); rec.StoreError != "" {
		t.Errorf("Expected no store error after success, got %q", rec.StoreError)
	}
}

func TestFinalizeDuplicateClinicianIsBenign(t *testing.T) {
	st := sessionWithAnswers(t, 2)
	fake := &fakeStore{
		clinicianErr: fmt.Errorf(`pq: duplicate key value violates unique constraint "clinicians_pkey"`),
	}
	p := New(fake)

	saved, err := p.Finalize(context.Background(), st)
	if err != nil {
		t.Fatalf("Expected duplicate identity treated as success, got %v", err)
	}
	if saved != 2 {
		t.Errorf("Expected 2 rankings saved, got %d", saved)
	}
}

func TestFinalizeClinicianFailureDoesNotAbort(t *testing.T) {
	st := sessionWithAnswers(t, 2)
	fake := &fakeStore{clinicianErr: errors.New("timeout")}
	p := New(fake)

	saved, err := p.Finalize(context.Background(), st)
	if err != nil {
		t.Fatalf("Expected pipeline to continue past clinician failure, got %v", err)
	}
	if saved != 2 {
		t.Errorf("Expected 2 rankings saved, got %d", saved)
	}
}

func TestFinalizePartialFailurePreservesLocalState(t *testing.T) {
	st := sessionWithAnswers(t, 10)
	fake := &fakeStore{failOnRanking: 3}
	p := New(fake)

	saved, err := p.Finalize(context.Background(), st)
	if err == nil {
		t.Fatal("Expected Finalize to fail on the 3rd write")
	}
	if saved != 2 {
		t.Errorf("Expected 2 rankings saved before the failure, got %d", saved)
	}

	// The complete local record survives: all 10 answers remain exportable
	rec := session.LoadRecord(st)
	if len(rec.Rankings) != 10 {
		t.Errorf("Expected all 10 local rankings preserved, got %d", len(rec.Rankings))
	}
	if len(rec.AnsweredOrder) != 10 {
		t.Errorf("Expected full answer order preserved, got %d", len(rec.AnsweredOrder))
	}
	if rec.StoreError == "" {
		t.Error("Expected remote-failure flag set")
	}
}

func TestFinalizeRetryAfterPartialFailure(t *testing.T) {
	st := sessionWithAnswers(t, 4)

	fake := &fakeStore{failOnRanking: 2}
	if _, err := New(fake).Finalize(context.Background(), st); err == nil {
		t.Fatal("Expected first attempt to fail")
	}

	// Second attempt against a healthy store writes every row again
	// (upsert semantics make this idempotent remotely)
	retry := &fakeStore{}
	saved, err := New(retry).Finalize(context.Background(), st)
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if saved != 4 {
		t.Errorf("Expected all 4 rankings saved on retry, got %d", saved)
	}
	if rec := session.LoadRecord(st); rec.StoreError != "" {
		t.Errorf("Expected failure flag cleared after successful retry, got %q", rec.StoreError)
	}
}
