// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/ranking"
)

// Session storage keys. Named after the entries the web client keeps in
// browser session storage.
const (
	KeyClinicianID          = "clinicianId"
	KeyClinicianName        = "clinicianName"
	KeyClinicianInstitution = "clinicianInstitution"
	KeyClinicianExperience  = "clinicianExperience"
	KeyClinicianCreatedAt   = "clinicianCreatedAt"
	KeyRankings             = "rankings"
	KeyModelSequences       = "modelSequences"
	KeyAnsweredOrder        = "answeredOrder"
	KeyStoreError           = "storeError"
)

func liveStateKey(imageID int) string {
	return "rankingState:" + strconv.Itoa(imageID)
}

// SaveIdentity writes the clinician identity fields into the store.
func SaveIdentity(st Store, c models.Clinician) {
	st.Set(KeyClinicianID, c.ID)
	st.Set(KeyClinicianName, c.Name)
	st.Set(KeyClinicianInstitution, c.Institution)
	st.Set(KeyClinicianExperience, c.Experience)
	st.Set(KeyClinicianCreatedAt, c.CreatedAt.Format(time.RFC3339))
}

// LoadRecord assembles the full local session record from the store.
// Malformed stored JSON is logged and treated as absence of prior data; it
// never propagates.
func LoadRecord(st Store) *models.SessionRecord {
	rec := &models.SessionRecord{
		Rankings:    loadIntMap(st, KeyRankings),
		ShownOrders: loadIntMap(st, KeyModelSequences),
	}

	rec.Clinician = models.Clinician{
		ID:          getOr(st, KeyClinicianID, ""),
		Name:        getOr(st, KeyClinicianName, "Anonymous"),
		Institution: getOr(st, KeyClinicianInstitution, "Not specified"),
		Experience:  getOr(st, KeyClinicianExperience, "unknown"),
		CreatedAt:   loadCreatedAt(st),
	}

	if raw, ok := st.Get(KeyAnsweredOrder); ok {
		var order []int
		if err := json.Unmarshal([]byte(raw), &order); err != nil {
			slog.Warn("discarding malformed answered order", "error", err)
		} else {
			rec.AnsweredOrder = order
		}
	}
	// Repair: any answered image missing from the order list (e.g. the
	// order entry was dropped as malformed) is appended so export still
	// covers the complete record.
	seen := make(map[int]bool, len(rec.AnsweredOrder))
	for _, id := range rec.AnsweredOrder {
		seen[id] = true
	}
	for id := range rec.Rankings {
		if !seen[id] {
			rec.AnsweredOrder = append(rec.AnsweredOrder, id)
		}
	}

	rec.StoreError, _ = st.Get(KeyStoreError)

	return rec
}

// SaveRanking snapshots one answered question into the store: the
// submitted best-to-worst order and, the first time only, the order the
// candidates were shown in. Re-submitting a question overwrites the
// ranking but never the shown order.
func SaveRanking(st Store, imageID int, ranked, shown []string) {
	rankings := loadIntMap(st, KeyRankings)
	_, already := rankings[imageID]
	rankings[imageID] = ranked
	saveIntMap(st, KeyRankings, rankings)

	sequences := loadIntMap(st, KeyModelSequences)
	if _, ok := sequences[imageID]; !ok {
		sequences[imageID] = shown
		saveIntMap(st, KeyModelSequences, sequences)
	}

	if !already {
		var order []int
		if raw, ok := st.Get(KeyAnsweredOrder); ok {
			if err := json.Unmarshal([]byte(raw), &order); err != nil {
				slog.Warn("discarding malformed answered order", "error", err)
				order = nil
			}
		}
		order = append(order, imageID)
		if data, err := json.Marshal(order); err == nil {
			st.Set(KeyAnsweredOrder, string(data))
		}
	}
}

// SetStoreError records a remote-store failure so the session keeps
// offering the local export path.
func SetStoreError(st Store, message string) {
	st.Set(KeyStoreError, message)
}

// ClearStoreError removes the remote-failure flag.
func ClearStoreError(st Store) {
	st.Delete(KeyStoreError)
}

// SaveLiveState parks the in-progress ranking state for a question.
func SaveLiveState(st Store, imageID int, state *ranking.State) {
	data, err := json.Marshal(state)
	if err != nil {
		slog.Error("failed to serialize ranking state", "error", err, "image_id", imageID)
		return
	}
	st.Set(liveStateKey(imageID), string(data))
}

// LoadLiveState restores the in-progress ranking state for a question.
// Returns nil when there is none or the stored JSON is malformed.
func LoadLiveState(st Store, imageID int) *ranking.State {
	raw, ok := st.Get(liveStateKey(imageID))
	if !ok {
		return nil
	}

	var state ranking.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		slog.Warn("discarding malformed ranking state", "error", err, "image_id", imageID)
		st.Delete(liveStateKey(imageID))
		return nil
	}
	return &state
}

// ClearLiveState abandons any in-progress state for a question.
func ClearLiveState(st Store, imageID int) {
	st.Delete(liveStateKey(imageID))
}

func getOr(st Store, key, fallback string) string {
	if v, ok := st.Get(key); ok && v != "" {
		return v
	}
	return fallback
}

func loadCreatedAt(st Store) time.Time {
	raw, ok := st.Get(KeyClinicianCreatedAt)
	if !ok {
		return time.Now().UTC()
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.Warn("discarding malformed created_at", "error", err)
		return time.Now().UTC()
	}
	return ts
}

// loadIntMap reads a JSON object of image id -> label list. Malformed data
// degrades to an empty map.
func loadIntMap(st Store, key string) map[int][]string {
	out := make(map[int][]string)

	raw, ok := st.Get(key)
	if !ok {
		return out
	}

	var parsed map[string][]string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Warn("discarding malformed session entry", "key", key, "error", err)
		return out
	}

	for k, v := range parsed {
		id, err := strconv.Atoi(k)
		if err != nil {
			slog.Warn("discarding non-numeric image id", "key", key, "id", k)
			continue
		}
		out[id] = v
	}
	return out
}

func saveIntMap(st Store, key string, m map[int][]string) {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[strconv.Itoa(k)] = v
	}

	data, err := json.Marshal(out)
	if err != nil {
		slog.Error("failed to serialize session entry", "key", key, "error", err)
		return
	}
	st.Set(key, string(data))
}
