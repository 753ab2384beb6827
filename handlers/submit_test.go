package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/pipeline"
	"github.com/danielhkuo/oct-rank/session"
	"github.com/danielhkuo/oct-rank/store"
)

// answerAll walks the full sequence, submitting the as-shown order for
// every question.
func answerAll(t *testing.T, env *questionTestEnv, token string) {
	t.Helper()
	for _, imageID := range env.seq {
		env.getQuestion(t, token, imageID)
		w := env.mutateQuestion(t, token, imageID, "submit", struct{}{})
		if w.Code != http.StatusOK {
			t.Fatalf("Submit of image %d failed with status %d: %s", imageID, w.Code, w.Body.String())
		}
	}
}

func TestFinalize(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	seq := []int{10, 20, 30}
	sessions := session.NewManager()
	pipe := pipeline.New(store.NewClient(conn))

	env := &questionTestEnv{
		sessions: sessions,
		session:  NewSessionHandler(sessions, seq, cfg),
		question: NewQuestionHandler(sessions, pipe, seq, cfg),
		submit:   NewSubmitHandler(sessions, pipe, cfg),
		seq:      seq,
	}

	token, clinicianID := createTestSession(t, env.session)
	answerAll(t, env, token)

	req := httptest.NewRequest("POST", "/session/submit", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	env.submit.Finalize(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Finalize failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp models.FinalizeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Saved != len(seq) {
		t.Errorf("Expected %d saved, got %d", len(seq), resp.Saved)
	}

	// Rows landed in the database
	var clinicians, rankings int
	if err := conn.QueryRow("SELECT COUNT(*) FROM clinicians WHERE id = $1", clinicianID).Scan(&clinicians); err != nil {
		t.Fatalf("Failed to count clinicians: %v", err)
	}
	if clinicians != 1 {
		t.Errorf("Expected 1 clinician row, got %d", clinicians)
	}
	if err := conn.QueryRow("SELECT COUNT(*) FROM rankings WHERE clinician_id = $1", clinicianID).Scan(&rankings); err != nil {
		t.Fatalf("Failed to count rankings: %v", err)
	}
	if rankings != len(seq) {
		t.Errorf("Expected %d ranking rows, got %d", len(seq), rankings)
	}

	// Re-running Finalize upserts instead of duplicating
	w = httptest.NewRecorder()
	env.submit.Finalize(w, httptest.NewRequest("POST", "/session/submit", nil))
	// missing token on purpose
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}

	req = httptest.NewRequest("POST", "/session/submit", nil)
	req.Header.Set("X-Session-Token", token)
	w = httptest.NewRecorder()
	env.submit.Finalize(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Second finalize failed with status %d: %s", w.Code, w.Body.String())
	}

	if err := conn.QueryRow("SELECT COUNT(*) FROM rankings WHERE clinician_id = $1", clinicianID).Scan(&rankings); err != nil {
		t.Fatalf("Failed to count rankings: %v", err)
	}
	if rankings != len(seq) {
		t.Errorf("Expected %d ranking rows after re-submit, got %d", len(seq), rankings)
	}
}

func TestFinalizeNothingToSubmit(t *testing.T) {
	env := newQuestionTestEnv(t)
	token, _ := createTestSession(t, env.session)

	req := httptest.NewRequest("POST", "/session/submit", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	env.submit.Finalize(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestFinalizeStoreFailureKeepsRecord(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	seq := []int{10, 20}
	sessions := session.NewManager()
	pipe := pipeline.New(store.NewClient(conn))

	env := &questionTestEnv{
		sessions: sessions,
		session:  NewSessionHandler(sessions, seq, cfg),
		question: NewQuestionHandler(sessions, pipe, seq, cfg),
		submit:   NewSubmitHandler(sessions, pipe, cfg),
		seq:      seq,
	}

	token, _ := createTestSession(t, env.session)
	answerAll(t, env, token)

	// Kill the database so every remote write fails
	conn.Close()

	req := httptest.NewRequest("POST", "/session/submit", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	env.submit.Finalize(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d. Body: %s", w.Code, w.Body.String())
	}

	// The session still reports the failure and keeps the answers
	req = httptest.NewRequest("GET", "/session", nil)
	req.Header.Set("X-Session-Token", token)
	w = httptest.NewRecorder()
	env.session.Get(w, req)

	var sess models.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&sess); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	if sess.StoreError == "" {
		t.Error("Expected store_error to be set after failed submission")
	}
	if sess.Answered != len(seq) {
		t.Errorf("Expected %d answered after failure, got %d", len(seq), sess.Answered)
	}

	// The CSV fallback still works
	req = httptest.NewRequest("GET", "/session/export", nil)
	req.Header.Set("X-Session-Token", token)
	w = httptest.NewRecorder()
	env.submit.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Export failed with status %d: %s", w.Code, w.Body.String())
	}
}

func TestExport(t *testing.T) {
	env := newQuestionTestEnv(t)
	token, clinicianID := createTestSession(t, env.session)
	answerAll(t, env, token)

	req := httptest.NewRequest("GET", "/session/export", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	env.submit.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Unexpected Content-Type: %q", ct)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "test_dataset_"+clinicianID) {
		t.Errorf("Unexpected Content-Disposition: %q", disposition)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("Export is not valid CSV: %v", err)
	}
	if len(records) != len(env.seq)+1 {
		t.Fatalf("Expected %d CSV lines, got %d", len(env.seq)+1, len(records))
	}
	if records[0][0] != "clinician_id" {
		t.Errorf("Unexpected first header: %q", records[0][0])
	}
	for i, row := range records[1:] {
		if row[0] != clinicianID {
			t.Errorf("Row %d: expected clinician %q, got %q", i, clinicianID, row[0])
		}
	}
}

func TestExportWithoutAnswers(t *testing.T) {
	env := newQuestionTestEnv(t)
	token, _ := createTestSession(t, env.session)

	req := httptest.NewRequest("GET", "/session/export", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	env.submit.Export(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
