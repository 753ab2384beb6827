package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/oct-rank/cliparse"
	"github.com/danielhkuo/oct-rank/db"
	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/session"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection so every query hits the same in-memory instance
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

func getTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3418,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		AdminPassword: "test-admin-password",
		Dataset:       "test_dataset",
	}
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// createTestSession registers a rater through the Login handler and
// returns the session token and clinician ID.
func createTestSession(t *testing.T, h *SessionHandler) (token, clinicianID string) {
	t.Helper()

	req := jsonRequest(t, "POST", "/session", models.LoginRequest{
		Name:        "Dr. Test",
		Institution: "Test Hospital",
		Experience:  models.ExperienceSenior,
	})
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	return resp.SessionToken, resp.ClinicianID
}

func TestLogin(t *testing.T) {
	seq := []int{10, 20, 30}
	cfg := getTestConfig()

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name: "valid login",
			body: models.LoginRequest{
				Name:        "Dr. Rossi",
				Institution: "Ospedale San Raffaele",
				Experience:  models.ExperienceJunior,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "anonymous login with experience only",
			body: models.LoginRequest{
				Experience: models.ExperienceSenior,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing experience",
			body: models.LoginRequest{
				Name: "Dr. Rossi",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unrecognized experience value",
			body: models.LoginRequest{
				Experience: "veteran",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSessionHandler(session.NewManager(), seq, cfg)

			var req *http.Request
			if s, ok := tt.body.(string); ok {
				req = httptest.NewRequest("POST", "/session", bytes.NewReader([]byte(s)))
			} else {
				req = jsonRequest(t, "POST", "/session", tt.body)
			}
			w := httptest.NewRecorder()
			handler.Login(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp models.LoginResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.SessionToken == "" {
					t.Error("Expected non-empty session_token")
				}
				if len(resp.ClinicianID) != len("clinician_")+10 {
					t.Errorf("Unexpected clinician_id format: %q", resp.ClinicianID)
				}
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	seq := []int{10, 20, 30}
	sessions := session.NewManager()
	handler := NewSessionHandler(sessions, seq, getTestConfig())

	token, clinicianID := createTestSession(t, handler)

	req := httptest.NewRequest("GET", "/session", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ClinicianID != clinicianID {
		t.Errorf("Expected clinician_id %q, got %q", clinicianID, resp.ClinicianID)
	}
	if resp.Name != "Dr. Test" {
		t.Errorf("Expected name 'Dr. Test', got %q", resp.Name)
	}
	if resp.Answered != 0 {
		t.Errorf("Expected 0 answered, got %d", resp.Answered)
	}
	if resp.Total != len(seq) {
		t.Errorf("Expected total %d, got %d", len(seq), resp.Total)
	}
}

func TestGetSessionUnauthorized(t *testing.T) {
	handler := NewSessionHandler(session.NewManager(), []int{10}, getTestConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "unknown token", token: "not-a-real-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/session", nil)
			if tt.token != "" {
				req.Header.Set("X-Session-Token", tt.token)
			}
			w := httptest.NewRecorder()
			handler.Get(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}
		})
	}
}
