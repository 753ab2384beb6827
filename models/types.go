package models

import "time"

// Experience tier constants
const (
	ExperienceJunior = "less_than_5"
	ExperienceSenior = "5_or_more"
)

// Enhancement model labels, in canonical order
var Models = []string{"DDPM", "VQGAN", "UNET", "Pix2Pix", "BBDM"}

// ModelCount is the number of candidates ranked per question
const ModelCount = 5

// PracticeImage is the input image used for the practice question
const PracticeImage = 1

// Request types

type LoginRequest struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Experience  string `json:"experience"`
}

type MoveRequest struct {
	Label       string `json:"label"`
	TargetIndex int    `json:"target_index"`
}

type TapRequest struct {
	Index int `json:"index"`
}

type RankRequest struct {
	Label string `json:"label"`
	Rank  int    `json:"rank"`
}

// Response types

type LoginResponse struct {
	SessionToken string `json:"session_token"`
	ClinicianID  string `json:"clinician_id"`
}

type SessionResponse struct {
	ClinicianID string `json:"clinician_id"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Experience  string `json:"experience"`
	CreatedAt   string `json:"created_at"`
	Answered    int    `json:"answered"`
	Total       int    `json:"total"`
	StoreError  string `json:"store_error,omitempty"`
}

type SubmitQuestionResponse struct {
	ImageID   int    `json:"image_id"`
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
	NextIndex int    `json:"next_index"` // -1 when every question is answered
	Message   string `json:"message"`
}

type FinalizeResponse struct {
	Saved   int    `json:"saved"`
	Message string `json:"message"`
}

// Item is one ranking candidate as displayed to the rater.
type Item struct {
	Label    string `json:"label"`
	Alias    string `json:"alias"`
	Position int    `json:"position"`
	Rank     int    `json:"rank,omitempty"` // 0 = unassigned
	ImageURL string `json:"image_url"`
}

// QuestionView is the payload for a single evaluation question.
type QuestionView struct {
	ImageID       int    `json:"image_id"`
	Index         int    `json:"index"`
	Total         int    `json:"total"`
	Answered      bool   `json:"answered"`
	Practice      bool   `json:"practice,omitempty"`
	InputImageURL string `json:"input_image_url"`
	Items         []Item `json:"items"`
	Selected      *int   `json:"selected,omitempty"` // pending tap-to-swap index
	IsComplete    bool   `json:"is_complete"`
}

type QuestionSummary struct {
	ImageID  int  `json:"image_id"`
	Index    int  `json:"index"`
	Answered bool `json:"answered"`
}

// Domain types

type Clinician struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	Experience  string    `json:"experience"`
	CreatedAt   time.Time `json:"created_at"`
}

// RankingRow is one persisted judgment: the canonical best-to-worst order
// plus the order the candidates were shown in (for position-bias analysis).
type RankingRow struct {
	ClinicianID   string    `json:"clinician_id"`
	ImageID       int       `json:"image_id"`
	ModelRankings []string  `json:"model_rankings"`
	ModelSequence []string  `json:"model_sequence"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SessionRecord is one rater's full local session: identity plus every
// answered question, in the order they were answered.
type SessionRecord struct {
	Clinician     Clinician
	Rankings      map[int][]string // image_id -> best-to-worst labels
	ShownOrders   map[int][]string // image_id -> as-displayed labels
	AnsweredOrder []int            // image_ids in answer order
	StoreError    string
}

// Answered reports whether the record holds a ranking for the image.
func (r *SessionRecord) Answered(imageID int) bool {
	_, ok := r.Rankings[imageID]
	return ok
}

// Admin reporting types. Timestamps stay as the stored RFC 3339 strings.

type ClinicianListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Experience  string `json:"experience"`
	CreatedAt   string `json:"created_at"`
}

type RankingListItem struct {
	ClinicianID   string   `json:"clinician_id"`
	ImageID       int      `json:"image_id"`
	ModelRankings []string `json:"model_rankings"`
	ModelSequence []string `json:"model_sequence"`
	SubmittedAt   string   `json:"submitted_at"`
}

type AdminStats struct {
	Clinicians       int `json:"clinicians"`
	Rankings         int `json:"rankings"`
	ExperienceJunior int `json:"experience_junior"`
	ExperienceSenior int `json:"experience_senior"`
	ExperienceOther  int `json:"experience_other"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
