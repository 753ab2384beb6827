// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/oct-rank/cliparse"
	"github.com/danielhkuo/oct-rank/middleware"
	"github.com/danielhkuo/oct-rank/models"
	"github.com/danielhkuo/oct-rank/pipeline"
	"github.com/danielhkuo/oct-rank/ranking"
	"github.com/danielhkuo/oct-rank/session"
)

type QuestionHandler struct {
	sessions *session.Manager
	pipe     *pipeline.Pipeline
	seq      []int
	cfg      cliparse.Config
}

func NewQuestionHandler(sessions *session.Manager, pipe *pipeline.Pipeline, seq []int, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{sessions: sessions, pipe: pipe, seq: seq, cfg: cfg}
}

// List handles GET /session/questions
// Returns the fixed question sequence with answered flags, for the
// navigation strip.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}

	rec := session.LoadRecord(st)
	out := make([]models.QuestionSummary, len(h.seq))
	for i, imageID := range h.seq {
		out[i] = models.QuestionSummary{
			ImageID:  imageID,
			Index:    i,
			Answered: rec.Answered(imageID),
		}
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

// Get handles GET /session/questions/{image}
// Returns the question payload with the live ranking state, creating it
// on first visit (prior ranking adopted if the question was already
// answered, uniform shuffle otherwise).
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}
	imageID, index, ok := h.questionParam(w, r)
	if !ok {
		return
	}

	state := h.liveState(st, imageID)
	middleware.JSONResponse(w, http.StatusOK, h.view(st, state, imageID, index))
}

// Move handles POST /session/questions/{image}/move (drag reorder)
func (h *QuestionHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(state *ranking.State, r *http.Request) error {
		var req models.MoveRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return errBadJSON
		}
		return state.MoveToPosition(req.Label, req.TargetIndex)
	})
}

// Tap handles POST /session/questions/{image}/swap (tap-to-swap)
func (h *QuestionHandler) Tap(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(state *ranking.State, r *http.Request) error {
		var req models.TapRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return errBadJSON
		}
		return state.Tap(req.Index)
	})
}

// Rank handles POST /session/questions/{image}/rank (numeric buttons)
func (h *QuestionHandler) Rank(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(state *ranking.State, r *http.Request) error {
		var req models.RankRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return errBadJSON
		}
		return state.AssignRank(req.Label, req.Rank)
	})
}

// Submit handles POST /session/questions/{image}/submit
// Snapshots the completed ranking and reports the next unanswered
// question.
func (h *QuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}
	imageID, _, ok := h.questionParam(w, r)
	if !ok {
		return
	}

	state := h.liveState(st, imageID)
	if err := h.pipe.SubmitQuestion(st, imageID, state); err != nil {
		if errors.Is(err, pipeline.ErrIncomplete) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Every image must be ranked before submitting")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save ranking")
		return
	}

	rec := session.LoadRecord(st)
	next := -1
	for i, id := range h.seq {
		if !rec.Answered(id) {
			next = i
			break
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitQuestionResponse{
		ImageID:   imageID,
		Answered:  len(rec.AnsweredOrder),
		Total:     len(h.seq),
		NextIndex: next,
		Message:   "Ranking saved",
	})
}

// Practice handles GET /practice
// A throwaway question on a fixed image so raters can try the interface.
// Nothing about it is ever recorded.
func (h *QuestionHandler) Practice(w http.ResponseWriter, r *http.Request) {
	state := ranking.New(models.Models, nil)
	view := models.QuestionView{
		ImageID:       models.PracticeImage,
		Index:         0,
		Total:         len(h.seq),
		Practice:      true,
		InputImageURL: models.InputImageURL(models.PracticeImage),
		Items:         buildItems(state, models.PracticeImage),
		IsComplete:    state.IsComplete(),
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

var errBadJSON = errors.New("invalid JSON body")

// mutate runs one ranking-state operation for a question and returns the
// updated view.
func (h *QuestionHandler) mutate(w http.ResponseWriter, r *http.Request,
	op func(*ranking.State, *http.Request) error) {

	st, ok := requireSession(h.sessions, w, r)
	if !ok {
		return
	}
	imageID, index, ok := h.questionParam(w, r)
	if !ok {
		return
	}

	state := h.liveState(st, imageID)
	if err := op(state, r); err != nil {
		switch {
		case errors.Is(err, errBadJSON):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		case errors.Is(err, ranking.ErrUnknownLabel),
			errors.Is(err, ranking.ErrIndexRange),
			errors.Is(err, ranking.ErrRankRange):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update ranking")
		}
		return
	}

	session.SaveLiveState(st, imageID, state)
	middleware.JSONResponse(w, http.StatusOK, h.view(st, state, imageID, index))
}

// liveState restores the in-progress state for a question, or creates it:
// a previously submitted ranking is adopted exactly, otherwise the
// candidates are shuffled fresh.
func (h *QuestionHandler) liveState(st session.Store, imageID int) *ranking.State {
	if state := session.LoadLiveState(st, imageID); state != nil {
		return state
	}

	rec := session.LoadRecord(st)
	state := ranking.New(models.Models, rec.Rankings[imageID])
	session.SaveLiveState(st, imageID, state)
	return state
}

func (h *QuestionHandler) view(st session.Store, state *ranking.State, imageID, index int) models.QuestionView {
	rec := session.LoadRecord(st)
	return models.QuestionView{
		ImageID:       imageID,
		Index:         index,
		Total:         len(h.seq),
		Answered:      rec.Answered(imageID),
		InputImageURL: models.InputImageURL(imageID),
		Items:         buildItems(state, imageID),
		Selected:      state.Selected,
		IsComplete:    state.IsComplete(),
	}
}

func buildItems(state *ranking.State, imageID int) []models.Item {
	items := make([]models.Item, len(state.Order))
	for i, label := range state.Order {
		items[i] = models.Item{
			Label:    label,
			Alias:    state.Aliases[label],
			Position: i,
			Rank:     state.Rank(label),
			ImageURL: models.EnhancedImageURL(label, imageID),
		}
	}
	return items
}

// questionParam parses {image} and verifies it belongs to the sequence.
func (h *QuestionHandler) questionParam(w http.ResponseWriter, r *http.Request) (imageID, index int, ok bool) {
	raw := r.PathValue("image")
	imageID, err := strconv.Atoi(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image must be numeric")
		return 0, 0, false
	}

	for i, id := range h.seq {
		if id == imageID {
			return imageID, i, true
		}
	}

	middleware.ErrorResponse(w, http.StatusNotFound, "Image is not part of this evaluation")
	return 0, 0, false
}
