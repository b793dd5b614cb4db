package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"oneclarity/internal/model"
	"oneclarity/internal/service"
)

// TutorHandler handles the ask, quiz and answer submission endpoints
type TutorHandler struct {
	tutorSvc *service.TutorService
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(tutorSvc *service.TutorService) *TutorHandler {
	return &TutorHandler{tutorSvc: tutorSvc}
}

// Ask handles GET /v1/ask?studentId=...&query=...[&topic=...]
func (h *TutorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	query := r.URL.Query().Get("query")
	if studentID == "" || query == "" {
		writeError(w, http.StatusBadRequest, "studentId and query are required")
		return
	}

	resp, err := h.tutorSvc.Ask(r.Context(), &model.AskRequest{
		StudentID: studentID,
		Query:     query,
		Topic:     r.URL.Query().Get("topic"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Quiz handles GET /v1/quiz?studentId=...&topic=...[&difficulty=...]
func (h *TutorHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	topic := r.URL.Query().Get("topic")
	if studentID == "" || topic == "" {
		writeError(w, http.StatusBadRequest, "studentId and topic are required")
		return
	}

	resp, err := h.tutorSvc.Quiz(r.Context(), studentID, topic, r.URL.Query().Get("difficulty"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /v1/answers
func (h *TutorHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InteractionID == 0 {
		writeError(w, http.StatusBadRequest, "interactionId is required")
		return
	}

	resp, err := h.tutorSvc.SubmitAnswer(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps core errors to HTTP statuses. Only invalid
// topics and difficulties are client errors; unknown interactions are
// 404; everything else is internal.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidTopic), errors.Is(err, model.ErrInvalidDifficulty):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrInteractionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrDuplicateStudent):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
