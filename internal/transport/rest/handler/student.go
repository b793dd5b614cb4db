package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"oneclarity/internal/model"
	"oneclarity/internal/repository"
)

// StudentHandler handles student registration
type StudentHandler struct {
	studentRepo repository.StudentRepo
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentRepo repository.StudentRepo) *StudentHandler {
	return &StudentHandler{studentRepo: studentRepo}
}

// RegisterRequest is the request body for student registration. An empty
// studentId gets a generated one.
type RegisterRequest struct {
	StudentID string `json:"studentId,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Register handles POST /v1/students
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StudentID == "" {
		req.StudentID = "s_" + uuid.New().String()[:8]
	}

	student := &model.Student{
		StudentID: req.StudentID,
		Name:      req.Name,
	}
	if err := h.studentRepo.Register(r.Context(), student); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}
