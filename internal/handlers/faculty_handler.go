package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// FacultyHandler handles faculty requests
type FacultyHandler struct {
	facultyRepo *repository.FacultyRepository
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(facultyRepo *repository.FacultyRepository) *FacultyHandler {
	return &FacultyHandler{facultyRepo: facultyRepo}
}

// CreateFacultyRequest represents a faculty creation request
type CreateFacultyRequest struct {
	Name string `json:"faculty_name" validate:"required"`
}

// List returns all faculties. The endpoint is public so the registration
// form can offer faculty choices before any login.
// @Summary List faculties
// @Tags Faculties
// @Produce json
// @Success 200 {object} map[string]interface{} "Faculties"
// @Router /faculties [get]
func (h *FacultyHandler) List(w http.ResponseWriter, r *http.Request) {
	faculties, err := h.facultyRepo.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"faculties": faculties,
	})
}

// Create adds a faculty
// @Summary Create a faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFacultyRequest true "Faculty details"
// @Success 201 {object} map[string]interface{} "Faculty created"
// @Failure 409 {object} map[string]string "Faculty already exists"
// @Router /faculties [post]
func (h *FacultyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFacultyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	faculty := &models.Faculty{Name: req.Name}
	if err := h.facultyRepo.Create(faculty); err != nil {
		if errors.Is(err, repository.ErrFacultyExists) {
			respondWithError(w, http.StatusConflict, "faculty already exists")
			return
		}
		respondServiceError(w, err)
		return
	}

	slog.Info("Faculty created", "faculty_id", faculty.ID, "name", faculty.Name)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"faculty": faculty,
	})
}
