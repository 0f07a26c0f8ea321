package handlers

import (
	"log/slog"
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/service"
)

// GradeHandler handles grade requests
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// CreateGradeRequest represents a grade submission
type CreateGradeRequest struct {
	StudentID   uint    `json:"student_id" validate:"required"`
	ClassID     uint    `json:"class_id" validate:"required"`
	Grade       float64 `json:"grade" validate:"min=0,max=100"`
	GradeType   string  `json:"grade_type" validate:"required"`
	Description string  `json:"description"`
}

// List returns the grades visible to the caller
// @Summary List grades
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Grades"
// @Router /grades [get]
func (h *GradeHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	grades, err := h.gradeService.List(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"grades":  grades,
	})
}

// Create records a grade for a student enrolled in the caller's class
// @Summary Record a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGradeRequest true "Grade details"
// @Success 201 {object} map[string]interface{} "Grade recorded"
// @Failure 400 {object} map[string]string "Invalid grade or student not enrolled"
// @Failure 403 {object} map[string]string "Not assigned to this class"
// @Router /grades [post]
func (h *GradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req CreateGradeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	grade := &models.Grade{
		StudentID:   req.StudentID,
		ClassID:     req.ClassID,
		Grade:       req.Grade,
		GradeType:   models.GradeType(req.GradeType),
		Description: req.Description,
	}
	if err := h.gradeService.Submit(claims, grade); err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Grade recorded", "grade_id", grade.ID, "student_id", grade.StudentID, "class_id", grade.ClassID)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"grade":   grade,
	})
}
