package handlers

import (
	"log/slog"
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/service"
)

// EnrollmentHandler handles enrollment requests
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// EnrollRequest represents an enrollment request
type EnrollRequest struct {
	ClassID uint `json:"class_id" validate:"required"`
}

// Enroll registers the calling student in a class
// @Summary Enroll in a class
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EnrollRequest true "Class to enroll in"
// @Success 201 {object} map[string]interface{} "Enrolled"
// @Failure 404 {object} map[string]string "Class not found"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req EnrollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	enrollment, err := h.enrollmentService.Enroll(claims, req.ClassID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Student enrolled", "student_id", claims.UserID, "class_id", req.ClassID)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"enrollment": enrollment,
	})
}

// List returns the enrollments visible to the caller
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Enrollments"
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	enrollments, err := h.enrollmentService.List(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"enrollments": enrollments,
	})
}
