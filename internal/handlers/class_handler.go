package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/service"
)

// ClassHandler handles class requests
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// CreateClassRequest represents a class creation request
type CreateClassRequest struct {
	Name          string     `json:"class_name" validate:"required"`
	CourseID      uint       `json:"course_id" validate:"required"`
	LecturerID    uint       `json:"lecturer_id" validate:"required"`
	Venue         string     `json:"venue"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// List returns the classes visible to the caller
// @Summary List classes
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Classes"
// @Router /classes [get]
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	classes, err := h.classService.List(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"classes": classes,
	})
}

// Create schedules a class
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateClassRequest true "Class details"
// @Success 201 {object} map[string]interface{} "Class created"
// @Failure 400 {object} map[string]string "Invalid course or lecturer"
// @Router /classes [post]
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClassRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	class := &models.Class{
		Name:          req.Name,
		CourseID:      req.CourseID,
		LecturerID:    req.LecturerID,
		Venue:         req.Venue,
		ScheduledTime: req.ScheduledTime,
	}
	if err := h.classService.Create(class); err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Class created", "class_id", class.ID, "course_id", class.CourseID, "lecturer_id", class.LecturerID)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"class":   class,
	})
}

// Available returns classes the calling student has not yet enrolled in
// @Summary List classes available for enrollment
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Classes"
// @Router /classes/available [get]
func (h *ClassHandler) Available(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	classes, err := h.classService.Available(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"classes": classes,
	})
}

// Roster returns the students enrolled in a class
// @Summary List students enrolled in a class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} map[string]interface{} "Students"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Class not found"
// @Router /classes/{id}/students [get]
func (h *ClassHandler) Roster(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	classID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	students, err := h.classService.Roster(claims, classID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"students": students,
	})
}
