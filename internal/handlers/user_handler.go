package handlers

import (
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/repository"
	"luct-reporting/internal/service"
)

// UserHandler handles lecturer directory requests
type UserHandler struct {
	userRepo     *repository.UserRepository
	classService *service.ClassService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo *repository.UserRepository, classService *service.ClassService) *UserHandler {
	return &UserHandler{userRepo: userRepo, classService: classService}
}

// Lecturers returns all users holding the Lecturer role
// @Summary List lecturers
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Lecturers"
// @Router /users/lecturers [get]
func (h *UserHandler) Lecturers(w http.ResponseWriter, r *http.Request) {
	lecturers, err := h.userRepo.ListLecturers()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"lecturers": lecturers,
	})
}

// Schedule returns the classes taught by a lecturer
// @Summary Get a lecturer's teaching schedule
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecturer ID"
// @Success 200 {object} map[string]interface{} "Classes"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Lecturer not found"
// @Router /lecturers/{id}/schedule [get]
func (h *UserHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	lecturerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	classes, err := h.classService.Schedule(claims, lecturerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"classes": classes,
	})
}
