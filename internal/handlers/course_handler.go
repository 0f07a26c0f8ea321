package handlers

import (
	"log/slog"
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/service"
)

// CourseHandler handles course requests
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Name      string `json:"course_name" validate:"required"`
	Code      string `json:"course_code" validate:"required"`
	FacultyID uint   `json:"faculty_id" validate:"required"`
}

// List returns the courses visible to the caller
// @Summary List courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Courses"
// @Router /courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	courses, err := h.courseService.List(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"courses": courses,
	})
}

// Create adds a course owned by the calling program leader
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCourseRequest true "Course details"
// @Success 201 {object} map[string]interface{} "Course created"
// @Failure 409 {object} map[string]string "Course code already exists"
// @Router /courses [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req CreateCourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course := &models.Course{
		Name:      req.Name,
		Code:      req.Code,
		FacultyID: req.FacultyID,
	}
	if err := h.courseService.Create(claims, course); err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Course created", "course_id", course.ID, "code", course.Code, "leader_id", claims.UserID)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"course":  course,
	})
}
