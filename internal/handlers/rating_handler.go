package handlers

import (
	"log/slog"
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/service"
)

// RatingHandler handles lecturer rating requests
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// CreateRatingRequest represents a rating submission
type CreateRatingRequest struct {
	LecturerID uint   `json:"lecturer_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comments   string `json:"comments"`
}

// List returns the ratings visible to the caller
// @Summary List ratings
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Ratings"
// @Router /ratings [get]
func (h *RatingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	ratings, err := h.ratingService.List(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"ratings": ratings,
	})
}

// Create rates a lecturer, replacing any earlier rating by the same caller
// @Summary Rate a lecturer
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRatingRequest true "Rating details"
// @Success 201 {object} map[string]interface{} "Rating saved"
// @Failure 400 {object} map[string]string "Invalid rating"
// @Failure 404 {object} map[string]string "Lecturer not found"
// @Router /ratings [post]
func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req CreateRatingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rating := &models.Rating{
		LecturerID: req.LecturerID,
		Rating:     req.Rating,
		Comments:   req.Comments,
	}
	if err := h.ratingService.Submit(claims, rating); err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("Rating saved", "lecturer_id", rating.LecturerID, "rater_id", claims.UserID, "rating", rating.Rating)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"rating":  rating,
	})
}
