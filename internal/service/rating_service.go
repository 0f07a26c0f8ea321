package service

import (
	"errors"
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// RatingService handles lecturer ratings and role-scoped listing.
type RatingService struct {
	ratingRepo *repository.RatingRepository
	userRepo   *repository.UserRepository
}

// NewRatingService creates a new rating service
func NewRatingService(
	ratingRepo *repository.RatingRepository,
	userRepo *repository.UserRepository,
) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, userRepo: userRepo}
}

// Submit records a rating for a lecturer, replacing any earlier rating the
// caller gave the same lecturer. Lecturers cannot rate themselves.
func (s *RatingService) Submit(claims *auth.Claims, rating *models.Rating) error {
	if rating.Rating < 1 || rating.Rating > 5 {
		return apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}

	target, err := s.userRepo.GetByID(rating.LecturerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.New(apperr.NotFound, "lecturer not found")
		}
		return fmt.Errorf("finding lecturer: %w", err)
	}
	if target.Role != models.RoleLecturer {
		return apperr.New(apperr.Validation, "rated user is not a lecturer")
	}
	if target.ID == claims.UserID {
		return apperr.New(apperr.Validation, "you cannot rate yourself")
	}

	rating.UserID = claims.UserID
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return fmt.Errorf("saving rating: %w", err)
	}
	return nil
}

// List returns the ratings visible to the caller: students see the ratings
// they submitted, lecturers the ratings they received, reviewers and leaders
// everything.
func (s *RatingService) List(claims *auth.Claims) ([]models.Rating, error) {
	switch claims.Role {
	case models.RoleStudent:
		return s.ratingRepo.ListByRater(claims.UserID)
	case models.RoleLecturer:
		return s.ratingRepo.ListForLecturer(claims.UserID)
	case models.RolePrincipalLecturer, models.RoleProgramLeader:
		return s.ratingRepo.ListAll()
	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
}
