package service

import (
	"errors"
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// EnrollmentService handles student enrollment and role-scoped listing.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
	classRepo      *repository.ClassRepository
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	classRepo *repository.ClassRepository,
) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo, classRepo: classRepo}
}

// Enroll registers the calling student in a class. Enrolling twice in the
// same class fails with a Conflict error and leaves the student counter
// untouched.
func (s *EnrollmentService) Enroll(claims *auth.Claims, classID uint) (*models.Enrollment, error) {
	if _, err := s.classRepo.GetByID(classID); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return nil, apperr.New(apperr.NotFound, "class not found")
		}
		return nil, fmt.Errorf("finding class: %w", err)
	}

	enrollment := &models.Enrollment{
		StudentID: claims.UserID,
		ClassID:   classID,
	}
	if err := s.enrollmentRepo.Enroll(enrollment); err != nil {
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			return nil, apperr.New(apperr.Conflict, "already enrolled in this class")
		}
		return nil, fmt.Errorf("enrolling student: %w", err)
	}
	return enrollment, nil
}

// List returns the enrollments visible to the caller: students see their own,
// lecturers see enrollments in their classes, leaders see everything.
func (s *EnrollmentService) List(claims *auth.Claims) ([]models.Enrollment, error) {
	switch claims.Role {
	case models.RoleStudent:
		return s.enrollmentRepo.ListForStudent(claims.UserID)
	case models.RoleLecturer:
		return s.enrollmentRepo.ListForLecturer(claims.UserID)
	case models.RolePrincipalLecturer, models.RoleProgramLeader:
		return s.enrollmentRepo.ListAll()
	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
}
