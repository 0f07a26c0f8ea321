package service

import (
	"errors"
	"fmt"
	"time"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// GradeService handles grade submission and role-scoped listing.
type GradeService struct {
	gradeRepo      *repository.GradeRepository
	classRepo      *repository.ClassRepository
	enrollmentRepo *repository.EnrollmentRepository
}

// NewGradeService creates a new grade service
func NewGradeService(
	gradeRepo *repository.GradeRepository,
	classRepo *repository.ClassRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *GradeService {
	return &GradeService{
		gradeRepo:      gradeRepo,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Submit records a grade. The calling lecturer must teach the class and the
// graded student must be enrolled in it.
func (s *GradeService) Submit(claims *auth.Claims, grade *models.Grade) error {
	if grade.Grade < 0 || grade.Grade > 100 {
		return apperr.New(apperr.Validation, "grade must be between 0 and 100")
	}
	if !grade.GradeType.Valid() {
		return apperr.New(apperr.Validation, "invalid grade type")
	}

	class, err := s.classRepo.GetByID(grade.ClassID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return apperr.New(apperr.NotFound, "class not found")
		}
		return fmt.Errorf("finding class: %w", err)
	}
	if class.LecturerID != claims.UserID {
		return apperr.New(apperr.Forbidden, "you are not assigned to this class")
	}

	enrolled, err := s.enrollmentRepo.Exists(grade.StudentID, grade.ClassID)
	if err != nil {
		return fmt.Errorf("checking enrollment: %w", err)
	}
	if !enrolled {
		return apperr.New(apperr.Validation, "student is not enrolled in this class")
	}

	grade.LecturerID = claims.UserID
	if grade.DateGiven.IsZero() {
		grade.DateGiven = time.Now()
	}
	if err := s.gradeRepo.Create(grade); err != nil {
		return fmt.Errorf("creating grade: %w", err)
	}
	return nil
}

// List returns the grades visible to the caller: students see their own,
// lecturers the grades they issued, leaders everything.
func (s *GradeService) List(claims *auth.Claims) ([]models.Grade, error) {
	switch claims.Role {
	case models.RoleStudent:
		return s.gradeRepo.ListForStudent(claims.UserID)
	case models.RoleLecturer:
		return s.gradeRepo.ListForLecturer(claims.UserID)
	case models.RolePrincipalLecturer, models.RoleProgramLeader:
		return s.gradeRepo.ListAll()
	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
}
