package service

import (
	"errors"
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// ClassService handles class scheduling and role-scoped listing.
type ClassService struct {
	classRepo  *repository.ClassRepository
	courseRepo *repository.CourseRepository
	userRepo   *repository.UserRepository
}

// NewClassService creates a new class service
func NewClassService(
	classRepo *repository.ClassRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
) *ClassService {
	return &ClassService{classRepo: classRepo, courseRepo: courseRepo, userRepo: userRepo}
}

// Create schedules a class. The referenced course must exist and the assigned
// lecturer must hold the Lecturer role.
func (s *ClassService) Create(class *models.Class) error {
	if _, err := s.courseRepo.GetByID(class.CourseID); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return apperr.New(apperr.Validation, "course does not exist")
		}
		return fmt.Errorf("checking course: %w", err)
	}

	lecturer, err := s.userRepo.GetByID(class.LecturerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.New(apperr.Validation, "lecturer does not exist")
		}
		return fmt.Errorf("checking lecturer: %w", err)
	}
	if lecturer.Role != models.RoleLecturer {
		return apperr.New(apperr.Validation, "assigned user is not a lecturer")
	}

	if err := s.classRepo.Create(class); err != nil {
		return fmt.Errorf("creating class: %w", err)
	}
	return nil
}

// List returns the classes visible to the caller: students see their enrolled
// classes, lecturers the classes they teach, reviewers and leaders everything.
func (s *ClassService) List(claims *auth.Claims) ([]models.Class, error) {
	switch claims.Role {
	case models.RoleStudent:
		return s.classRepo.ListForStudent(claims.UserID)
	case models.RoleLecturer:
		return s.classRepo.ListForLecturer(claims.UserID)
	case models.RolePrincipalLecturer, models.RoleProgramLeader:
		return s.classRepo.ListAll()
	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
}

// Available returns classes the calling student has not yet enrolled in.
func (s *ClassService) Available(claims *auth.Claims) ([]models.Class, error) {
	return s.classRepo.ListAvailableForStudent(claims.UserID)
}

// Roster returns the students enrolled in a class. Lecturers may only view
// rosters for classes they teach.
func (s *ClassService) Roster(claims *auth.Claims, classID uint) ([]models.User, error) {
	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return nil, apperr.New(apperr.NotFound, "class not found")
		}
		return nil, fmt.Errorf("finding class: %w", err)
	}

	if claims.Role == models.RoleLecturer && class.LecturerID != claims.UserID {
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}

	return s.classRepo.Roster(classID)
}

// Schedule returns the classes taught by a lecturer. Lecturers may only view
// their own schedule; reviewers and leaders may view lecturers within their
// own faculty.
func (s *ClassService) Schedule(claims *auth.Claims, lecturerID uint) ([]models.Class, error) {
	if claims.Role == models.RoleLecturer && claims.UserID != lecturerID {
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}

	lecturer, err := s.userRepo.GetByID(lecturerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.NotFound, "lecturer not found")
		}
		return nil, fmt.Errorf("finding lecturer: %w", err)
	}
	if lecturer.Role != models.RoleLecturer {
		return nil, apperr.New(apperr.NotFound, "lecturer not found")
	}

	if claims.Role.IsReviewer() && !sameFaculty(claims.FacultyID, lecturer.FacultyID) {
		return nil, apperr.New(apperr.Forbidden, "lecturer is outside your faculty")
	}

	return s.classRepo.ListForLecturer(lecturerID)
}

// sameFaculty reports whether both users belong to the same known faculty.
// A missing faculty on either side never grants access.
func sameFaculty(a, b *uint) bool {
	return a != nil && b != nil && *a == *b
}
