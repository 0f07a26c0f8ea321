package service

import (
	"errors"
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// CourseService handles course creation and role-scoped listing.
type CourseService struct {
	courseRepo  *repository.CourseRepository
	facultyRepo *repository.FacultyRepository
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo *repository.CourseRepository,
	facultyRepo *repository.FacultyRepository,
) *CourseService {
	return &CourseService{courseRepo: courseRepo, facultyRepo: facultyRepo}
}

// Create adds a course owned by the calling program leader. The course code
// must be unique across all faculties.
func (s *CourseService) Create(claims *auth.Claims, course *models.Course) error {
	if _, err := s.facultyRepo.GetByID(course.FacultyID); err != nil {
		if errors.Is(err, repository.ErrFacultyNotFound) {
			return apperr.New(apperr.Validation, "faculty does not exist")
		}
		return fmt.Errorf("checking faculty: %w", err)
	}

	leaderID := claims.UserID
	course.ProgramLeaderID = &leaderID

	if err := s.courseRepo.Create(course); err != nil {
		if errors.Is(err, repository.ErrCourseExists) {
			return apperr.New(apperr.Conflict, "course code already exists")
		}
		return fmt.Errorf("creating course: %w", err)
	}
	return nil
}

// List returns the courses visible to the caller. Program leaders see the
// courses they own, everyone else sees the full catalogue.
func (s *CourseService) List(claims *auth.Claims) ([]models.Course, error) {
	switch claims.Role {
	case models.RoleProgramLeader:
		return s.courseRepo.ListByProgramLeader(claims.UserID)
	case models.RoleStudent, models.RoleLecturer, models.RolePrincipalLecturer:
		return s.courseRepo.ListAll()
	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
}
