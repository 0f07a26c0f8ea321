package service

import (
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// MonitoringSummary is the role-scoped aggregate view served to reviewers,
// leaders, and individual users.
type MonitoringSummary struct {
	Totals     *repository.DashboardTotals   `json:"totals,omitempty"`
	Attendance []repository.ClassAttendance  `json:"attendance,omitempty"`
	Lecturers  []repository.LecturerActivity `json:"lecturers,omitempty"`
	Courses    []repository.CourseEnrollment `json:"courses,omitempty"`
}

// AnalyticsService serves dashboard totals and monitoring aggregates.
type AnalyticsService struct {
	analyticsRepo *repository.AnalyticsRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// Dashboard returns system-wide entity counts.
func (s *AnalyticsService) Dashboard() (*repository.DashboardTotals, error) {
	totals, err := s.analyticsRepo.Totals()
	if err != nil {
		return nil, fmt.Errorf("loading totals: %w", err)
	}
	return totals, nil
}

// Monitoring returns aggregates scoped to the caller's role: students and
// lecturers see attendance for their own classes, reviewers see lecturer
// activity, leaders additionally see enrollment by course.
func (s *AnalyticsService) Monitoring(claims *auth.Claims) (*MonitoringSummary, error) {
	summary := &MonitoringSummary{}

	switch claims.Role {
	case models.RoleStudent:
		attendance, err := s.analyticsRepo.AttendanceForStudent(claims.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading attendance: %w", err)
		}
		summary.Attendance = attendance

	case models.RoleLecturer:
		attendance, err := s.analyticsRepo.AttendanceForLecturer(claims.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading attendance: %w", err)
		}
		summary.Attendance = attendance

	case models.RolePrincipalLecturer:
		lecturers, err := s.analyticsRepo.LecturerActivitySummary()
		if err != nil {
			return nil, fmt.Errorf("loading lecturer activity: %w", err)
		}
		summary.Lecturers = lecturers

	case models.RoleProgramLeader:
		totals, err := s.analyticsRepo.Totals()
		if err != nil {
			return nil, fmt.Errorf("loading totals: %w", err)
		}
		summary.Totals = totals

		lecturers, err := s.analyticsRepo.LecturerActivitySummary()
		if err != nil {
			return nil, fmt.Errorf("loading lecturer activity: %w", err)
		}
		summary.Lecturers = lecturers

		courses, err := s.analyticsRepo.EnrollmentByCourse(claims.UserID)
		if err != nil {
			return nil, fmt.Errorf("loading course enrollment: %w", err)
		}
		summary.Courses = courses

	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}

	return summary, nil
}
