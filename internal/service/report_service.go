package service

import (
	"errors"
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// ReportService handles lecture report submission, review feedback, and
// role-scoped listing.
type ReportService struct {
	reportRepo   *repository.ReportRepository
	feedbackRepo *repository.FeedbackRepository
	classRepo    *repository.ClassRepository
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo *repository.ReportRepository,
	feedbackRepo *repository.FeedbackRepository,
	classRepo *repository.ClassRepository,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		feedbackRepo: feedbackRepo,
		classRepo:    classRepo,
	}
}

// Submit records a lecture report. Lecturers may only report on classes
// assigned to them, and attendance cannot exceed the class enrollment.
func (s *ReportService) Submit(claims *auth.Claims, report *models.Report) error {
	class, err := s.classRepo.GetByID(report.ClassID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return apperr.New(apperr.NotFound, "class not found")
		}
		return fmt.Errorf("finding class: %w", err)
	}

	if class.LecturerID != claims.UserID {
		return apperr.New(apperr.Forbidden, "you are not assigned to this class")
	}

	if report.ActualStudentsPresent < 0 {
		return apperr.New(apperr.Validation, "students present cannot be negative")
	}
	if report.ActualStudentsPresent > class.RegisteredStudents {
		return apperr.New(apperr.Validation, "students present cannot exceed registered students")
	}

	report.LecturerID = claims.UserID
	if err := s.reportRepo.Create(report); err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	return nil
}

// List returns the reports visible to the caller. Lecturers see only their
// own reports, reviewers and leaders see everything.
func (s *ReportService) List(claims *auth.Claims) ([]models.Report, error) {
	switch claims.Role {
	case models.RoleLecturer:
		return s.reportRepo.ListForLecturer(claims.UserID)
	case models.RolePrincipalLecturer, models.RoleProgramLeader:
		return s.reportRepo.ListAll()
	default:
		return nil, apperr.New(apperr.Forbidden, "access denied")
	}
}

// AttachFeedback records a reviewer's comments on a report. Each report
// carries at most one feedback entry.
func (s *ReportService) AttachFeedback(claims *auth.Claims, reportID uint, comments string) (*models.Feedback, error) {
	if _, err := s.reportRepo.GetByID(reportID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperr.New(apperr.NotFound, "report not found")
		}
		return nil, fmt.Errorf("finding report: %w", err)
	}

	exists, err := s.feedbackRepo.ExistsForReport(reportID)
	if err != nil {
		return nil, fmt.Errorf("checking feedback: %w", err)
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "report already has feedback")
	}

	feedback := &models.Feedback{
		ReportID:   reportID,
		ReviewerID: claims.UserID,
		Comments:   comments,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		if errors.Is(err, repository.ErrFeedbackExists) {
			return nil, apperr.Wrap(apperr.Conflict, "report already has feedback", err)
		}
		return nil, fmt.Errorf("creating feedback: %w", err)
	}
	return feedback, nil
}

// Delete removes a report together with any feedback attached to it.
func (s *ReportService) Delete(reportID uint) error {
	if err := s.reportRepo.Delete(reportID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return apperr.Wrap(apperr.NotFound, "report not found", err)
		}
		return fmt.Errorf("deleting report: %w", err)
	}
	return nil
}
