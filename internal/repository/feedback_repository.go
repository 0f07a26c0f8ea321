package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

// FeedbackRepository handles report feedback database operations
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create creates a new feedback entry for a report
func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (report_id, reviewer_id, comments)
		VALUES ($1, $2, $3)
		RETURNING feedback_id
	`

	err := r.db.QueryRow(
		query,
		feedback.ReportID,
		feedback.ReviewerID,
		feedback.Comments,
	).Scan(&feedback.ID)

	if err != nil {
		if isUniqueViolation(err, "unique_feedback") {
			return ErrFeedbackExists
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// ExistsForReport reports whether the report already has a feedback entry
func (r *FeedbackRepository) ExistsForReport(reportID uint) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM feedback WHERE report_id = $1)`

	var exists bool
	if err := r.db.QueryRow(query, reportID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check feedback: %w", err)
	}

	return exists, nil
}
