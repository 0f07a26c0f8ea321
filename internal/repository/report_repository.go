package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"luct-reporting/internal/models"
)

const reportColumns = `
	r.report_id, r.class_id, cl.class_name, c.course_name, c.course_code,
	r.lecturer_id, u.full_name AS lecturer_name, r.week_of_reporting,
	r.date_of_lecture, r.topic_taught, r.learning_outcomes, r.recommendations,
	r.actual_students_present, r.created_at, f.feedback_id, f.comments AS feedback_comments
	FROM reports r
	LEFT JOIN classes cl ON r.class_id = cl.class_id
	LEFT JOIN courses c ON cl.course_id = c.course_id
	LEFT JOIN users u ON r.lecturer_id = u.user_id
	LEFT JOIN feedback f ON r.report_id = f.report_id
`

// ReportRepository handles lecture report database operations
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report
func (r *ReportRepository) Create(report *models.Report) error {
	query := `
		INSERT INTO reports (class_id, lecturer_id, week_of_reporting, date_of_lecture,
			topic_taught, learning_outcomes, recommendations, actual_students_present)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING report_id, created_at
	`

	err := r.db.QueryRow(
		query,
		report.ClassID,
		report.LecturerID,
		report.WeekOfReporting,
		report.DateOfLecture,
		report.TopicTaught,
		report.LearningOutcomes,
		report.Recommendations,
		report.ActualStudentsPresent,
	).Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by ID with any attached feedback
func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` WHERE r.report_id = $1`

	report := &models.Report{}
	err := r.db.QueryRow(query, id).Scan(
		&report.ID,
		&report.ClassID,
		&report.ClassName,
		&report.CourseName,
		&report.CourseCode,
		&report.LecturerID,
		&report.LecturerName,
		&report.WeekOfReporting,
		&report.DateOfLecture,
		&report.TopicTaught,
		&report.LearningOutcomes,
		&report.Recommendations,
		&report.ActualStudentsPresent,
		&report.CreatedAt,
		&report.FeedbackID,
		&report.FeedbackComments,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// ListAll retrieves every report joined with class, course, lecturer, and feedback
func (r *ReportRepository) ListAll() ([]models.Report, error) {
	query := `SELECT ` + reportColumns + ` ORDER BY r.report_id`
	return r.list(query)
}

// ListForLecturer retrieves only reports submitted by the given lecturer
func (r *ReportRepository) ListForLecturer(lecturerID uint) ([]models.Report, error) {
	query := `SELECT ` + reportColumns + ` WHERE r.lecturer_id = $1 ORDER BY r.report_id`
	return r.list(query, lecturerID)
}

// Delete removes a report and any feedback attached to it in a single
// transaction. Returns ErrReportNotFound when the id does not resolve.
func (r *ReportRepository) Delete(id uint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("Failed to rollback report delete transaction", "error", err)
		}
	}()

	if _, err := tx.Exec(`DELETE FROM feedback WHERE report_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM reports WHERE report_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	return tx.Commit()
}

func (r *ReportRepository) list(query string, args ...interface{}) ([]models.Report, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var report models.Report
		if err := rows.Scan(
			&report.ID,
			&report.ClassID,
			&report.ClassName,
			&report.CourseName,
			&report.CourseCode,
			&report.LecturerID,
			&report.LecturerName,
			&report.WeekOfReporting,
			&report.DateOfLecture,
			&report.TopicTaught,
			&report.LearningOutcomes,
			&report.Recommendations,
			&report.ActualStudentsPresent,
			&report.CreatedAt,
			&report.FeedbackID,
			&report.FeedbackComments,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
