package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"luct-reporting/internal/models"
)

const enrollmentColumns = `
	se.enrollment_id, se.student_id, s.full_name AS student_name,
	se.class_id, cl.class_name, se.enrollment_date
	FROM student_enrollments se
	LEFT JOIN users s ON se.student_id = s.user_id
	LEFT JOIN classes cl ON se.class_id = cl.class_id
`

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll inserts an enrollment row and increments the class's registered
// student counter in a single transaction, so a crash cannot leave the
// counter out of step with the enrollment rows. A duplicate (student, class)
// pair surfaces as ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Enroll(enrollment *models.Enrollment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin enrollment transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("Failed to rollback enrollment transaction", "error", err)
		}
	}()

	insert := `
		INSERT INTO student_enrollments (student_id, class_id)
		VALUES ($1, $2)
		RETURNING enrollment_id, enrollment_date
	`
	err = tx.QueryRow(insert, enrollment.StudentID, enrollment.ClassID).
		Scan(&enrollment.ID, &enrollment.EnrollmentDate)
	if err != nil {
		if isUniqueViolation(err, "unique_enrollment") {
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	update := `
		UPDATE classes
		SET total_registered_students = total_registered_students + 1
		WHERE class_id = $1
	`
	if _, err := tx.Exec(update, enrollment.ClassID); err != nil {
		return fmt.Errorf("failed to update registered student count: %w", err)
	}

	return tx.Commit()
}

// Exists reports whether the student has an enrollment row for the class
func (r *EnrollmentRepository) Exists(studentID, classID uint) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM student_enrollments WHERE student_id = $1 AND class_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(query, studentID, classID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return exists, nil
}

// ListForStudent retrieves the given student's enrollments
func (r *EnrollmentRepository) ListForStudent(studentID uint) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` WHERE se.student_id = $1 ORDER BY se.enrollment_id`
	return r.list(query, studentID)
}

// ListForLecturer retrieves enrollments in classes taught by the given lecturer
func (r *EnrollmentRepository) ListForLecturer(lecturerID uint) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` WHERE cl.lecturer_id = $1 ORDER BY se.enrollment_id`
	return r.list(query, lecturerID)
}

// ListAll retrieves every enrollment
func (r *EnrollmentRepository) ListAll() ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` ORDER BY se.enrollment_id`
	return r.list(query)
}

func (r *EnrollmentRepository) list(query string, args ...interface{}) ([]models.Enrollment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []models.Enrollment{}
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.StudentName,
			&enrollment.ClassID,
			&enrollment.ClassName,
			&enrollment.EnrollmentDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}
