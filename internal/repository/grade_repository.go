package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

const gradeColumns = `
	g.grade_id, g.student_id, s.full_name AS student_name, g.class_id,
	cl.class_name, g.lecturer_id, g.grade, g.grade_type, g.description, g.date_given
	FROM grades g
	LEFT JOIN users s ON g.student_id = s.user_id
	LEFT JOIN classes cl ON g.class_id = cl.class_id
`

// GradeRepository handles grade database operations
type GradeRepository struct {
	db *sql.DB
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *sql.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// Create creates a new grade
func (r *GradeRepository) Create(grade *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, class_id, lecturer_id, grade, grade_type, description, date_given)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING grade_id
	`

	err := r.db.QueryRow(
		query,
		grade.StudentID,
		grade.ClassID,
		grade.LecturerID,
		grade.Grade,
		grade.GradeType,
		grade.Description,
		grade.DateGiven,
	).Scan(&grade.ID)

	if err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}

	return nil
}

// ListForStudent retrieves grades received by the given student
func (r *GradeRepository) ListForStudent(studentID uint) ([]models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` WHERE g.student_id = $1 ORDER BY g.grade_id`
	return r.list(query, studentID)
}

// ListForLecturer retrieves grades issued by the given lecturer
func (r *GradeRepository) ListForLecturer(lecturerID uint) ([]models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` WHERE g.lecturer_id = $1 ORDER BY g.grade_id`
	return r.list(query, lecturerID)
}

// ListAll retrieves every grade
func (r *GradeRepository) ListAll() ([]models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` ORDER BY g.grade_id`
	return r.list(query)
}

func (r *GradeRepository) list(query string, args ...interface{}) ([]models.Grade, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	defer rows.Close()

	grades := []models.Grade{}
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(
			&grade.ID,
			&grade.StudentID,
			&grade.StudentName,
			&grade.ClassID,
			&grade.ClassName,
			&grade.LecturerID,
			&grade.Grade,
			&grade.GradeType,
			&grade.Description,
			&grade.DateGiven,
		); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, grade)
	}

	return grades, rows.Err()
}
