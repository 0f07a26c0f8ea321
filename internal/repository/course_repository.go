package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

const courseColumns = `
	c.course_id, c.course_name, c.course_code, c.faculty_id, f.faculty_name, c.program_leader_id
	FROM courses c
	LEFT JOIN faculty f ON c.faculty_id = f.faculty_id
`

// CourseRepository handles course database operations
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create creates a new course led by the given program leader. Duplicate
// course codes surface as ErrCourseExists.
func (r *CourseRepository) Create(course *models.Course) error {
	query := `
		INSERT INTO courses (course_name, course_code, faculty_id, program_leader_id)
		VALUES ($1, $2, $3, $4)
		RETURNING course_id
	`

	err := r.db.QueryRow(
		query,
		course.Name,
		course.Code,
		course.FacultyID,
		course.ProgramLeaderID,
	).Scan(&course.ID)

	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrCourseExists
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(id uint) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` WHERE c.course_id = $1`

	course := &models.Course{}
	err := r.db.QueryRow(query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Code,
		&course.FacultyID,
		&course.FacultyName,
		&course.ProgramLeaderID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return course, nil
}

// ListAll retrieves every course with its faculty name
func (r *CourseRepository) ListAll() ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` ORDER BY c.course_id`
	return r.list(query)
}

// ListByProgramLeader retrieves only courses led by the given user
func (r *CourseRepository) ListByProgramLeader(leaderID uint) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` WHERE c.program_leader_id = $1 ORDER BY c.course_id`
	return r.list(query, leaderID)
}

func (r *CourseRepository) list(query string, args ...interface{}) ([]models.Course, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Code,
			&course.FacultyID,
			&course.FacultyName,
			&course.ProgramLeaderID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}
