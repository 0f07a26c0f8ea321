package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

const classColumns = `
	cl.class_id, cl.class_name, cl.course_id, c.course_name, cl.lecturer_id,
	u.full_name AS lecturer_name, cl.venue, cl.scheduled_time, cl.total_registered_students
	FROM classes cl
	LEFT JOIN courses c ON cl.course_id = c.course_id
	LEFT JOIN users u ON cl.lecturer_id = u.user_id
`

// ClassRepository handles class database operations
type ClassRepository struct {
	db *sql.DB
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *sql.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create creates a new class
func (r *ClassRepository) Create(class *models.Class) error {
	query := `
		INSERT INTO classes (class_name, course_id, lecturer_id, venue, scheduled_time, total_registered_students)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING class_id
	`

	err := r.db.QueryRow(
		query,
		class.Name,
		class.CourseID,
		class.LecturerID,
		class.Venue,
		class.ScheduledTime,
		class.RegisteredStudents,
	).Scan(&class.ID)

	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(id uint) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` WHERE cl.class_id = $1`

	class := &models.Class{}
	err := r.db.QueryRow(query, id).Scan(
		&class.ID,
		&class.Name,
		&class.CourseID,
		&class.CourseName,
		&class.LecturerID,
		&class.LecturerName,
		&class.Venue,
		&class.ScheduledTime,
		&class.RegisteredStudents,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	return class, nil
}

// ListAll retrieves every class with course and lecturer names
func (r *ClassRepository) ListAll() ([]models.Class, error) {
	query := `SELECT ` + classColumns + ` ORDER BY cl.class_id`
	return r.list(query)
}

// ListForLecturer retrieves only classes taught by the given lecturer
func (r *ClassRepository) ListForLecturer(lecturerID uint) ([]models.Class, error) {
	query := `SELECT ` + classColumns + ` WHERE cl.lecturer_id = $1 ORDER BY cl.class_id`
	return r.list(query, lecturerID)
}

// ListForStudent retrieves only classes the given student is enrolled in
func (r *ClassRepository) ListForStudent(studentID uint) ([]models.Class, error) {
	query := `SELECT ` + classColumns + `
		INNER JOIN student_enrollments se ON cl.class_id = se.class_id
		WHERE se.student_id = $1
		ORDER BY cl.class_id`
	return r.list(query, studentID)
}

// ListAvailableForStudent retrieves classes the given student has not yet
// enrolled in.
func (r *ClassRepository) ListAvailableForStudent(studentID uint) ([]models.Class, error) {
	query := `SELECT ` + classColumns + `
		WHERE cl.class_id NOT IN (
			SELECT class_id FROM student_enrollments WHERE student_id = $1
		)
		ORDER BY cl.class_id`
	return r.list(query, studentID)
}

// Roster retrieves the students enrolled in a class
func (r *ClassRepository) Roster(classID uint) ([]models.User, error) {
	query := `
		SELECT u.user_id, u.username, u.full_name, u.email, u.role, u.faculty_id
		FROM users u
		INNER JOIN student_enrollments se ON u.user_id = se.student_id
		WHERE se.class_id = $1
		ORDER BY u.full_name
	`

	rows, err := r.db.Query(query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	students := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.FullName,
			&user.Email,
			&user.Role,
			&user.FacultyID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, user)
	}

	return students, rows.Err()
}

func (r *ClassRepository) list(query string, args ...interface{}) ([]models.Class, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	classes := []models.Class{}
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.CourseID,
			&class.CourseName,
			&class.LecturerID,
			&class.LecturerName,
			&class.Venue,
			&class.ScheduledTime,
			&class.RegisteredStudents,
		); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}
