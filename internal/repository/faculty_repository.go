package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *sql.DB
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *sql.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// Create creates a new faculty
func (r *FacultyRepository) Create(faculty *models.Faculty) error {
	query := `INSERT INTO faculty (faculty_name) VALUES ($1) RETURNING faculty_id`

	if err := r.db.QueryRow(query, faculty.Name).Scan(&faculty.ID); err != nil {
		if isUniqueViolation(err, "") {
			return ErrFacultyExists
		}
		return fmt.Errorf("failed to create faculty: %w", err)
	}

	return nil
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(id uint) (*models.Faculty, error) {
	query := `SELECT faculty_id, faculty_name FROM faculty WHERE faculty_id = $1`

	faculty := &models.Faculty{}
	err := r.db.QueryRow(query, id).Scan(&faculty.ID, &faculty.Name)

	if err == sql.ErrNoRows {
		return nil, ErrFacultyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get faculty: %w", err)
	}

	return faculty, nil
}

// List retrieves all faculties
func (r *FacultyRepository) List() ([]models.Faculty, error) {
	query := `SELECT faculty_id, faculty_name FROM faculty ORDER BY faculty_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list faculties: %w", err)
	}
	defer rows.Close()

	faculties := []models.Faculty{}
	for rows.Next() {
		var faculty models.Faculty
		if err := rows.Scan(&faculty.ID, &faculty.Name); err != nil {
			return nil, fmt.Errorf("failed to scan faculty: %w", err)
		}
		faculties = append(faculties, faculty)
	}

	return faculties, rows.Err()
}
