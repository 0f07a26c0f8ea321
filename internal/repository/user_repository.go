package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Duplicate usernames or emails surface as
// ErrUserExists via the unique constraint translation.
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, full_name, email, role, faculty_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`

	err := r.db.QueryRow(
		query,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.Role,
		user.FacultyID,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, full_name, email, role, faculty_id
		FROM users
		WHERE user_id = $1
	`

	user := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&user.Role,
		&user.FacultyID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, full_name, email, role, faculty_id
		FROM users
		WHERE username = $1
	`

	user := &models.User{}
	err := r.db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&user.Role,
		&user.FacultyID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// ListLecturers retrieves all users holding the Lecturer role
func (r *UserRepository) ListLecturers() ([]models.User, error) {
	query := `
		SELECT user_id, username, full_name, email, role, faculty_id
		FROM users
		WHERE role = $1
		ORDER BY full_name
	`

	rows, err := r.db.Query(query, models.RoleLecturer)
	if err != nil {
		return nil, fmt.Errorf("failed to list lecturers: %w", err)
	}
	defer rows.Close()

	lecturers := []models.User{}
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
			return nil, fmt.Errorf("failed to scan lecturer: %w", err)
		}
		lecturers = append(lecturers, user)
	}

	return lecturers, rows.Err()
}
