package repository

import (
	"database/sql"
	"fmt"

	"luct-reporting/internal/models"
)

const ratingColumns = `
	r.rating_id, r.lecturer_id, l.full_name AS lecturer_name,
	r.user_id, u.full_name AS rater_name, r.rating, r.comments, r.created_at
	FROM ratings r
	LEFT JOIN users l ON r.lecturer_id = l.user_id
	LEFT JOIN users u ON r.user_id = u.user_id
`

// RatingRepository handles lecturer rating database operations
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts a rating, or updates the existing row in place when the
// same rater has already rated the same lecturer. The row count for a
// (rater, lecturer) pair never exceeds one.
func (r *RatingRepository) Upsert(rating *models.Rating) error {
	query := `
		INSERT INTO ratings (lecturer_id, user_id, rating, comments)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT unique_rating
		DO UPDATE SET rating = EXCLUDED.rating, comments = EXCLUDED.comments
		RETURNING rating_id, created_at
	`

	err := r.db.QueryRow(
		query,
		rating.LecturerID,
		rating.UserID,
		rating.Rating,
		rating.Comments,
	).Scan(&rating.ID, &rating.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

// ListForLecturer retrieves ratings received by the given lecturer
func (r *RatingRepository) ListForLecturer(lecturerID uint) ([]models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` WHERE r.lecturer_id = $1 ORDER BY r.rating_id`
	return r.list(query, lecturerID)
}

// ListByRater retrieves ratings submitted by the given user
func (r *RatingRepository) ListByRater(userID uint) ([]models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` WHERE r.user_id = $1 ORDER BY r.rating_id`
	return r.list(query, userID)
}

// ListAll retrieves every rating
func (r *RatingRepository) ListAll() ([]models.Rating, error) {
	query := `SELECT ` + ratingColumns + ` ORDER BY r.rating_id`
	return r.list(query)
}

func (r *RatingRepository) list(query string, args ...interface{}) ([]models.Rating, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(
			&rating.ID,
			&rating.LecturerID,
			&rating.LecturerName,
			&rating.UserID,
			&rating.RaterName,
			&rating.Rating,
			&rating.Comments,
			&rating.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}
