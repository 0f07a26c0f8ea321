package service

import (
	"errors"
	"fmt"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
)

// AuthService handles registration, login, and profile lookups.
type AuthService struct {
	userRepo    *repository.UserRepository
	facultyRepo *repository.FacultyRepository
	authSvc     *auth.Service
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo *repository.UserRepository,
	facultyRepo *repository.FacultyRepository,
	authSvc *auth.Service,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		facultyRepo: facultyRepo,
		authSvc:     authSvc,
	}
}

// Register creates a user and returns it with a signed token. Duplicate
// usernames or emails fail with a Conflict error and create no row.
func (s *AuthService) Register(user *models.User, password string) (string, error) {
	if !user.Role.Valid() {
		return "", apperr.New(apperr.Validation, "invalid role")
	}

	if user.FacultyID != nil {
		if _, err := s.facultyRepo.GetByID(*user.FacultyID); err != nil {
			if errors.Is(err, repository.ErrFacultyNotFound) {
				return "", apperr.New(apperr.Validation, "faculty does not exist")
			}
			return "", fmt.Errorf("checking faculty: %w", err)
		}
	}

	hash, err := s.authSvc.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return "", apperr.New(apperr.Conflict, "username or email already exists")
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.authSvc.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	return token, nil
}

// Login verifies credentials and returns the user with a signed token. The
// error message never reveals whether the username or the password was wrong.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", apperr.New(apperr.Unauthorized, "invalid credentials")
		}
		return nil, "", fmt.Errorf("finding user: %w", err)
	}

	if err := s.authSvc.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	token, err := s.authSvc.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	return user, token, nil
}

// Profile retrieves the authenticated user's own record
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}
