package handlers

import (
	"log/slog"
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	FacultyID *uint  `json:"faculty_id"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account in one of the four roles and return a signed token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{} "Registration successful"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Username or email already taken"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := &models.User{
		Username:  req.Username,
		FullName:  req.FullName,
		Email:     req.Email,
		Role:      models.Role(req.Role),
		FacultyID: req.FacultyID,
	}

	token, err := h.authService.Register(user, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username, "role", user.Role)

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login handles user login
// @Summary Log in
// @Description Verify credentials and return a signed token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Profile returns the authenticated user's own record
// @Summary Get own profile
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	user, err := h.authService.Profile(claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}
