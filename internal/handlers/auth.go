package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"tripbook/internal/config"
	"tripbook/internal/dto"
	"tripbook/internal/middleware"
	"tripbook/internal/models"
	"tripbook/internal/utils"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 12

// AuthHandler manages signup, login and profile endpoints
type AuthHandler struct {
	db     DB
	config *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(db DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// Signup handles POST /api/auth/signup
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.SignupRequest true "Signup payload"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SignupRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Name, email, and password are required")
		return
	}
	if len(req.Password) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	var exists bool
	err := h.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, req.Email).Scan(&exists)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error checking email")
		return
	}
	if exists {
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "An account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error creating account")
		return
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error creating account")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error generating token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    dto.AuthUser{UserID: user.ID.String(), Email: user.Email, Name: user.Name},
	})
}

// Login handles POST /api/auth/login
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email and password are required")
		return
	}

	var user models.User
	err := h.db.QueryRow(context.Background(),
		`SELECT id, name, email, password_hash FROM users WHERE email = $1`, req.Email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Same message for unknown email and bad password
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching account")
		}
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error generating token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Logged in successfully",
		Token:   token,
		User:    dto.AuthUser{UserID: user.ID.String(), Email: user.Email, Name: user.Name},
	})
}

// Profile handles GET /api/auth/profile
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var user models.User
	err := h.db.QueryRow(context.Background(),
		`SELECT id, name, email, avatar_url, created_at, updated_at FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Account not found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching account")
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, user)
}
