package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"tripbook/internal/config"
	"tripbook/internal/dto"
	"tripbook/internal/middleware"
	"tripbook/internal/models"
	"tripbook/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	db           DB
	oauth2Config *oauth2.Config
	config       *config.Config
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(db DB, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		db:           db,
		oauth2Config: oauth2Config,
		config:       cfg,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Google OAuth URL"
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.config.IsGoogleOAuthConfigured() {
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Unavailable", "Google login is not configured")
		return
	}

	// Generate state parameter for CSRF protection
	state := uuid.New().String()

	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	_ = r.URL.Query().Get("state") // We can add state validation later if needed

	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	token, err := h.oauth2Config.Exchange(context.Background(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", err.Error())
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(userInfo.Email))

	var user models.User
	err = h.db.QueryRow(context.Background(),
		`SELECT id, name, email, password_hash, avatar_url, created_at, updated_at
         FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarURL,
			&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching account")
			return
		}
		// First Google sign-in, create the account
		user, err = h.createGoogleUser(userInfo)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
			return
		}
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Logged in with Google",
		Token:   jwtToken,
		User:    dto.AuthUser{UserID: user.ID.String(), Email: user.Email, Name: user.Name},
	})
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(accessToken string) (*dto.GoogleUserInfo, error) {
	ctx := context.Background()
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}

// createGoogleUser creates a new user from Google OAuth data. The account has
// no password hash; password login stays disabled until a reset sets one.
func (h *GoogleAuthHandler) createGoogleUser(googleUser *dto.GoogleUserInfo) (models.User, error) {
	now := time.Now()
	user := models.User{
		ID:        uuid.New(),
		Name:      googleUser.Name,
		Email:     strings.ToLower(strings.TrimSpace(googleUser.Email)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if googleUser.Picture != "" {
		user.AvatarURL = &googleUser.Picture
	}

	_, err := h.db.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash, avatar_url, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, "", user.AvatarURL, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}
