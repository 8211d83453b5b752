package handlers

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"tripbook/internal/config"
	"tripbook/internal/dto"
	"tripbook/internal/middleware"
	"tripbook/internal/utils"
)

// verificationCodeTTL bounds how long an emailed reset code stays valid. It
// also acts as the cooldown between code requests for the same account.
const verificationCodeTTL = 3 * time.Minute

// ForgotPasswordHandler handles the email-code password reset flow
type ForgotPasswordHandler struct {
	db           DB
	config       *config.Config
	emailService *utils.EmailService
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance
func NewForgotPasswordHandler(db DB, cfg *config.Config) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{
		db:           db,
		config:       cfg,
		emailService: utils.NewEmailService(&cfg.Email),
	}
}

// ForgotPassword sends a verification code to the account's email
// @Summary Request password reset
// @Description Send 6-digit verification code to the account's email
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.ForgotPasswordResponse "Verification code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 429 {object} dto.ErrorResponse "Code already sent"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email is required")
		return
	}

	var userID uuid.UUID
	err := h.db.QueryRow(context.Background(),
		`SELECT id FROM users WHERE email = $1`, req.Email).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No account found with this email")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching account")
		}
		return
	}

	// Reject while an unexpired code is outstanding
	var expiresAt time.Time
	err = h.db.QueryRow(context.Background(),
		`SELECT expires_at FROM auth_verifications
         WHERE user_id = $1 AND used = false AND expires_at > NOW()
         ORDER BY created_at DESC LIMIT 1`, userID).Scan(&expiresAt)
	if err == nil {
		remaining := time.Until(expiresAt)
		utils.WriteErrorResponse(w, http.StatusTooManyRequests, "Code already sent",
			fmt.Sprintf("Please wait %d seconds before requesting a new code", int(remaining.Seconds())))
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error checking existing codes")
		return
	}

	code, err := generateVerificationCode(6)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to generate code")
		return
	}

	expiresAt = time.Now().Add(verificationCodeTTL)
	_, err = h.db.Exec(context.Background(),
		`INSERT INTO auth_verifications (id, user_id, email, code, expires_at, used, created_at)
         VALUES ($1, $2, $3, $4, $5, false, $6)`,
		uuid.New(), userID, req.Email, code, expiresAt, time.Now())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to store verification code")
		return
	}

	if h.config.IsEmailConfigured() {
		if err := h.emailService.SendVerificationCode(req.Email, code); err != nil {
			log.Printf("verification email to %s failed: %v", req.Email, err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Email error", "Failed to send verification code")
			return
		}
	} else {
		// No SMTP in this environment, surface the code in the server log
		log.Printf("verification code for %s: %s (expires in %s)", req.Email, code, verificationCodeTTL)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ForgotPasswordResponse{
		Success:   true,
		Message:   "Verification code has been sent to your email",
		Email:     req.Email,
		ExpiresIn: "3 minutes",
	})
}

// VerifyCode checks the emailed code and returns a short-lived reset token
// @Summary Verify reset code
// @Description Verify the 6-digit code and get a temporary reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.VerifyCodeRequest true "Email and verification code"
// @Success 200 {object} dto.VerifyCodeResponse "Code verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/verify-code [post]
func (h *ForgotPasswordHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.VerifyCodeRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email and code are required")
		return
	}

	var userID uuid.UUID
	err := h.db.QueryRow(context.Background(),
		`SELECT id FROM users WHERE email = $1`, req.Email).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "No account found with this email")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching account")
		}
		return
	}

	var storedCode string
	var expiresAt time.Time
	var used bool
	err = h.db.QueryRow(context.Background(),
		`SELECT code, expires_at, used FROM auth_verifications
         WHERE user_id = $1 AND email = $2
         ORDER BY created_at DESC LIMIT 1`, userID, req.Email).Scan(&storedCode, &expiresAt, &used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "No verification code found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching verification code")
		}
		return
	}

	if used {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
		return
	}
	if time.Now().After(expiresAt) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired. Please request a new one")
		return
	}
	if storedCode != req.Code {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code you entered is incorrect")
		return
	}

	resetToken, err := middleware.GenerateResetToken(userID, req.Email, req.Code, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to generate reset token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyCodeResponse{
		Success:    true,
		Message:    "Code verified successfully",
		ResetToken: resetToken,
		ExpiresIn:  "10 minutes",
	})
}

// ResetPassword sets a new password using the reset token
// @Summary Reset password
// @Description Set a new password with the reset token from code verification
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	if req.ResetToken == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Reset token and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Password must be at least 6 characters")
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid reset token", err.Error())
		return
	}

	// The code backing this token must still be live and unused
	var verificationID uuid.UUID
	var used bool
	var expiresAt time.Time
	err = h.db.QueryRow(context.Background(),
		`SELECT id, used, expires_at FROM auth_verifications
         WHERE user_id = $1 AND email = $2 AND code = $3
         ORDER BY created_at DESC LIMIT 1`,
		claims.UserID, claims.Email, claims.Code).Scan(&verificationID, &used, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid verification", "No matching verification found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching verification")
		}
		return
	}

	if used {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
		return
	}
	if time.Now().After(expiresAt) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to hash password")
		return
	}

	tx, err := h.db.Begin(context.Background())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to start transaction")
		return
	}
	defer tx.Rollback(context.Background())

	_, err = tx.Exec(context.Background(),
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		string(hashedPassword), time.Now(), claims.UserID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update password")
		return
	}

	_, err = tx.Exec(context.Background(),
		`UPDATE auth_verifications SET used = true WHERE id = $1`, verificationID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to mark code as used")
		return
	}

	if err := tx.Commit(context.Background()); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to commit transaction")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password has been reset successfully",
	})
}

// generateVerificationCode generates a random n-digit verification code
func generateVerificationCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)

	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}
