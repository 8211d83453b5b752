package dto

// SignupRequest represents the request payload for account creation
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the public identity returned after authentication
type AuthUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a success envelope with no payload
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ForgotPasswordRequest asks for a password-reset code
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse confirms a reset code was issued
type ForgotPasswordResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Email     string `json:"email"`
	ExpiresIn string `json:"expiresIn"`
}

// VerifyCodeRequest carries the emailed verification code
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// VerifyCodeResponse returns the short-lived reset token
type VerifyCodeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
	ExpiresIn  string `json:"expiresIn"`
}

// ResetPasswordRequest sets a new password using a reset token
type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
