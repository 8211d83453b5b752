package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"tripbook/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendVerificationCode sends a password-reset verification code.
func (e *EmailService) SendVerificationCode(to, code string) error {
	subject := "Password Reset Verification Code"
	body := fmt.Sprintf(`Hello,

You requested to reset your Tripbook password.

Your verification code is: %s

This code will expire in 3 minutes.

If you didn't request this, please ignore this email.

Best regards,
Tripbook Team
`, code)

	return e.sendEmail(to, subject, body)
}

// SendBookingConfirmation sends the booking reference after a successful booking.
func (e *EmailService) SendBookingConfirmation(to, reference, countryName string, start, end time.Time, itineraryDays int) error {
	subject := "Your Tripbook Booking Confirmation"
	body := fmt.Sprintf(`Hello,

Your booking for %s is confirmed.

Booking reference: %s
Travel dates: %s to %s
Itinerary: %d day(s) planned

You can view the full itinerary in your bookings.

Best regards,
Tripbook Team
`, countryName, reference, FormatDate(start), FormatDate(end), itineraryDays)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", e.config.FromName, fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n\r\n%s\r\n", subject, body)

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
