package dto

import (
	"tripbook/internal/budget"
	"tripbook/internal/models"
)

// CreateBookingRequest represents the payload to create a booking
type CreateBookingRequest struct {
	CountryID       string            `json:"countryId"`
	StartDate       string            `json:"startDate"`
	EndDate         string            `json:"endDate"`
	Travelers       *budget.Travelers `json:"travelers,omitempty"`
	Budget          *float64          `json:"budget,omitempty"`
	Accommodation   string            `json:"accommodation"`
	SpecialRequests string            `json:"specialRequests"`
}

// UpdateBookingStatusRequest sets a new booking status
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse envelope for a single booking
type BookingResponse struct {
	Success            bool           `json:"success"`
	Message            string         `json:"message,omitempty"`
	Booking            models.Booking `json:"booking"`
	ConfirmationNumber string         `json:"confirmationNumber,omitempty"`
}

// BookingListResponse envelope for the caller's bookings, newest first
type BookingListResponse struct {
	Success  bool             `json:"success"`
	Bookings []models.Booking `json:"bookings"`
}
