package models

import (
	"time"

	"github.com/google/uuid"

	"tripbook/internal/budget"
)

// Booking statuses
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
	BookingStatusCompleted = "Completed"
)

// Payment statuses
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentRefunded = "Refunded"
)

// Booking is a confirmed reservation for a country stay. Bookings are never
// physically deleted; cancellation is a status transition.
type Booking struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	UserID          uuid.UUID        `json:"user" db:"user_id"`
	CountryID       uuid.UUID        `json:"country" db:"country_id"`
	Reference       string           `json:"bookingReference" db:"reference"`
	StartDate       time.Time        `json:"startDate" db:"start_date"`
	EndDate         time.Time        `json:"endDate" db:"end_date"`
	Travelers       budget.Travelers `json:"travelers" db:"travelers"`
	Budget          float64          `json:"budget" db:"budget"`
	Accommodation   string           `json:"accommodation" db:"accommodation"`
	Itinerary       []budget.DayPlan `json:"itinerary" db:"itinerary"`
	Status          string           `json:"status" db:"status"`
	PaymentStatus   string           `json:"paymentStatus" db:"payment_status"`
	TotalCost       float64          `json:"totalCost" db:"total_cost"`
	SpecialRequests string           `json:"specialRequests" db:"special_requests"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// ValidBookingStatus reports whether s is a booking lifecycle status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
