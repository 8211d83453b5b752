package models

import (
	"time"

	"github.com/google/uuid"

	"tripbook/internal/budget"
)

// Trip statuses
const (
	TripStatusPlanned    = "planned"
	TripStatusBooked     = "booked"
	TripStatusInProgress = "in-progress"
	TripStatusCompleted  = "completed"
	TripStatusCancelled  = "cancelled"
)

// Accommodation tiers shared by trips and bookings
const (
	AccommodationStandard = "standard"
	AccommodationDeluxe   = "deluxe"
	AccommodationLuxury   = "luxury"
)

// Trip represents a planned trip owned by a single user. The budget estimate
// is recomputed whenever destination, dates or travelers change.
type Trip struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	UserID          uuid.UUID         `json:"user" db:"user_id"`
	Destination     string            `json:"destination" db:"destination"`
	StartDate       time.Time         `json:"startDate" db:"start_date"`
	EndDate         time.Time         `json:"endDate" db:"end_date"`
	Travelers       budget.Travelers  `json:"travelers" db:"travelers"`
	Accommodation   string            `json:"accommodation" db:"accommodation"`
	SpecialRequests string            `json:"specialRequests" db:"special_requests"`
	BudgetEstimate  *budget.Breakdown `json:"budgetEstimate,omitempty" db:"budget_estimate"`
	Status          string            `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}

// ValidTripStatus reports whether s is one of the trip lifecycle statuses.
func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusPlanned, TripStatusBooked, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// ValidAccommodation reports whether s is a known accommodation tier.
func ValidAccommodation(s string) bool {
	switch s {
	case AccommodationStandard, AccommodationDeluxe, AccommodationLuxury:
		return true
	}
	return false
}
