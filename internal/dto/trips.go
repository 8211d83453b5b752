package dto

import (
	"tripbook/internal/budget"
	"tripbook/internal/models"
)

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	Destination     string            `json:"destination"`
	StartDate       string            `json:"startDate"` // ISO 8601: YYYY-MM-DD or RFC3339
	EndDate         string            `json:"endDate"`
	Travelers       *budget.Travelers `json:"travelers,omitempty"`
	Accommodation   string            `json:"accommodation"` // standard | deluxe | luxury
	SpecialRequests string            `json:"specialRequests"`
}

// UpdateTripRequest represents fields allowed to update a trip.
// All fields are optional; only provided ones will be updated.
type UpdateTripRequest struct {
	Destination     *string           `json:"destination"`
	StartDate       *string           `json:"startDate"`
	EndDate         *string           `json:"endDate"`
	Travelers       *budget.Travelers `json:"travelers"`
	Accommodation   *string           `json:"accommodation"`
	SpecialRequests *string           `json:"specialRequests"`
	Status          *string           `json:"status"`
}

// TripResponse envelope for a single trip
type TripResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Trip    models.Trip `json:"trip"`
}

// TripListResponse envelope for the caller's trips
type TripListResponse struct {
	Success bool          `json:"success"`
	Trips   []models.Trip `json:"trips"`
}

// BudgetEstimateRequest asks for a budget breakdown without persisting a trip
type BudgetEstimateRequest struct {
	Destination string           `json:"destination"`
	Duration    int              `json:"duration"`
	Travelers   budget.Travelers `json:"travelers"`
}

// BudgetEstimateResponse carries the computed breakdown
type BudgetEstimateResponse struct {
	Success        bool             `json:"success"`
	BudgetEstimate budget.Breakdown `json:"budgetEstimate"`
}
