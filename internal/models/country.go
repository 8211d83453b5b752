package models

import (
	"time"

	"github.com/google/uuid"
)

// Safety levels for country reference data
const (
	SafetyVerySafe       = "Very Safe"
	SafetySafe           = "Safe"
	SafetyModerate       = "Moderate"
	SafetyCautionAdvised = "Caution Advised"
)

// Country is admin-managed reference data describing a destination.
type Country struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Code               string    `json:"code" db:"code"`
	Capital            string    `json:"capital" db:"capital"`
	Currency           string    `json:"currency" db:"currency"`
	Language           string    `json:"language" db:"language"`
	Description        string    `json:"description" db:"description"`
	Image              string    `json:"image" db:"image"`
	DailyBudget        float64   `json:"dailyBudget" db:"daily_budget"`
	BudgetCurrency     string    `json:"budgetCurrency" db:"budget_currency"`
	BestTimeToVisit    []string  `json:"bestTimeToVisit" db:"best_time_to_visit"`
	PopularAttractions []string  `json:"popularAttractions" db:"popular_attractions"`
	VisaRequired       bool      `json:"visaRequired" db:"visa_required"`
	SafetyLevel        string    `json:"safetyLevel" db:"safety_level"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// ValidSafetyLevel reports whether s is a known safety level.
func ValidSafetyLevel(s string) bool {
	switch s {
	case SafetyVerySafe, SafetySafe, SafetyModerate, SafetyCautionAdvised:
		return true
	}
	return false
}
