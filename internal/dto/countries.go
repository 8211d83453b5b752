package dto

// CreateCountryRequest represents the payload to add reference-country data
type CreateCountryRequest struct {
	Name               string   `json:"name"`
	Code               string   `json:"code"`
	Capital            string   `json:"capital"`
	Currency           string   `json:"currency"`
	Language           string   `json:"language"`
	Description        string   `json:"description"`
	Image              string   `json:"image"`
	DailyBudget        float64  `json:"dailyBudget"`
	BudgetCurrency     string   `json:"budgetCurrency"`
	BestTimeToVisit    []string `json:"bestTimeToVisit"`
	PopularAttractions []string `json:"popularAttractions"`
	VisaRequired       bool     `json:"visaRequired"`
	SafetyLevel        string   `json:"safetyLevel"`
}
