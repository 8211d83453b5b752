package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tripbook/internal/config"
	"tripbook/internal/dto"
	"tripbook/internal/models"
	"tripbook/internal/utils"
)

// CountriesHandler manages the destination reference data endpoints
type CountriesHandler struct {
	db     DB
	config *config.Config
}

// NewCountriesHandler creates a new CountriesHandler
func NewCountriesHandler(db DB, cfg *config.Config) *CountriesHandler {
	return &CountriesHandler{db: db, config: cfg}
}

const countryColumns = `id, name, code, capital, currency, language, description, image, daily_budget, budget_currency, best_time_to_visit, popular_attractions, visa_required, safety_level, created_at, updated_at`

func scanCountry(row pgx.Row) (models.Country, error) {
	var c models.Country
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Capital, &c.Currency, &c.Language,
		&c.Description, &c.Image, &c.DailyBudget, &c.BudgetCurrency,
		&c.BestTimeToVisit, &c.PopularAttractions, &c.VisaRequired, &c.SafetyLevel,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Countries dispatches by HTTP method for /api/countries
func (h *CountriesHandler) Countries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListCountries(w, r)
	case http.MethodPost:
		h.CreateCountry(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListCountries handles GET /api/countries
// @Summary List all destination countries
// @Tags countries
// @Produce json
// @Success 200 {array} models.Country
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/countries [get]
func (h *CountriesHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(context.Background(),
		`SELECT `+countryColumns+` FROM countries ORDER BY name ASC`)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching countries")
		return
	}
	defer rows.Close()

	countries := make([]models.Country, 0)
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching countries")
			return
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching countries")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, countries)
}

// CountryDetail handles GET /api/countries/{id}
// @Summary Get a country by id
// @Tags countries
// @Produce json
// @Param id path string true "Country ID"
// @Success 200 {object} models.Country
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/countries/{id} [get]
func (h *CountriesHandler) CountryDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	countryID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/countries/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid country id", "country id must be a UUID")
		return
	}

	country, err := scanCountry(h.db.QueryRow(context.Background(),
		`SELECT `+countryColumns+` FROM countries WHERE id = $1`, countryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Country not found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching country")
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, country)
}

// CreateCountry handles POST /api/countries
// @Summary Add a destination country
// @Tags countries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateCountryRequest true "Country payload"
// @Success 201 {object} models.Country
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/countries [post]
func (h *CountriesHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateCountryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Name == "" || req.Code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Name and code are required")
		return
	}
	if req.DailyBudget < 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "dailyBudget must not be negative")
		return
	}

	safetyLevel := req.SafetyLevel
	if safetyLevel == "" {
		safetyLevel = models.SafetyModerate
	}
	if !models.ValidSafetyLevel(safetyLevel) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "safetyLevel is not a recognized level")
		return
	}

	budgetCurrency := strings.ToUpper(strings.TrimSpace(req.BudgetCurrency))
	if budgetCurrency == "" {
		budgetCurrency = "USD"
	}

	var exists bool
	err := h.db.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM countries WHERE code = $1)`, req.Code).Scan(&exists)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error checking country code")
		return
	}
	if exists {
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "A country with this code already exists")
		return
	}

	now := time.Now()
	country := models.Country{
		ID:                 uuid.New(),
		Name:               req.Name,
		Code:               req.Code,
		Capital:            req.Capital,
		Currency:           req.Currency,
		Language:           req.Language,
		Description:        req.Description,
		Image:              req.Image,
		DailyBudget:        req.DailyBudget,
		BudgetCurrency:     budgetCurrency,
		BestTimeToVisit:    req.BestTimeToVisit,
		PopularAttractions: req.PopularAttractions,
		VisaRequired:       req.VisaRequired,
		SafetyLevel:        safetyLevel,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO countries (`+countryColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		country.ID, country.Name, country.Code, country.Capital, country.Currency,
		country.Language, country.Description, country.Image, country.DailyBudget,
		country.BudgetCurrency, country.BestTimeToVisit, country.PopularAttractions,
		country.VisaRequired, country.SafetyLevel, country.CreatedAt, country.UpdatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error creating country")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, country)
}
