package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbook/internal/budget"
	"tripbook/internal/config"
	"tripbook/internal/dto"
	"tripbook/internal/models"
	"tripbook/internal/utils"
)

// tripRow serves a stored trip through the scanTrip column order.
func tripRow(trip models.Trip) pgx.Row {
	return rowFunc(func(dest ...any) error {
		*dest[0].(*uuid.UUID) = trip.ID
		*dest[1].(*uuid.UUID) = trip.UserID
		*dest[2].(*string) = trip.Destination
		*dest[3].(*time.Time) = trip.StartDate
		*dest[4].(*time.Time) = trip.EndDate
		*dest[5].(*budget.Travelers) = trip.Travelers
		*dest[6].(*string) = trip.Accommodation
		*dest[7].(*string) = trip.SpecialRequests
		*dest[8].(**budget.Breakdown) = trip.BudgetEstimate
		*dest[9].(*string) = trip.Status
		*dest[10].(*time.Time) = trip.CreatedAt
		*dest[11].(*time.Time) = trip.UpdatedAt
		return nil
	})
}

func authedTripRequest(method, target string, userID uuid.UUID, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(utils.WithIdentity(req.Context(), userID, "traveler@example.com"))
}

func TestTripDetailNotFound(t *testing.T) {
	db := &fakeDB{queryRow: func(string, ...any) pgx.Row { return errRow(pgx.ErrNoRows) }}
	h := NewTripsHandler(db, &config.Config{})

	req := authedTripRequest(http.MethodGet, "/api/trips/"+uuid.NewString(), uuid.New(), nil)
	rec := httptest.NewRecorder()

	h.TripDetail(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTripDetailForbiddenForNonOwner(t *testing.T) {
	stored := models.Trip{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Destination: "france",
		Travelers:   budget.Travelers{Adults: 2},
		Status:      models.TripStatusPlanned,
	}
	db := &fakeDB{queryRow: func(string, ...any) pgx.Row { return tripRow(stored) }}
	h := NewTripsHandler(db, &config.Config{})

	req := authedTripRequest(http.MethodGet, "/api/trips/"+stored.ID.String(), uuid.New(), nil)
	rec := httptest.NewRecorder()

	h.TripDetail(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	// The record must not leak to the non-owner
	assert.NotContains(t, rec.Body.String(), stored.ID.String())
	assert.NotContains(t, rec.Body.String(), "france")
}

func TestTripDetailInvalidID(t *testing.T) {
	db := &fakeDB{queryRow: func(string, ...any) pgx.Row { return errRow(pgx.ErrNoRows) }}
	h := NewTripsHandler(db, &config.Config{})

	req := authedTripRequest(http.MethodGet, "/api/trips/not-a-uuid", uuid.New(), nil)
	rec := httptest.NewRecorder()

	h.TripDetail(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTripBindsJSONBAsStrings(t *testing.T) {
	var got []any
	db := &fakeDB{exec: func(sql string, args ...any) (pgconn.CommandTag, error) {
		got = args
		return pgconn.CommandTag{}, nil
	}}
	h := NewTripsHandler(db, &config.Config{})

	payload, err := json.Marshal(dto.CreateTripRequest{
		Destination: "France",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-04",
		Travelers:   &budget.Travelers{Adults: 2},
	})
	require.NoError(t, err)

	req := authedTripRequest(http.MethodPost, "/api/trips", uuid.New(), payload)
	rec := httptest.NewRecorder()

	h.CreateTrip(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, got, 12)

	// The simple query protocol cannot encode plain structs, so the jsonb
	// columns must be bound as marshalled strings.
	travelersArg, ok := got[5].(string)
	require.True(t, ok, "travelers bound as %T, want string", got[5])
	assert.JSONEq(t, `{"adults":2,"children":0}`, travelersArg)

	estimateArg, ok := got[8].(string)
	require.True(t, ok, "budget estimate bound as %T, want string", got[8])
	var breakdown budget.Breakdown
	require.NoError(t, json.Unmarshal([]byte(estimateArg), &breakdown))
	assert.Equal(t, float64(2020), breakdown.Total)
}

func estimateRequest(t *testing.T, body any, authed bool) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/trips/budget-estimate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req = req.WithContext(utils.WithIdentity(req.Context(), uuid.New(), "traveler@example.com"))
	}
	return req
}

func TestBudgetEstimateComputesBreakdown(t *testing.T) {
	h := NewTripsHandler(nil, &config.Config{})

	req := estimateRequest(t, dto.BudgetEstimateRequest{
		Destination: "France",
		Duration:    4,
		Travelers:   budget.Travelers{Adults: 2},
	}, true)
	rec := httptest.NewRecorder()

	h.BudgetEstimate(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BudgetEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "EUR", resp.BudgetEstimate.Currency)
	assert.Equal(t, float64(2020), resp.BudgetEstimate.Total)
	assert.Len(t, resp.BudgetEstimate.Categories, 5)
}

func TestBudgetEstimateRequiresAuth(t *testing.T) {
	h := NewTripsHandler(nil, &config.Config{})

	req := estimateRequest(t, dto.BudgetEstimateRequest{Destination: "japan", Duration: 3}, false)
	rec := httptest.NewRecorder()

	h.BudgetEstimate(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBudgetEstimateRejectsNegatives(t *testing.T) {
	h := NewTripsHandler(nil, &config.Config{})

	cases := []dto.BudgetEstimateRequest{
		{Destination: "japan", Duration: -1},
		{Destination: "japan", Duration: 3, Travelers: budget.Travelers{Adults: -2}},
		{Destination: "japan", Duration: 3, Travelers: budget.Travelers{Children: -1}},
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		h.BudgetEstimate(rec, estimateRequest(t, body, true))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestBudgetEstimateZeroInputsGiveEmptyBreakdown(t *testing.T) {
	h := NewTripsHandler(nil, &config.Config{})

	req := estimateRequest(t, dto.BudgetEstimateRequest{Destination: "thailand"}, true)
	rec := httptest.NewRecorder()

	h.BudgetEstimate(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BudgetEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.BudgetEstimate.Total)
	assert.Empty(t, resp.BudgetEstimate.Categories)
}

func TestBudgetEstimateRejectsNonPost(t *testing.T) {
	h := NewTripsHandler(nil, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/trips/budget-estimate", nil)
	rec := httptest.NewRecorder()

	h.BudgetEstimate(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
