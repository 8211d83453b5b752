package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
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

var bookingReferencePattern = regexp.MustCompile(`^TRV\d{13}[0-9A-F]{8}$`)

func TestNewBookingReferenceFormat(t *testing.T) {
	ref := NewBookingReference()
	assert.Regexp(t, bookingReferencePattern, ref)
}

func TestNewBookingReferenceUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref := NewBookingReference()
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

// bookingRow serves a stored booking through the scanBooking column order.
func bookingRow(b models.Booking) pgx.Row {
	return rowFunc(func(dest ...any) error {
		*dest[0].(*uuid.UUID) = b.ID
		*dest[1].(*uuid.UUID) = b.UserID
		*dest[2].(*uuid.UUID) = b.CountryID
		*dest[3].(*string) = b.Reference
		*dest[4].(*time.Time) = b.StartDate
		*dest[5].(*time.Time) = b.EndDate
		*dest[6].(*budget.Travelers) = b.Travelers
		*dest[7].(*float64) = b.Budget
		*dest[8].(*string) = b.Accommodation
		*dest[9].(*[]budget.DayPlan) = b.Itinerary
		*dest[10].(*string) = b.Status
		*dest[11].(*string) = b.PaymentStatus
		*dest[12].(*float64) = b.TotalCost
		*dest[13].(*string) = b.SpecialRequests
		*dest[14].(*time.Time) = b.CreatedAt
		*dest[15].(*time.Time) = b.UpdatedAt
		return nil
	})
}

func authedBookingRequest(method, target string, userID uuid.UUID, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(utils.WithIdentity(req.Context(), userID, "traveler@example.com"))
}

func TestBookingDetailNotFound(t *testing.T) {
	db := &fakeDB{queryRow: func(string, ...any) pgx.Row { return errRow(pgx.ErrNoRows) }}
	h := NewBookingsHandler(db, &config.Config{})

	req := authedBookingRequest(http.MethodGet, "/api/bookings/"+uuid.NewString(), uuid.New(), nil)
	rec := httptest.NewRecorder()

	h.BookingDetail(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingDetailForbiddenForNonOwner(t *testing.T) {
	stored := models.Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CountryID: uuid.New(),
		Reference: NewBookingReference(),
		Status:    models.BookingStatusPending,
	}
	db := &fakeDB{queryRow: func(string, ...any) pgx.Row { return bookingRow(stored) }}
	h := NewBookingsHandler(db, &config.Config{})

	req := authedBookingRequest(http.MethodGet, "/api/bookings/"+stored.ID.String(), uuid.New(), nil)
	rec := httptest.NewRecorder()

	h.BookingDetail(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	// The record must not leak to the non-owner
	assert.NotContains(t, rec.Body.String(), stored.Reference)
}

func TestCancelBookingNotFoundForNonOwner(t *testing.T) {
	// The owner-scoped query returns no rows for someone else's booking
	db := &fakeDB{queryRow: func(string, ...any) pgx.Row { return errRow(pgx.ErrNoRows) }}
	h := NewBookingsHandler(db, &config.Config{})

	req := authedBookingRequest(http.MethodDelete, "/api/bookings/"+uuid.NewString(), uuid.New(), nil)
	rec := httptest.NewRecorder()

	h.CancelBooking(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookingBindsJSONBAsStrings(t *testing.T) {
	var got []any
	db := &fakeDB{
		queryRow: func(sql string, args ...any) pgx.Row {
			return rowFunc(func(dest ...any) error {
				*dest[0].(*string) = "Japan"
				*dest[1].(*float64) = 100
				return nil
			})
		},
		exec: func(sql string, args ...any) (pgconn.CommandTag, error) {
			got = args
			return pgconn.CommandTag{}, nil
		},
	}
	h := NewBookingsHandler(db, &config.Config{})

	payload, err := json.Marshal(dto.CreateBookingRequest{
		CountryID: uuid.NewString(),
		StartDate: "2024-06-01",
		EndDate:   "2024-06-04",
		Travelers: &budget.Travelers{Adults: 2, Children: 1},
	})
	require.NoError(t, err)

	req := authedBookingRequest(http.MethodPost, "/api/bookings", uuid.New(), payload)
	rec := httptest.NewRecorder()

	h.CreateBooking(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, got, 16)

	// The simple query protocol cannot encode plain structs, so the jsonb
	// columns must be bound as marshalled strings.
	travelersArg, ok := got[6].(string)
	require.True(t, ok, "travelers bound as %T, want string", got[6])
	assert.JSONEq(t, `{"adults":2,"children":1}`, travelersArg)

	itineraryArg, ok := got[9].(string)
	require.True(t, ok, "itinerary bound as %T, want string", got[9])
	var days []budget.DayPlan
	require.NoError(t, json.Unmarshal([]byte(itineraryArg), &days))
	assert.Len(t, days, 3)

	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// 3 span days x 100/day x 3 travelers
	assert.Equal(t, float64(900), resp.Booking.TotalCost)
}
