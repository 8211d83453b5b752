package handlers

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tripbook/internal/budget"
	"tripbook/internal/config"
	"tripbook/internal/dto"
	"tripbook/internal/models"
	"tripbook/internal/utils"
)

// fallbackDailyCost is charged when a country has no daily budget on record.
const fallbackDailyCost = 100

// BookingsHandler manages booking-related endpoints
type BookingsHandler struct {
	db           DB
	config       *config.Config
	emailService *utils.EmailService
}

// NewBookingsHandler creates a new BookingsHandler
func NewBookingsHandler(db DB, cfg *config.Config) *BookingsHandler {
	return &BookingsHandler{
		db:           db,
		config:       cfg,
		emailService: utils.NewEmailService(&cfg.Email),
	}
}

const bookingColumns = `id, user_id, country_id, reference, start_date, end_date, travelers, budget, accommodation, itinerary, status, payment_status, total_cost, special_requests, created_at, updated_at`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.CountryID, &b.Reference, &b.StartDate, &b.EndDate,
		&b.Travelers, &b.Budget, &b.Accommodation, &b.Itinerary, &b.Status,
		&b.PaymentStatus, &b.TotalCost, &b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// NewBookingReference builds a human-readable booking reference. The TRV
// prefix and timestamp are kept for compatibility with existing references;
// the random suffix replaces the old count-based tail, which could collide
// under concurrent creation.
func NewBookingReference() string {
	u := uuid.New()
	return fmt.Sprintf("TRV%d%s", time.Now().UnixMilli(), strings.ToUpper(hex.EncodeToString(u[:4])))
}

// Bookings dispatches by HTTP method for /api/bookings
func (h *BookingsHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateBooking(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// BookingByID dispatches for /api/bookings/{id} and /api/bookings/{id}/status
func (h *BookingsHandler) BookingByID(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status") {
		h.UpdateBookingStatus(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.BookingDetail(w, r)
	case http.MethodDelete:
		h.CancelBooking(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateBooking handles POST /api/bookings
// @Summary Create a booking for a country stay
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings [post]
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	if req.CountryID == "" || req.StartDate == "" || req.EndDate == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Country, start date, and end date are required")
		return
	}

	countryID, err := uuid.Parse(req.CountryID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "countryId must be a UUID")
		return
	}

	startAt, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "startDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	endAt, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "endDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	if !endAt.After(startAt) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "End date must be after start date")
		return
	}

	// The booked country must exist; its daily rate drives the cost
	var countryName string
	var dailyBudget float64
	err = h.db.QueryRow(context.Background(),
		`SELECT name, daily_budget FROM countries WHERE id = $1`, countryID).Scan(&countryName, &dailyBudget)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Country not found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching country")
		}
		return
	}
	if dailyBudget <= 0 {
		dailyBudget = fallbackDailyCost
	}

	travelers := budget.Travelers{Adults: 1}
	if req.Travelers != nil {
		if req.Travelers.Adults < 1 || req.Travelers.Children < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "travelers must include at least one adult")
			return
		}
		travelers = *req.Travelers
	}

	accommodation := strings.ToLower(strings.TrimSpace(req.Accommodation))
	if accommodation == "" {
		accommodation = models.AccommodationStandard
	}
	if !models.ValidAccommodation(accommodation) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "accommodation must be standard, deluxe, or luxury")
		return
	}

	duration := budget.SpanDays(startAt, endAt)
	totalCost := dailyBudget * float64(duration) * float64(travelers.Adults+travelers.Children)

	bookingBudget := totalCost
	if req.Budget != nil && *req.Budget > 0 {
		bookingBudget = *req.Budget
	}

	now := time.Now()
	booking := models.Booking{
		ID:              uuid.New(),
		UserID:          userID,
		CountryID:       countryID,
		Reference:       NewBookingReference(),
		StartDate:       startAt,
		EndDate:         endAt,
		Travelers:       travelers,
		Budget:          bookingBudget,
		Accommodation:   accommodation,
		Itinerary:       budget.GenerateItinerary(startAt, endAt),
		Status:          models.BookingStatusPending,
		PaymentStatus:   models.PaymentPending,
		TotalCost:       totalCost,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	travelersJSON, err := jsonArg(booking.Travelers)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error encoding booking")
		return
	}
	itineraryJSON, err := jsonArg(booking.Itinerary)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error encoding booking")
		return
	}

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO bookings (`+bookingColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10::jsonb, $11, $12, $13, $14, $15, $16)`,
		booking.ID, booking.UserID, booking.CountryID, booking.Reference,
		booking.StartDate, booking.EndDate, travelersJSON, booking.Budget,
		booking.Accommodation, itineraryJSON, booking.Status, booking.PaymentStatus,
		booking.TotalCost, booking.SpecialRequests, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error creating booking")
		return
	}

	if email, ok := utils.GetEmailFromContext(r.Context()); ok && h.config.IsEmailConfigured() {
		go func() {
			if err := h.emailService.SendBookingConfirmation(email, booking.Reference, countryName,
				booking.StartDate, booking.EndDate, len(booking.Itinerary)); err != nil {
				log.Printf("booking confirmation email to %s failed: %v", email, err)
			}
		}()
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.BookingResponse{
		Success:            true,
		Message:            "Booking created successfully!",
		Booking:            booking,
		ConfirmationNumber: booking.Reference,
	})
}

// MyBookings handles GET /api/bookings/my-bookings
// @Summary List the caller's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BookingListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings/my-bookings [get]
func (h *BookingsHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching bookings")
		return
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching bookings")
			return
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching bookings")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.BookingListResponse{Success: true, Bookings: bookings})
}

// BookingDetail handles GET /api/bookings/{id}
// @Summary Get booking detail
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/bookings/{id} [get]
func (h *BookingsHandler) BookingDetail(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	bookingID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/bookings/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid booking id", "booking id must be a UUID")
		return
	}

	booking, err := scanBooking(h.db.QueryRow(context.Background(),
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Booking not found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching booking")
		}
		return
	}

	if booking.UserID != requesterID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Access denied")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.BookingResponse{Success: true, Booking: booking})
}

// loadBookingScopedToOwner fetches a booking by id and owner in one query, so
// non-owners see the same NotFound as a missing record.
func (h *BookingsHandler) loadBookingScopedToOwner(w http.ResponseWriter, idStr string, ownerID uuid.UUID) (models.Booking, bool) {
	bookingID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid booking id", "booking id must be a UUID")
		return models.Booking{}, false
	}

	booking, err := scanBooking(h.db.QueryRow(context.Background(),
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 AND user_id = $2`, bookingID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Booking not found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching booking")
		}
		return models.Booking{}, false
	}

	return booking, true
}

// UpdateBookingStatus handles PATCH /api/bookings/{id}/status
// @Summary Update booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param payload body dto.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings/{id}/status [patch]
func (h *BookingsHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/bookings/"), "/status")

	var req dto.UpdateBookingStatusRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}
	if !models.ValidBookingStatus(req.Status) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be Pending, Confirmed, Cancelled, or Completed")
		return
	}

	booking, ok := h.loadBookingScopedToOwner(w, idStr, requesterID)
	if !ok {
		return
	}

	now := time.Now()
	if _, err := h.db.Exec(context.Background(),
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		req.Status, now, booking.ID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error updating booking")
		return
	}

	booking.Status = req.Status
	booking.UpdatedAt = now

	utils.WriteJSONResponse(w, http.StatusOK, dto.BookingResponse{
		Success: true,
		Message: "Booking status updated",
		Booking: booking,
	})
}

// CancelBooking handles DELETE /api/bookings/{id}. Bookings are never
// removed; cancellation is a status transition.
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/bookings/{id} [delete]
func (h *BookingsHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	booking, ok := h.loadBookingScopedToOwner(w, idStr, requesterID)
	if !ok {
		return
	}

	if _, err := h.db.Exec(context.Background(),
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		models.BookingStatusCancelled, time.Now(), booking.ID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error cancelling booking")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Booking cancelled successfully"})
}
