package handlers

import (
	"context"
	"errors"
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

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	db     DB
	config *config.Config
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(db DB, cfg *config.Config) *TripsHandler {
	return &TripsHandler{db: db, config: cfg}
}

// Trips dispatches by HTTP method for /api/trips
func (h *TripsHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateTrip(w, r)
	case http.MethodGet:
		// If path has an ID suffix, treat as detail
		if strings.HasPrefix(r.URL.Path, "/api/trips/") && len(r.URL.Path) > len("/api/trips/") {
			h.TripDetail(w, r)
			return
		}
		h.ListTrips(w, r)
	case http.MethodPut, http.MethodPatch:
		h.UpdateTrip(w, r)
	case http.MethodDelete:
		h.DeleteTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

const tripColumns = `id, user_id, destination, start_date, end_date, travelers, accommodation, special_requests, budget_estimate, status, created_at, updated_at`

func scanTrip(row pgx.Row) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Travelers, &t.Accommodation, &t.SpecialRequests, &t.BudgetEstimate,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Basic validation
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "destination, startDate, endDate are required")
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
	if endAt.Before(startAt) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "endDate cannot be before startDate")
		return
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

	duration := budget.InclusiveDays(startAt, endAt)
	estimate := budget.Calculate(req.Destination, duration, travelers)

	now := time.Now()
	trip := models.Trip{
		ID:              uuid.New(),
		UserID:          userID,
		Destination:     req.Destination,
		StartDate:       startAt,
		EndDate:         endAt,
		Travelers:       travelers,
		Accommodation:   accommodation,
		SpecialRequests: req.SpecialRequests,
		BudgetEstimate:  &estimate,
		Status:          models.TripStatusPlanned,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	travelersJSON, err := jsonArg(trip.Travelers)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error encoding trip")
		return
	}
	estimateJSON, err := jsonArg(trip.BudgetEstimate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error encoding trip")
		return
	}

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO trips (`+tripColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9::jsonb, $10, $11, $12)`,
		trip.ID, trip.UserID, trip.Destination, trip.StartDate, trip.EndDate,
		travelersJSON, trip.Accommodation, trip.SpecialRequests, estimateJSON,
		trip.Status, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error creating trip")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.TripResponse{
		Success: true,
		Message: "Trip created successfully",
		Trip:    trip,
	})
}

// ListTrips handles GET /api/trips, returning the caller's trips newest first
// @Summary List the caller's trips
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [get]
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT `+tripColumns+` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching trips")
		return
	}
	defer rows.Close()

	trips := make([]models.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching trips")
			return
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching trips")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{Success: true, Trips: trips})
}

// loadOwnedTrip fetches a trip by path id, enforcing existence and ownership.
// It writes the error response itself and reports success via ok.
func (h *TripsHandler) loadOwnedTrip(w http.ResponseWriter, r *http.Request, requesterID uuid.UUID) (models.Trip, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/trips/")
	tripID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip id must be a UUID")
		return models.Trip{}, false
	}

	trip, err := scanTrip(h.db.QueryRow(context.Background(),
		`SELECT `+tripColumns+` FROM trips WHERE id = $1`, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error fetching trip")
		}
		return models.Trip{}, false
	}

	if trip.UserID != requesterID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Access denied")
		return models.Trip{}, false
	}

	return trip, true
}

// TripDetail handles GET /api/trips/{trip_id}
// @Summary Get trip detail
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [get]
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	trip, ok := h.loadOwnedTrip(w, r, requesterID)
	if !ok {
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripResponse{Success: true, Trip: trip})
}

// UpdateTrip handles PUT/PATCH /api/trips/{trip_id}. Partial merge: absent
// fields keep their stored values. The budget estimate is recomputed whenever
// destination, dates or travelers appear in the payload.
// @Summary Update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Update payload"
// @Success 200 {object} dto.TripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [put]
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	cur, ok := h.loadOwnedTrip(w, r, requesterID)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Prepare new values, default to current if nil
	destination := cur.Destination
	if req.Destination != nil {
		destination = strings.TrimSpace(*req.Destination)
		if destination == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "destination cannot be empty")
			return
		}
	}

	startDate := cur.StartDate
	if req.StartDate != nil {
		t, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "startDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
			return
		}
		startDate = t
	}
	endDate := cur.EndDate
	if req.EndDate != nil {
		t, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "endDate must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
			return
		}
		endDate = t
	}
	if endDate.Before(startDate) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "endDate cannot be before startDate")
		return
	}

	travelers := cur.Travelers
	if req.Travelers != nil {
		if req.Travelers.Adults < 1 || req.Travelers.Children < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "travelers must include at least one adult")
			return
		}
		travelers = *req.Travelers
	}

	accommodation := cur.Accommodation
	if req.Accommodation != nil {
		accommodation = strings.ToLower(strings.TrimSpace(*req.Accommodation))
		if !models.ValidAccommodation(accommodation) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "accommodation must be standard, deluxe, or luxury")
			return
		}
	}

	specialRequests := cur.SpecialRequests
	if req.SpecialRequests != nil {
		specialRequests = *req.SpecialRequests
	}

	status := cur.Status
	if req.Status != nil {
		status = strings.ToLower(strings.TrimSpace(*req.Status))
		if !models.ValidTripStatus(status) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be planned, booked, in-progress, completed, or cancelled")
			return
		}
	}

	// Recompute the estimate when any budget-relevant field changed
	estimate := cur.BudgetEstimate
	if req.Destination != nil || req.StartDate != nil || req.EndDate != nil || req.Travelers != nil {
		duration := budget.InclusiveDays(startDate, endDate)
		b := budget.Calculate(destination, duration, travelers)
		estimate = &b
	}

	travelersJSON, err := jsonArg(travelers)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error encoding trip")
		return
	}
	var estimateJSON any
	if estimate != nil {
		s, err := jsonArg(estimate)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", "Error encoding trip")
			return
		}
		estimateJSON = s
	}

	now := time.Now()
	_, err = h.db.Exec(context.Background(),
		`UPDATE trips
            SET destination = $1,
                start_date = $2,
                end_date = $3,
                travelers = $4::jsonb,
                accommodation = $5,
                special_requests = $6,
                budget_estimate = $7::jsonb,
                status = $8,
                updated_at = $9
          WHERE id = $10`,
		destination, startDate, endDate, travelersJSON, accommodation,
		specialRequests, estimateJSON, status, now, cur.ID,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error updating trip")
		return
	}

	updated := cur
	updated.Destination = destination
	updated.StartDate = startDate
	updated.EndDate = endDate
	updated.Travelers = travelers
	updated.Accommodation = accommodation
	updated.SpecialRequests = specialRequests
	updated.BudgetEstimate = estimate
	updated.Status = status
	updated.UpdatedAt = now

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripResponse{
		Success: true,
		Message: "Trip updated successfully",
		Trip:    updated,
	})
}

// DeleteTrip handles DELETE /api/trips/{trip_id} (hard delete)
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	trip, ok := h.loadOwnedTrip(w, r, requesterID)
	if !ok {
		return
	}

	if _, err := h.db.Exec(context.Background(), `DELETE FROM trips WHERE id = $1`, trip.ID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Error deleting trip")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Trip deleted successfully"})
}

// BudgetEstimate handles POST /api/trips/budget-estimate. It computes a
// breakdown without persisting anything.
// @Summary Estimate a trip budget
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.BudgetEstimateRequest true "Estimate inputs"
// @Success 200 {object} dto.BudgetEstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/trips/budget-estimate [post]
func (h *TripsHandler) BudgetEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.BudgetEstimateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	if req.Duration < 0 || req.Travelers.Adults < 0 || req.Travelers.Children < 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "duration and travelers cannot be negative")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.BudgetEstimateResponse{
		Success:        true,
		BudgetEstimate: budget.Calculate(req.Destination, req.Duration, req.Travelers),
	})
}
