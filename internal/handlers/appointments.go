package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"SCHEDULING_PLATFORM_BACK-END/internal/dto"
	"SCHEDULING_PLATFORM_BACK-END/internal/models"
	"SCHEDULING_PLATFORM_BACK-END/internal/utils"
)

// AppointmentsHandler manages appointment scheduling
type AppointmentsHandler struct {
	db DB
}

// NewAppointmentsHandler creates a new AppointmentsHandler
func NewAppointmentsHandler(db DB) *AppointmentsHandler {
	return &AppointmentsHandler{db: db}
}

// CreateAppointment handles POST /appointments
// @Summary Schedule an appointment
// @Description Always appends a new appointment. user_id is not checked against users.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body dto.CreateAppointmentRequest true "Appointment payload"
// @Success 201 {object} dto.CreateAppointmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentsHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	appt, err := h.create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateAppointmentResponse{
		Message: "Appointment scheduled successfully!",
		ID:      appt.ID,
	})
}

func (h *AppointmentsHandler) create(ctx context.Context, req dto.CreateAppointmentRequest) (*models.Appointment, error) {
	userID := strings.TrimSpace(string(req.UserID))
	date := strings.TrimSpace(req.Date)
	if userID == "" || date == "" {
		return nil, ErrMissingFields
	}

	when, err := utils.ParseDate(date)
	if err != nil {
		return nil, validationError("Invalid date", err.Error())
	}

	appt := &models.Appointment{
		UserID:      userID,
		Date:        when,
		Description: req.Description,
	}

	err = h.db.QueryRow(ctx,
		`INSERT INTO appointments (user_id, "date", description)
		 VALUES ($1, $2, $3) RETURNING id`,
		appt.UserID, appt.Date, appt.Description).Scan(&appt.ID)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return appt, nil
}
