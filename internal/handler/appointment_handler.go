package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/response"
)

const dateLayout = "2006-01-02"

type createAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,timeslot"`
}

type updateAppointmentRequest struct {
	Date     string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot,omitempty" validate:"omitempty,timeslot"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=booked cancelled completed"`
}

type appointmentJSON struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DoctorID        string    `json:"doctor_id"`
	Date            string    `json:"date"`
	TimeSlot        string    `json:"time_slot"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	DoctorSpecialty string    `json:"doctor_specialty,omitempty"`
}

func toJSON(a *model.Appointment) appointmentJSON {
	return appointmentJSON{
		ID:        a.ID,
		UserID:    a.UserID,
		DoctorID:  a.DoctorID,
		Date:      a.Date.Format(dateLayout),
		TimeSlot:  a.TimeSlot,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type doctorJSON struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	AvailableSlots []string `json:"available_slots"`
}

// CreateAppointment books a slot: POST /api/v1/appointments/.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CreateAppointment"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)
	userID := middleware.UserID(r.Context())

	var req createAppointmentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	date, _ := time.Parse(dateLayout, req.Date)
	if date.Before(today()) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("appointment date must not be in the past"))
		return
	}

	// Doctor must exist and actually offer the slot. A race slipping past
	// this check is still caught by the unique index on insert.
	ok, err := h.store.DoctorOffersSlot(r.Context(), req.DoctorID, req.TimeSlot)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("time slot is not available or doctor not found"))
		return
	}

	a := &model.Appointment{
		ID:       uuid.New().String(),
		UserID:   userID,
		DoctorID: req.DoctorID,
		Date:     date,
		TimeSlot: req.TimeSlot,
		Status:   model.StatusBooked,
	}
	if err := h.store.CreateAppointment(r.Context(), a); err != nil {
		h.writeErr(w, r, err)
		return
	}

	log.Info("appointment booked",
		slog.String("appointment_id", a.ID), slog.String("doctor_id", a.DoctorID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(toJSON(a)))
}

// ListAppointments returns the caller's appointments: GET /api/v1/appointments/.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	list, err := h.store.ListAppointmentsForUser(r.Context(), userID)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	out := make([]appointmentJSON, 0, len(list))
	for i := range list {
		j := toJSON(&list[i].Appointment)
		j.DoctorName = list[i].DoctorName
		j.DoctorSpecialty = list[i].DoctorSpecialty
		out = append(out, j)
	}
	render.JSON(w, r, response.OKWithData(out))
}

// UpdateAppointment reschedules or changes status: PUT /api/v1/appointments/{id}.
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	const op = "handler.UpdateAppointment"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)
	userID := middleware.UserID(r.Context())

	a, ok := h.ownedAppointment(w, r)
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.Date == "" && req.TimeSlot == "" && req.Status == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("no fields to update"))
		return
	}
	if a.Status == model.StatusCancelled {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("cannot update a cancelled appointment"))
		return
	}

	date, timeSlot, status := a.Date, a.TimeSlot, a.Status
	if req.Date != "" {
		date, _ = time.Parse(dateLayout, req.Date)
		if date.Before(today()) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("appointment date must not be in the past"))
			return
		}
	}
	if req.TimeSlot != "" {
		timeSlot = req.TimeSlot
	}
	if req.Status != "" {
		status = req.Status
	}

	if timeSlot != a.TimeSlot {
		offered, err := h.store.DoctorOffersSlot(r.Context(), a.DoctorID, timeSlot)
		if err != nil {
			h.writeErr(w, r, err)
			return
		}
		if !offered {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("time slot is not available or doctor not found"))
			return
		}
	}

	updated, err := h.store.RescheduleAppointment(r.Context(), a.ID, date, timeSlot, status)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	log.Info("appointment updated",
		slog.String("appointment_id", a.ID), slog.String("user_id", userID))
	render.JSON(w, r, response.OKWithData(toJSON(updated)))
}

// CancelAppointment frees the slot: DELETE /api/v1/appointments/{id}.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CancelAppointment"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)

	a, ok := h.ownedAppointment(w, r)
	if !ok {
		return
	}
	if a.Status == model.StatusCancelled {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("appointment is already cancelled"))
		return
	}

	cancelled, err := h.store.CancelAppointment(r.Context(), a.ID)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	log.Info("appointment cancelled", slog.String("appointment_id", a.ID))
	render.JSON(w, r, response.OKWithData(toJSON(cancelled)))
}

// ListDoctors is the unauthenticated reference listing:
// GET /api/v1/appointments/doctors.
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.store.ListDoctors(r.Context())
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	out := make([]doctorJSON, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, doctorJSON{
			ID:             d.ID,
			Name:           d.Name,
			Specialty:      d.Specialty,
			AvailableSlots: d.AvailableSlots,
		})
	}
	render.JSON(w, r, response.OKWithData(out))
}

// ownedAppointment loads {id} and enforces ownership: unknown ids are 404,
// someone else's appointment is 403. A malformed id cannot name an
// appointment, so it is 404 as well.
func (h *Handler) ownedAppointment(w http.ResponseWriter, r *http.Request) (*model.Appointment, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("appointment not found"))
		return nil, false
	}

	a, err := h.store.GetAppointment(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err)
		return nil, false
	}
	if a.UserID != middleware.UserID(r.Context()) {
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("not allowed"))
		return nil, false
	}
	return a, true
}

// today truncates now to a calendar date so date-only comparisons are exact.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
