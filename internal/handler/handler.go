// Package handler implements the HTTP surface: signup/signin and the
// JWT-guarded appointment CRUD.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/response"
	"appointment-booking-api/internal/store"
)

// Store is the persistence surface the handlers need. *store.Store
// implements it; tests substitute mocks.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)

	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	DoctorOffersSlot(ctx context.Context, doctorID, timeSlot string) (bool, error)

	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	ListAppointmentsForUser(ctx context.Context, userID string) ([]model.AppointmentDetail, error)
	RescheduleAppointment(ctx context.Context, id string, date time.Time, timeSlot, status string) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (*model.Appointment, error)
}

type Handler struct {
	log            *slog.Logger
	store          Store
	tokens         *auth.TokenMaker
	passwordMinLen int
	authLimiter    *middleware.RateLimiter
}

func New(log *slog.Logger, st Store, tokens *auth.TokenMaker, passwordMinLen int) *Handler {
	return &Handler{
		log:            log,
		store:          st,
		tokens:         tokens,
		passwordMinLen: passwordMinLen,
		authLimiter:    middleware.NewRateLimiter(5, 10),
	}
}

// Close releases background resources held by the handler.
func (h *Handler) Close() {
	h.authLimiter.Stop()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return isTimeSlot(fl.Field().String())
	})
	return v
}

// isTimeSlot accepts "HH:MM-HH:MM" with a start strictly before the end.
func isTimeSlot(s string) bool {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return false
	}
	start, err := time.Parse("15:04", from)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", to)
	if err != nil {
		return false
	}
	return end.After(start)
}

// writeErr maps store sentinels onto the HTTP error taxonomy. Anything
// unrecognized is a persistence failure: logged and surfaced as 500,
// never retried.
func (h *Handler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	var msg string

	switch {
	case errors.Is(err, store.ErrEmailTaken):
		code, msg = http.StatusConflict, "email already registered"
	case errors.Is(err, store.ErrSlotTaken):
		code, msg = http.StatusConflict, "time slot already booked"
	case errors.Is(err, store.ErrSlotUnavailable):
		code, msg = http.StatusConflict, "time slot is not available or doctor not found"
	case errors.Is(err, store.ErrNotFound):
		code, msg = http.StatusNotFound, "appointment not found"
	default:
		h.log.Error("store failure", slog.Any("err", err))
		code, msg = http.StatusInternalServerError, "internal error"
	}

	w.WriteHeader(code)
	render.JSON(w, r, response.Error(msg))
}
