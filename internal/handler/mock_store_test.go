package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
)

// MockStore implements the handler Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]model.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) DoctorOffersSlot(ctx context.Context, doctorID, timeSlot string) (bool, error) {
	args := m.Called(ctx, doctorID, timeSlot)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStore) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListAppointmentsForUser(ctx context.Context, userID string) ([]model.AppointmentDetail, error) {
	args := m.Called(ctx, userID)
	if l := args.Get(0); l != nil {
		return l.([]model.AppointmentDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) RescheduleAppointment(ctx context.Context, id string, date time.Time, timeSlot, status string) (*model.Appointment, error) {
	args := m.Called(ctx, id, date, timeSlot, status)
	if a := args.Get(0); a != nil {
		return a.(*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CancelAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*model.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

const testSecret = "test-secret-1234567890"

func newTestRouter(t *testing.T, st *MockStore) (http.Handler, *auth.TokenMaker) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tokens := auth.NewTokenMaker(testSecret, 15*time.Minute)
	h := New(log, st, tokens, 8)
	t.Cleanup(h.Close)
	return h.Routes(), tokens
}

// bearer issues a token for uid and primes the mock so the auth middleware
// resolves the subject.
func bearer(t *testing.T, st *MockStore, tokens *auth.TokenMaker, uid string) string {
	t.Helper()
	st.On("UserByID", mock.Anything, uid).Return(&model.User{ID: uid}, nil)
	tok, err := tokens.Issue(uid)
	require.NoError(t, err)
	return "Bearer " + tok
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}
