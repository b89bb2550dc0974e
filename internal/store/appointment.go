package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"appointment-booking-api/internal/model"
)

// CreateAppointment inserts a booking with status=booked. The partial unique
// index on (doctor_id, date, time_slot) WHERE status='booked' makes the
// existence check and insert a single indivisible operation: of two racing
// bookings for the same slot, exactly one insert commits.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	const op = "store.CreateAppointment"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, user_id, doctor_id, date, time_slot, status)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.DoctorID, a.Date, a.TimeSlot, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	const op = "store.GetAppointment"

	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, doctor_id, date, time_slot, status, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.DoctorID, &a.Date, &a.TimeSlot, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAppointmentsForUser returns the user's appointments joined with their
// doctors, ordered by date ascending with ties broken by creation order.
func (s *Store) ListAppointmentsForUser(ctx context.Context, userID string) ([]model.AppointmentDetail, error) {
	const op = "store.ListAppointmentsForUser"

	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.doctor_id, a.date, a.time_slot, a.status,
		        a.created_at, a.updated_at, d.name, d.specialty
		 FROM appointments a
		 JOIN doctors d ON d.id = a.doctor_id
		 WHERE a.user_id = $1
		 ORDER BY a.date, a.created_at`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []model.AppointmentDetail
	for rows.Next() {
		var a model.AppointmentDetail
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.DoctorID, &a.Date, &a.TimeSlot, &a.Status,
			&a.CreatedAt, &a.UpdatedAt, &a.DoctorName, &a.DoctorSpecialty,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RescheduleAppointment moves an appointment to a new date/slot/status. The
// partial unique index re-checks slot occupancy atomically; the row being
// updated never conflicts with itself.
func (s *Store) RescheduleAppointment(ctx context.Context, id string, date time.Time, timeSlot, status string) (*model.Appointment, error) {
	const op = "store.RescheduleAppointment"

	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments
		 SET date=$2, time_slot=$3, status=$4, updated_at=NOW()
		 WHERE id=$1
		 RETURNING id, user_id, doctor_id, date, time_slot, status, created_at, updated_at`,
		id, date, timeSlot, status,
	).Scan(&a.ID, &a.UserID, &a.DoctorID, &a.Date, &a.TimeSlot, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// CancelAppointment soft-deletes: status flips to cancelled, which releases
// the slot for future bookings.
func (s *Store) CancelAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	const op = "store.CancelAppointment"

	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments SET status=$2, updated_at=NOW()
		 WHERE id=$1
		 RETURNING id, user_id, doctor_id, date, time_slot, status, created_at, updated_at`,
		id, model.StatusCancelled,
	).Scan(&a.ID, &a.UserID, &a.DoctorID, &a.Date, &a.TimeSlot, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
