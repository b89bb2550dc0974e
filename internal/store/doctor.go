package store

import (
	"context"
	"fmt"

	"appointment-booking-api/internal/model"
)

func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	const op = "store.ListDoctors"

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, specialty, available_slots, created_at
		 FROM doctors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.AvailableSlots, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DoctorOffersSlot reports whether the doctor exists and lists time_slot
// among its available slots. The two cases are deliberately not
// distinguished; callers reject both the same way.
func (s *Store) DoctorOffersSlot(ctx context.Context, doctorID, timeSlot string) (bool, error) {
	const op = "store.DoctorOffersSlot"

	var ok bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM doctors WHERE id = $1 AND $2 = ANY(available_slots)
		)`, doctorID, timeSlot,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}
