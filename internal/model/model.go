package model

import "time"

// Appointment statuses. Only "booked" counts toward slot occupancy.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Appointment struct {
	ID        string
	UserID    string
	DoctorID  string
	Date      time.Time // calendar date, time-of-day is zero
	TimeSlot  string    // "HH:MM-HH:MM"
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetail is an appointment joined with its doctor,
// as returned by the listing endpoint.
type AppointmentDetail struct {
	Appointment
	DoctorName      string
	DoctorSpecialty string
}

type Doctor struct {
	ID             string
	Name           string
	Specialty      string
	AvailableSlots []string
	CreatedAt      time.Time
}
