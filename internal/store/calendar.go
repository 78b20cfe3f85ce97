package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agendly/internal/domain"
)

// BookingTx is the slice of the store available inside a per-professional
// transaction. The conflict scan and the write that depends on it both run
// against the same tx, under the professional's calendar lock.
type BookingTx interface {
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	GetAppointment(ctx context.Context, shopID, appointmentID uuid.UUID) (domain.Appointment, error)
	ListOccupying(ctx context.Context, professionalID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error)
}
