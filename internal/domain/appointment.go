package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"agendly/internal/schedule"
)

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Occupying reports whether an appointment in this status blocks its time
// interval for conflict and availability purposes.
func (s AppointmentStatus) Occupying() bool {
	return s == AppointmentPending || s == AppointmentConfirmed
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Pending may be confirmed or cancelled; confirmed may be completed or
// cancelled; completed and cancelled are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentPending:
		return next == AppointmentConfirmed || next == AppointmentCancelled
	case AppointmentConfirmed:
		return next == AppointmentCompleted || next == AppointmentCancelled
	default:
		return false
	}
}

// OccupyingStatuses lists the statuses that block an interval, in the order
// they are used in queries.
func OccupyingStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentPending, AppointmentConfirmed}
}

// Appointment is a booking of one client with one professional for one
// service. EndTime is derived from the service duration and never edited
// independently; InitialPriceCents is snapshotted from the service at
// creation and is not affected by later price changes.
type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID                uuid.UUID         `bun:"id,pk,type:uuid"`
	ShopID            uuid.UUID         `bun:"shop_id,notnull,type:uuid"`
	ClientID          uuid.UUID         `bun:"client_id,notnull,type:uuid"`
	ServiceID         uuid.UUID         `bun:"service_id,notnull,type:uuid"`
	ProfessionalID    uuid.UUID         `bun:"professional_id,notnull,type:uuid"`
	StartTime         time.Time         `bun:"start_time,notnull"`
	EndTime           time.Time         `bun:"end_time,notnull"`
	Status            AppointmentStatus `bun:"status,notnull"`
	InitialPriceCents int64             `bun:"initial_price_cents,notnull"`
	CreatedAt         time.Time         `bun:"created_at,notnull"`
	UpdatedAt         time.Time         `bun:"updated_at,notnull"`
}

// Interval returns the appointment's half-open time range.
func (a *Appointment) Interval() schedule.Interval {
	return schedule.Interval{Start: a.StartTime, End: a.EndTime}
}

// Busy returns the interval tagged with the appointment id, for conflict
// scans that may need to exclude the appointment itself.
func (a *Appointment) Busy() schedule.Busy {
	return schedule.Busy{AppointmentID: a.ID, Interval: a.Interval()}
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
