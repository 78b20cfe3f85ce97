package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agendly/internal/domain"
)

// AppointmentRepository persists appointments and serializes writes per
// professional. Every write goes through InProfessionalTransaction so the
// conflict check and the insert happen under the same per-professional lock.
type AppointmentRepository interface {
	Get(ctx context.Context, shopID, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, shopID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error)

	// ListOccupying returns the occupying (pending or confirmed)
	// appointments of a professional intersecting [windowStart, windowEnd).
	ListOccupying(ctx context.Context, professionalID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error)

	// InProfessionalTransaction runs fn inside a transaction that holds the
	// professional's calendar lock for its whole duration.
	InProfessionalTransaction(ctx context.Context, professionalID uuid.UUID, fn func(ctx context.Context, tx BookingTx) error) error

	// LatestCompletedVisits returns, per (client, service) pair of the shop,
	// the most recent completed appointment.
	LatestCompletedVisits(ctx context.Context, shopID uuid.UUID) ([]CompletedVisit, error)
}

// CompletedVisit is the latest completed appointment for a (client, service)
// pair, joined with the names the suggestion report needs.
type CompletedVisit struct {
	ClientID    uuid.UUID
	ClientName  string
	ServiceID   uuid.UUID
	ServiceName string
	CompletedAt time.Time
}

// ShopRepository looks up tenants.
type ShopRepository interface {
	GetByID(ctx context.Context, shopID uuid.UUID) (domain.Shop, error)
	GetBySlug(ctx context.Context, slug string) (domain.Shop, error)
}

// ProfessionalRepository manages a shop's professionals.
type ProfessionalRepository interface {
	Create(ctx context.Context, p domain.Professional) (domain.Professional, error)
	Update(ctx context.Context, p domain.Professional) (domain.Professional, error)
	Get(ctx context.Context, shopID, professionalID uuid.UUID) (domain.Professional, error)
	List(ctx context.Context, shopID uuid.UUID) ([]domain.Professional, error)
}

// ServiceRepository manages a shop's services and the set of professionals
// qualified to perform each one.
type ServiceRepository interface {
	Create(ctx context.Context, s domain.Service) (domain.Service, error)
	Update(ctx context.Context, s domain.Service) (domain.Service, error)
	Get(ctx context.Context, shopID, serviceID uuid.UUID) (domain.Service, error)
	List(ctx context.Context, shopID uuid.UUID) ([]domain.Service, error)

	// SetQualifiedProfessionals replaces the qualified set, silently
	// dropping ids that do not belong to the shop.
	SetQualifiedProfessionals(ctx context.Context, shopID, serviceID uuid.UUID, professionalIDs []uuid.UUID) error
	QualifiedProfessionals(ctx context.Context, serviceID uuid.UUID) ([]domain.Professional, error)
	IsQualified(ctx context.Context, serviceID, professionalID uuid.UUID) (bool, error)
}

// ClientRepository manages a shop's clients.
type ClientRepository interface {
	Create(ctx context.Context, c domain.Client) (domain.Client, error)
	Get(ctx context.Context, shopID, clientID uuid.UUID) (domain.Client, error)
	List(ctx context.Context, shopID uuid.UUID) ([]domain.Client, error)

	// GetOrCreateByPhone returns the shop's client with the given phone,
	// creating it from c when absent.
	GetOrCreateByPhone(ctx context.Context, c domain.Client) (domain.Client, error)
}

// FrequencyRuleRepository manages per-service return-visit rules.
type FrequencyRuleRepository interface {
	Upsert(ctx context.Context, rule domain.FrequencyRule) (domain.FrequencyRule, error)
	List(ctx context.Context, shopID uuid.UUID) ([]domain.FrequencyRule, error)
}
