package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MinServiceDurationMinutes is the shortest bookable service.
const MinServiceDurationMinutes = 5

// Service is a bookable offering of a shop. Prices are stored as integer
// cents; DurationMinutes drives the appointment end derivation and the slot
// step during availability search.
type Service struct {
	bun.BaseModel `bun:"table:services"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	ShopID          uuid.UUID `bun:"shop_id,notnull,type:uuid"`
	Name            string    `bun:"name,notnull"`
	DurationMinutes int       `bun:"duration_minutes,notnull"`
	PriceCents      int64     `bun:"price_cents,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}

func (s *Service) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

// ServiceProfessional links a service to a professional qualified to perform
// it. Both sides always belong to the same shop.
type ServiceProfessional struct {
	bun.BaseModel `bun:"table:service_professionals"`

	ServiceID      uuid.UUID `bun:"service_id,pk,type:uuid"`
	ProfessionalID uuid.UUID `bun:"professional_id,pk,type:uuid"`
}
