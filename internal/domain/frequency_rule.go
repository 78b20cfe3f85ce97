package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FrequencyRule defines the ideal return cadence for a service: a client who
// last completed the service IdealReturnDays ago is due back, and suggestions
// start AnticipationToleranceDays before that.
type FrequencyRule struct {
	bun.BaseModel `bun:"table:frequency_rules"`

	ID                        uuid.UUID `bun:"id,pk,type:uuid"`
	ShopID                    uuid.UUID `bun:"shop_id,notnull,type:uuid"`
	ServiceID                 uuid.UUID `bun:"service_id,notnull,type:uuid"`
	IdealReturnDays           int       `bun:"ideal_return_days,notnull"`
	AnticipationToleranceDays int       `bun:"anticipation_tolerance_days,notnull"`
	CreatedAt                 time.Time `bun:"created_at,notnull"`
	UpdatedAt                 time.Time `bun:"updated_at,notnull"`
}

func (r *FrequencyRule) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if r.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			r.ID = id
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		r.UpdatedAt = now
	}
	return nil
}
