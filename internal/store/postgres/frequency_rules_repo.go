package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"agendly/internal/domain"
)

type FrequencyRuleRepo struct {
	db *bun.DB
}

func NewFrequencyRuleRepo(db *bun.DB) *FrequencyRuleRepo {
	return &FrequencyRuleRepo{db: db}
}

func (r *FrequencyRuleRepo) Upsert(ctx context.Context, rule domain.FrequencyRule) (domain.FrequencyRule, error) {
	m := rule
	_, err := r.db.NewInsert().
		Model(&m).
		On("CONFLICT (shop_id, service_id) DO UPDATE").
		Set("ideal_return_days = EXCLUDED.ideal_return_days").
		Set("anticipation_tolerance_days = EXCLUDED.anticipation_tolerance_days").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return domain.FrequencyRule{}, mapPgError(err)
	}
	return m, nil
}

func (r *FrequencyRuleRepo) List(ctx context.Context, shopID uuid.UUID) ([]domain.FrequencyRule, error) {
	var rows []domain.FrequencyRule
	err := r.db.NewSelect().
		Model(&rows).
		Where("shop_id = ?", shopID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
