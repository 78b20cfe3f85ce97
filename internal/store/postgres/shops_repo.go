package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"agendly/internal/domain"
	"agendly/internal/store"
)

type ShopRepo struct {
	db *bun.DB
}

func NewShopRepo(db *bun.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

func (r *ShopRepo) GetByID(ctx context.Context, shopID uuid.UUID) (domain.Shop, error) {
	var s domain.Shop
	err := r.db.NewSelect().
		Model(&s).
		Where("id = ?", shopID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Shop{}, store.ErrNotFound
		}
		return domain.Shop{}, err
	}
	return s, nil
}

func (r *ShopRepo) GetBySlug(ctx context.Context, slug string) (domain.Shop, error) {
	var s domain.Shop
	err := r.db.NewSelect().
		Model(&s).
		Where("booking_slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Shop{}, store.ErrNotFound
		}
		return domain.Shop{}, err
	}
	return s, nil
}
