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

type ProfessionalRepo struct {
	db *bun.DB
}

func NewProfessionalRepo(db *bun.DB) *ProfessionalRepo {
	return &ProfessionalRepo{db: db}
}

func (r *ProfessionalRepo) Create(ctx context.Context, p domain.Professional) (domain.Professional, error) {
	m := p
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Professional{}, mapPgError(err)
	}
	return m, nil
}

func (r *ProfessionalRepo) Update(ctx context.Context, p domain.Professional) (domain.Professional, error) {
	m := p
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "phone", "active", "updated_at").
		WherePK().
		Where("shop_id = ?", p.ShopID).
		Exec(ctx)
	if err != nil {
		return domain.Professional{}, mapPgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Professional{}, err
	}
	if affected == 0 {
		return domain.Professional{}, store.ErrNotFound
	}
	return m, nil
}

func (r *ProfessionalRepo) Get(ctx context.Context, shopID, professionalID uuid.UUID) (domain.Professional, error) {
	var p domain.Professional
	err := r.db.NewSelect().
		Model(&p).
		Where("shop_id = ?", shopID).
		Where("id = ?", professionalID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Professional{}, store.ErrNotFound
		}
		return domain.Professional{}, err
	}
	return p, nil
}

func (r *ProfessionalRepo) List(ctx context.Context, shopID uuid.UUID) ([]domain.Professional, error) {
	var rows []domain.Professional
	err := r.db.NewSelect().
		Model(&rows).
		Where("shop_id = ?", shopID).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type ServiceRepo struct {
	db *bun.DB
}

func NewServiceRepo(db *bun.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, s domain.Service) (domain.Service, error) {
	m := s
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Service{}, mapPgError(err)
	}
	return m, nil
}

func (r *ServiceRepo) Update(ctx context.Context, s domain.Service) (domain.Service, error) {
	m := s
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "duration_minutes", "price_cents", "updated_at").
		WherePK().
		Where("shop_id = ?", s.ShopID).
		Exec(ctx)
	if err != nil {
		return domain.Service{}, mapPgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Service{}, err
	}
	if affected == 0 {
		return domain.Service{}, store.ErrNotFound
	}
	return m, nil
}

func (r *ServiceRepo) Get(ctx context.Context, shopID, serviceID uuid.UUID) (domain.Service, error) {
	var s domain.Service
	err := r.db.NewSelect().
		Model(&s).
		Where("shop_id = ?", shopID).
		Where("id = ?", serviceID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, store.ErrNotFound
		}
		return domain.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepo) List(ctx context.Context, shopID uuid.UUID) ([]domain.Service, error) {
	var rows []domain.Service
	err := r.db.NewSelect().
		Model(&rows).
		Where("shop_id = ?", shopID).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetQualifiedProfessionals replaces the service's qualified set inside one
// transaction. Professional ids from other shops are filtered out rather
// than rejected, mirroring how the admin UI submits the whole set.
func (r *ServiceRepo) SetQualifiedProfessionals(ctx context.Context, shopID, serviceID uuid.UUID, professionalIDs []uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*domain.Service)(nil)).
			Where("shop_id = ?", shopID).
			Where("id = ?", serviceID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrNotFound
		}

		if _, err := tx.NewDelete().
			Model((*domain.ServiceProfessional)(nil)).
			Where("service_id = ?", serviceID).
			Exec(ctx); err != nil {
			return err
		}

		if len(professionalIDs) == 0 {
			return nil
		}

		var owned []uuid.UUID
		err = tx.NewSelect().
			Model((*domain.Professional)(nil)).
			Column("id").
			Where("shop_id = ?", shopID).
			Where("id IN (?)", bun.In(professionalIDs)).
			Scan(ctx, &owned)
		if err != nil {
			return err
		}

		links := make([]domain.ServiceProfessional, 0, len(owned))
		for _, id := range owned {
			links = append(links, domain.ServiceProfessional{ServiceID: serviceID, ProfessionalID: id})
		}
		if len(links) == 0 {
			return nil
		}

		_, err = tx.NewInsert().Model(&links).Exec(ctx)
		return err
	})
}

func (r *ServiceRepo) QualifiedProfessionals(ctx context.Context, serviceID uuid.UUID) ([]domain.Professional, error) {
	var rows []domain.Professional
	err := r.db.NewSelect().
		Model(&rows).
		Join("JOIN service_professionals AS sp ON sp.professional_id = professional.id").
		Where("sp.service_id = ?", serviceID).
		OrderExpr("professional.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ServiceRepo) IsQualified(ctx context.Context, serviceID, professionalID uuid.UUID) (bool, error) {
	return r.db.NewSelect().
		Model((*domain.ServiceProfessional)(nil)).
		Where("service_id = ?", serviceID).
		Where("professional_id = ?", professionalID).
		Exists(ctx)
}

type ClientRepo struct {
	db *bun.DB
}

func NewClientRepo(db *bun.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	m := c
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Client{}, mapPgError(err)
	}
	return m, nil
}

func (r *ClientRepo) Get(ctx context.Context, shopID, clientID uuid.UUID) (domain.Client, error) {
	var c domain.Client
	err := r.db.NewSelect().
		Model(&c).
		Where("shop_id = ?", shopID).
		Where("id = ?", clientID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, store.ErrNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}

func (r *ClientRepo) List(ctx context.Context, shopID uuid.UUID) ([]domain.Client, error) {
	var rows []domain.Client
	err := r.db.NewSelect().
		Model(&rows).
		Where("shop_id = ?", shopID).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOrCreateByPhone races are resolved by the (shop_id, phone) unique
// constraint: a concurrent insert surfaces as ErrDuplicate and the existing
// row is read back.
func (r *ClientRepo) GetOrCreateByPhone(ctx context.Context, c domain.Client) (domain.Client, error) {
	existing, err := r.getByPhone(ctx, c.ShopID, c.Phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Client{}, err
	}

	created, err := r.Create(ctx, c)
	if err == nil {
		return created, nil
	}
	if errors.Is(err, store.ErrDuplicate) {
		return r.getByPhone(ctx, c.ShopID, c.Phone)
	}
	return domain.Client{}, err
}

func (r *ClientRepo) getByPhone(ctx context.Context, shopID uuid.UUID, phone string) (domain.Client, error) {
	var c domain.Client
	err := r.db.NewSelect().
		Model(&c).
		Where("shop_id = ?", shopID).
		Where("phone = ?", phone).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, store.ErrNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}
