package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"agendly/internal/domain"
	"agendly/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type bookingTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) Get(ctx context.Context, shopID, appointmentID uuid.UUID) (domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.NewSelect().
		Model(&a).
		Where("shop_id = ?", shopID).
		Where("id = ?", appointmentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, shopID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("shop_id = ?", shopID).
		Where("start_time < ?", windowEnd).
		Where("end_time > ?", windowStart).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) ListOccupying(ctx context.Context, professionalID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	return listOccupying(ctx, r.db, professionalID, windowStart, windowEnd)
}

// InProfessionalTransaction serializes all calendar writes for one
// professional: the transaction takes an advisory lock keyed on the
// professional id, so two concurrent bookings for the same professional
// cannot both pass the conflict scan.
func (r *AppointmentRepo) InProfessionalTransaction(ctx context.Context, professionalID uuid.UUID, fn func(ctx context.Context, tx store.BookingTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockProfessionalCalendar(ctx, tx, professionalID); err != nil {
			return err
		}
		return fn(ctx, bookingTx{tx: tx})
	})
}

func lockProfessionalCalendar(ctx context.Context, tx bun.Tx, professionalID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", professionalID.String()).Exec(ctx)
	return err
}

func (r *AppointmentRepo) LatestCompletedVisits(ctx context.Context, shopID uuid.UUID) ([]store.CompletedVisit, error) {
	var visits []store.CompletedVisit
	err := r.db.NewRaw(`
		SELECT a.client_id,
			c.name AS client_name,
			a.service_id,
			s.name AS service_name,
			max(a.start_time) AS completed_at
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN services s ON s.id = a.service_id
		WHERE a.shop_id = ? AND a.status = ?
		GROUP BY a.client_id, c.name, a.service_id, s.name
	`, shopID, domain.AppointmentCompleted).Scan(ctx, &visits)
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (t bookingTx) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	if _, err := t.tx.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Appointment{}, mapPgError(err)
	}
	return m, nil
}

func (t bookingTx) UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	res, err := t.tx.NewUpdate().
		Model(&m).
		Column("client_id", "service_id", "professional_id", "start_time", "end_time", "status", "updated_at").
		WherePK().
		Where("shop_id = ?", appt.ShopID).
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapPgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return m, nil
}

func (t bookingTx) GetAppointment(ctx context.Context, shopID, appointmentID uuid.UUID) (domain.Appointment, error) {
	var a domain.Appointment
	err := t.tx.NewSelect().
		Model(&a).
		Where("shop_id = ?", shopID).
		Where("id = ?", appointmentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return a, nil
}

func (t bookingTx) ListOccupying(ctx context.Context, professionalID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	return listOccupying(ctx, t.tx, professionalID, windowStart, windowEnd)
}

func listOccupying(ctx context.Context, db bun.IDB, professionalID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := db.NewSelect().
		Model(&rows).
		Where("professional_id = ?", professionalID).
		Where("start_time < ?", windowEnd).
		Where("end_time > ?", windowStart).
		Where("status IN (?)", bun.In(domain.OccupyingStatuses())).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// mapPgError translates constraint violations into store sentinels. The
// appointments_no_overlap exclusion constraint is the storage-level backstop
// for the per-professional no-overlap invariant; it fires only if a write
// slips past the advisory-lock conflict scan.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23P01" && pgErr.ConstraintName == "appointments_no_overlap":
			return store.ErrConflict
		case pgErr.Code == "23505":
			return store.ErrDuplicate
		}
	}
	return err
}
