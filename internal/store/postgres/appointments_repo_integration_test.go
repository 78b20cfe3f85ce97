package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"agendly/internal/domain"
	"agendly/internal/store"
)

func TestPostgresIntegration_AppointmentOverlapBackstop(t *testing.T) {
	databaseURL := strings.TrimSpace(os.Getenv("AGENDLY_TEST_DATABASE_URL"))
	if databaseURL == "" {
		t.Skip("AGENDLY_TEST_DATABASE_URL not set")
	}

	db, err := Open(databaseURL, PoolConfig{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(db)
	})

	schema := "agendly_test_" + randomHex(t, 8)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = db.NewRaw("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Exec(ctx)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw("CREATE SCHEMA " + schema).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewRaw("SET LOCAL search_path TO " + schema + ", public").Exec(ctx); err != nil {
			return err
		}
		if err := applyMigrations(ctx, tx); err != nil {
			return err
		}

		shop := domain.Shop{ID: uuid.New(), Name: "Corner Cuts", BookingSlug: "corner-cuts", Active: true}
		pro := domain.Professional{ID: uuid.New(), ShopID: shop.ID, Name: "Marcos", Active: true}
		svc := domain.Service{ID: uuid.New(), ShopID: shop.ID, Name: "Haircut", DurationMinutes: 30, PriceCents: 5000}
		client := domain.Client{ID: uuid.New(), ShopID: shop.ID, Name: "Paula", Phone: "+5511999990000"}
		for _, m := range []any{&shop, &pro, &svc, &client} {
			if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
				return err
			}
		}

		bt := bookingTx{tx: tx}

		start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		base := domain.Appointment{
			ShopID:            shop.ID,
			ClientID:          client.ID,
			ServiceID:         svc.ID,
			ProfessionalID:    pro.ID,
			InitialPriceCents: svc.PriceCents,
		}

		a1 := base
		a1.ID = uuid.New()
		a1.StartTime = start
		a1.EndTime = start.Add(time.Hour)
		a1.Status = domain.AppointmentPending
		if _, err := bt.CreateAppointment(ctx, a1); err != nil {
			return fmt.Errorf("create a1: %w", err)
		}

		rows, err := bt.ListOccupying(ctx, pro.ID, start.Add(-time.Minute), start.Add(2*time.Hour))
		if err != nil {
			return err
		}
		if len(rows) != 1 || rows[0].ID != a1.ID {
			return fmt.Errorf("occupying rows = %+v, want only a1", rows)
		}

		overlap := base
		overlap.ID = uuid.New()
		overlap.StartTime = start.Add(30 * time.Minute)
		overlap.EndTime = start.Add(90 * time.Minute)
		overlap.Status = domain.AppointmentConfirmed
		if _, err := bt.CreateAppointment(ctx, overlap); !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("overlap err = %v, want %v", err, store.ErrConflict)
		}

		backToBack := base
		backToBack.ID = uuid.New()
		backToBack.StartTime = a1.EndTime
		backToBack.EndTime = a1.EndTime.Add(time.Hour)
		backToBack.Status = domain.AppointmentPending
		if _, err := bt.CreateAppointment(ctx, backToBack); err != nil {
			return fmt.Errorf("back-to-back rejected: %w", err)
		}

		// Cancelled appointments do not occupy, so the constraint lets
		// them share an interval.
		cancelled := base
		cancelled.ID = uuid.New()
		cancelled.StartTime = a1.StartTime
		cancelled.EndTime = a1.EndTime
		cancelled.Status = domain.AppointmentCancelled
		if _, err := bt.CreateAppointment(ctx, cancelled); err != nil {
			return fmt.Errorf("cancelled overlap rejected: %w", err)
		}

		if _, err := bt.GetAppointment(ctx, uuid.New(), a1.ID); !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("cross-shop get err = %v, want %v", err, store.ErrNotFound)
		}

		a1.Status = domain.AppointmentConfirmed
		updated, err := bt.UpdateAppointment(ctx, a1)
		if err != nil {
			return err
		}
		if updated.Status != domain.AppointmentConfirmed {
			return fmt.Errorf("updated status = %s, want confirmed", updated.Status)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("tx error: %v", err)
	}
}

func randomHex(t *testing.T, bytesLen int) string {
	t.Helper()
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read error: %v", err)
	}
	return hex.EncodeToString(b)
}

type rawExecutor interface {
	NewRaw(query string, args ...any) *bun.RawQuery
}

func applyMigrations(ctx context.Context, exec rawExecutor) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type mig struct {
		name string
		path string
	}
	migs := make([]mig, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		migs = append(migs, mig{name: e.Name(), path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(migs, func(i, j int) bool { return migs[i].name < migs[j].name })

	for _, m := range migs {
		b, err := os.ReadFile(m.path)
		if err != nil {
			return err
		}
		upSQL, err := extractGooseUp(string(b))
		if err != nil {
			return err
		}
		stmts := splitSQLStatements(upSQL)
		for _, stmt := range stmts {
			if normalized, ok := normalizeExtensionStatement(stmt); ok {
				stmt = normalized
			}
			if _, err := exec.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

func migrationsDir() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("runtime.Caller failed")
	}
	base := filepath.Dir(file)
	return filepath.Clean(filepath.Join(base, "..", "..", "..", "migrations")), nil
}

func extractGooseUp(sql string) (string, error) {
	upMarker := "-- +goose Up"
	downMarker := "-- +goose Down"

	upIdx := strings.Index(sql, upMarker)
	if upIdx < 0 {
		return "", fmt.Errorf("missing goose up marker")
	}
	afterUp := sql[upIdx+len(upMarker):]
	afterUp = strings.TrimLeft(afterUp, "\r\n")

	downIdx := strings.Index(afterUp, downMarker)
	if downIdx < 0 {
		return strings.TrimSpace(afterUp), nil
	}
	return strings.TrimSpace(afterUp[:downIdx]), nil
}

func normalizeExtensionStatement(stmt string) (string, bool) {
	s := strings.TrimSpace(stmt)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "CREATE EXTENSION") {
		return "", false
	}
	if !strings.Contains(upper, "BTREE_GIST") {
		return "", false
	}
	if strings.Contains(upper, " SCHEMA ") {
		return "", false
	}
	return s + " SCHEMA public", true
}

func splitSQLStatements(sql string) []string {
	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
