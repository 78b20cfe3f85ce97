package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"agendly/internal/store"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "exclusion violation on the overlap constraint",
			in:   &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"},
			want: store.ErrConflict,
		},
		{
			name: "unique violation",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: "clients_shop_phone_key"},
			want: store.ErrDuplicate,
		},
		{
			name: "wrapped exclusion violation",
			in:   fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}),
			want: store.ErrConflict,
		},
		{
			name: "other exclusion constraint passes through",
			in:   &pgconn.PgError{Code: "23P01", ConstraintName: "some_other_excl"},
		},
		{
			name: "unrelated error passes through",
			in:   errors.New("connection reset"),
		},
	}

	for _, tc := range cases {
		got := mapPgError(tc.in)
		if tc.want != nil {
			if !errors.Is(got, tc.want) {
				t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
			}
			continue
		}
		if got != tc.in {
			t.Fatalf("%s: got %v, want the original error", tc.name, got)
		}
	}
}
