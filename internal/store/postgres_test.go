package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/ayush/food-ratings/internal/models"
)

func TestPgErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: models.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: models.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_name_key"}, want: models.ErrDuplicate},
		{name: "other pg error", err: &pgconn.PgError{Code: "23502"}},
		{name: "plain error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pgErr("op", tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.ErrorIs(t, got, tt.err)
			assert.NotErrorIs(t, got, models.ErrDuplicate)
			assert.NotErrorIs(t, got, models.ErrNotFound)
		})
	}
}
