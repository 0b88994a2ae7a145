package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/food-ratings/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresStore handles users and foods in PostgreSQL. It is the
// alternative to MongoStore, selected with STORE_BACKEND=postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			name          TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			access_token  TEXT UNIQUE NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS foods (
			id         UUID PRIMARY KEY,
			seq        BIGSERIAL,
			user_id    UUID NOT NULL,
			name       TEXT NOT NULL,
			rating     DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, name)
		);
	`)
	if err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, password_hash, access_token, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, u.Name, u.PasswordHash, u.AccessToken, u.CreatedAt,
	)
	if err != nil {
		return pgErr("insert user", err)
	}
	u.ID = id
	return nil
}

func (s *PostgresStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.findUser(ctx, `WHERE access_token = $1`, token)
}

func (s *PostgresStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	return s.findUser(ctx, `WHERE name = $1`, name)
}

func (s *PostgresStore) findUser(ctx context.Context, where string, arg string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, name, password_hash, access_token, created_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Name, &u.PasswordHash, &u.AccessToken, &u.CreatedAt)
	if err != nil {
		return nil, pgErr("find user", err)
	}
	return &u, nil
}

func (s *PostgresStore) InsertFood(ctx context.Context, f *models.Food) error {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO foods (id, user_id, name, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, f.UserID, f.Name, f.Rating, f.CreatedAt,
	)
	if err != nil {
		return pgErr("insert food", err)
	}
	f.ID = id
	return nil
}

// ListFoodsByUser returns the user's foods in insertion order.
func (s *PostgresStore) ListFoodsByUser(ctx context.Context, userID string) ([]models.Food, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, name, rating, user_id::text, created_at
		 FROM foods WHERE user_id = $1 ORDER BY seq`, userID,
	)
	if err != nil {
		return nil, pgErr("list foods", err)
	}
	defer rows.Close()

	foods := []models.Food{}
	for rows.Next() {
		var f models.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Rating, &f.UserID, &f.CreatedAt); err != nil {
			return nil, pgErr("scan food", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("list foods", err)
	}
	return foods, nil
}

// pgErr maps pgx errors onto the models sentinels.
func pgErr(op string, err error) error {
	var pe *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case errors.As(err, &pe) && pe.Code == pgUniqueViolation:
		return fmt.Errorf("%s: %w", op, models.ErrDuplicate)
	default:
		return fmt.Errorf("postgres %s: %w", op, err)
	}
}
