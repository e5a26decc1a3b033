package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
)

// UserRepository persists community member records.
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	GetOrCreate(ctx context.Context, id, tag string) (*domain.User, error)
	TrackInteraction(ctx context.Context, id string) error
	RecordPurchase(ctx context.Context, id string, amount decimal.Decimal) error
	UpdateRegion(ctx context.Context, id, region string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, tag, region, interactions, purchases, total_spent, joined_at, last_active, last_purchase_date`

func (r *userRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetOrCreate(ctx context.Context, id, tag string) (*domain.User, error) {
	const query = `
        INSERT INTO users (id, tag)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET tag = EXCLUDED.tag, last_active = NOW()
        RETURNING ` + userColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, id, tag))
}

func (r *userRepository) TrackInteraction(ctx context.Context, id string) error {
	const query = `
        UPDATE users SET interactions = interactions + 1, last_active = NOW()
        WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) RecordPurchase(ctx context.Context, id string, amount decimal.Decimal) error {
	const query = `
        UPDATE users SET purchases = purchases + 1,
            total_spent = total_spent + $2,
            last_active = NOW(),
            last_purchase_date = NOW()
        WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateRegion(ctx context.Context, id, region string) error {
	const query = `UPDATE users SET region = $2, last_active = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, region)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var (
		u            domain.User
		region       *string
		lastPurchase *time.Time
	)
	err := row.Scan(&u.ID, &u.Tag, &region, &u.Interactions, &u.Purchases,
		&u.TotalSpent, &u.JoinedAt, &u.LastActive, &lastPurchase)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if region != nil {
		u.Region = *region
	}
	u.LastPurchaseDate = lastPurchase
	return &u, nil
}
