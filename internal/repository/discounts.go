package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
)

// DiscountRepository persists discount codes and their append-only usage log.
type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
	Insert(ctx context.Context, d *domain.Discount) error
	SetActive(ctx context.Context, code string, active bool) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, activeOnly bool) ([]domain.Discount, error)
	CountUsagesByUser(ctx context.Context, code, userID string) (int64, error)
	RecordUsage(ctx context.Context, usage *domain.DiscountUsage) error
}

type discountRepository struct {
	pool *pgxpool.Pool
}

func NewDiscountRepository(pool *pgxpool.Pool) DiscountRepository {
	return &discountRepository{pool: pool}
}

const discountColumns = `code, type, value, description, is_active, usage_limit, usage_count,
    user_limit, minimum_order_amount, maximum_discount, valid_from, valid_until,
    allowed_regions, allowed_account_types, created_by, created_at, updated_at`

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	const query = `SELECT ` + discountColumns + ` FROM discounts WHERE code = $1`
	return scanDiscount(r.pool.QueryRow(ctx, query, code))
}

func (r *discountRepository) Insert(ctx context.Context, d *domain.Discount) error {
	const query = `
        INSERT INTO discounts (code, type, value, description, is_active, usage_limit,
            user_limit, minimum_order_amount, maximum_discount, valid_from, valid_until,
            allowed_regions, allowed_account_types, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		d.Code,
		d.Type,
		d.Value,
		d.Description,
		d.IsActive,
		d.UsageLimit,
		d.UserLimit,
		d.MinimumOrder,
		d.MaximumDiscount,
		d.ValidFrom,
		d.ValidUntil,
		d.AllowedRegions,
		d.AllowedTypes,
		d.CreatedBy,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *discountRepository) SetActive(ctx context.Context, code string, active bool) error {
	const query = `UPDATE discounts SET is_active = $2, updated_at = NOW() WHERE code = $1`
	cmd, err := r.pool.Exec(ctx, query, code, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

func (r *discountRepository) Delete(ctx context.Context, code string) error {
	const query = `DELETE FROM discounts WHERE code = $1`
	cmd, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

func (r *discountRepository) List(ctx context.Context, activeOnly bool) ([]domain.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT ` + discountColumns + ` FROM discounts WHERE is_active ORDER BY created_at DESC`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, *d)
	}
	return discounts, rows.Err()
}

func (r *discountRepository) CountUsagesByUser(ctx context.Context, code, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM discount_usages WHERE code = $1 AND user_id = $2`
	var count int64
	if err := r.pool.QueryRow(ctx, query, code, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RecordUsage appends one usage-log entry and bumps the running counter in a
// single transaction so the counter can never drift from the log.
func (r *discountRepository) RecordUsage(ctx context.Context, usage *domain.DiscountUsage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertUsage = `
        INSERT INTO discount_usages (code, user_id, user_tag, order_id, amount)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, used_at`
	if err := tx.QueryRow(ctx, insertUsage,
		usage.Code, usage.UserID, usage.UserTag, usage.OrderID, usage.Amount,
	).Scan(&usage.ID, &usage.UsedAt); err != nil {
		return err
	}

	const bumpCount = `UPDATE discounts SET usage_count = usage_count + 1, updated_at = NOW() WHERE code = $1`
	cmd, err := tx.Exec(ctx, bumpCount, usage.Code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}

	return tx.Commit(ctx)
}

func scanDiscount(row pgx.Row) (*domain.Discount, error) {
	var (
		d          domain.Discount
		usageLimit *int64
		maxAmount  *decimal.Decimal
	)
	err := row.Scan(&d.Code, &d.Type, &d.Value, &d.Description, &d.IsActive,
		&usageLimit, &d.UsageCount, &d.UserLimit, &d.MinimumOrder, &maxAmount,
		&d.ValidFrom, &d.ValidUntil, &d.AllowedRegions, &d.AllowedTypes,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, err
	}
	d.UsageLimit = usageLimit
	d.MaximumDiscount = maxAmount
	return &d, nil
}
