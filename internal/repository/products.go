package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
)

// ProductRepository is plain CRUD over the sellable catalog.
type ProductRepository interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, region, label, price, followers, sort_order, active, created_at`

func (r *productRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) List(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sort_order, label`
	if activeOnly {
		query = `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY sort_order, label`
	}
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) Insert(ctx context.Context, p *domain.Product) error {
	const query = `
        INSERT INTO products (id, region, label, price, followers, sort_order, active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		p.ID, p.Region, p.Label, p.Price, p.Followers, p.SortOrder, p.Active,
	).Scan(&p.CreatedAt)
}

func (r *productRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	const query = `UPDATE products SET price = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, price)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM products WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Region, &p.Label, &p.Price, &p.Followers,
		&p.SortOrder, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}
