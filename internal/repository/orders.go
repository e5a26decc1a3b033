package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatok/storebot/internal/domain"
)

// OrderStatusPatch carries the optional fields a status update may set.
type OrderStatusPatch struct {
	ChannelID  *string
	HandledBy  *string
	StaffNotes *string
}

// OrderRepository persists purchase orders. Orders are append-only history:
// there is no delete.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, patch OrderStatusPatch) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListPending(ctx context.Context) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `order_id, user_id, user_tag, region, account_type, original_price, price,
    discount_applied, discount_code, discount_type, discount_value, discount_amount,
    payment_method, additional_notes, status, channel_id, handled_by, staff_notes,
    account_delivered, delivery_date, completed_at, created_at, updated_at`

func (r *orderRepository) Insert(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (order_id, user_id, user_tag, region, account_type, original_price, price,
            discount_applied, discount_code, discount_type, discount_value, discount_amount,
            payment_method, additional_notes, status, channel_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NULLIF($16,''))
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.OrderID,
		order.UserID,
		order.UserTag,
		order.Region,
		order.AccountType,
		order.OriginalPrice,
		order.Price,
		order.DiscountApplied,
		order.DiscountCode,
		order.DiscountType,
		order.DiscountValue,
		order.DiscountAmount,
		order.PaymentMethod,
		order.AdditionalNotes,
		order.Status,
		order.ChannelID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	return scanOrder(r.pool.QueryRow(ctx, query, orderID))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, patch OrderStatusPatch) (*domain.Order, error) {
	const query = `
        UPDATE orders SET status = $2,
            updated_at = NOW(),
            completed_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE completed_at END,
            account_delivered = CASE WHEN $2 = 'completed' THEN TRUE ELSE account_delivered END,
            delivery_date = CASE WHEN $2 = 'completed' THEN NOW() ELSE delivery_date END,
            channel_id = COALESCE($3, channel_id),
            handled_by = COALESCE($4, handled_by),
            staff_notes = COALESCE($5, staff_notes)
        WHERE order_id = $1
        RETURNING ` + orderColumns
	return scanOrder(r.pool.QueryRow(ctx, query, orderID, status,
		patch.ChannelID, patch.HandledBy, patch.StaffNotes))
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) ListPending(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
        WHERE status IN ('pending', 'processing') ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o          domain.Order
		channelID  *string
		handledBy  *string
		staffNotes *string
		delivery   *time.Time
		completed  *time.Time
	)
	err := row.Scan(&o.OrderID, &o.UserID, &o.UserTag, &o.Region, &o.AccountType,
		&o.OriginalPrice, &o.Price, &o.DiscountApplied, &o.DiscountCode, &o.DiscountType,
		&o.DiscountValue, &o.DiscountAmount, &o.PaymentMethod, &o.AdditionalNotes,
		&o.Status, &channelID, &handledBy, &staffNotes, &o.AccountDelivered,
		&delivery, &completed, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if channelID != nil {
		o.ChannelID = *channelID
	}
	if handledBy != nil {
		o.HandledBy = *handledBy
	}
	if staffNotes != nil {
		o.StaffNotes = *staffNotes
	}
	o.DeliveryDate = delivery
	o.CompletedAt = completed
	return &o, nil
}
