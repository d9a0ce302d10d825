package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunodmn/storefront-api/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, customer_id, status, gross_amount, discount_amount, freight_amount, net_amount, delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`

	createOrderAddressSQL = `INSERT INTO order_addresses (id, order_id, recipient_name, postal_code, street, number, complement, district, city_code, region_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	createOrderPaymentSQL = `INSERT INTO order_payments (id, order_id, method, installments, total_amount, installment_amount)
		VALUES ($1, $2, $3, $4, $5, $6)`

	createOrderLineSQL = `INSERT INTO order_lines (id, order_id, sku, quantity, unit_price, gross_amount, discount_amount, net_amount, freight_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order header, shipping address, payment record, and
// lines in one transaction, populating generated IDs on the aggregate. A
// failure in any insert rolls back the whole graph.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning order transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	o.ID = uuid.NewString()
	err = tx.QueryRow(ctx, createOrderSQL,
		o.ID, o.CustomerID, o.Status,
		o.Gross, o.Discount, o.Freight, o.Net, o.DeliveryDate,
	).Scan(&o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	o.Address.ID = uuid.NewString()
	o.Address.OrderID = o.ID
	_, err = tx.Exec(ctx, createOrderAddressSQL,
		o.Address.ID, o.ID, o.Address.RecipientName, o.Address.PostalCode,
		o.Address.Street, o.Address.Number, o.Address.Complement,
		o.Address.District, o.Address.CityCode, o.Address.RegionCode,
	)
	if err != nil {
		return fmt.Errorf("creating order address: %w", err)
	}

	o.Payment.ID = uuid.NewString()
	o.Payment.OrderID = o.ID
	_, err = tx.Exec(ctx, createOrderPaymentSQL,
		o.Payment.ID, o.ID, string(o.Payment.Method),
		o.Payment.Installments, o.Payment.Total, o.Payment.InstallmentAmount,
	)
	if err != nil {
		return fmt.Errorf("creating order payment: %w", err)
	}

	for i := range o.Lines {
		line := &o.Lines[i]
		line.ID = uuid.NewString()
		line.OrderID = o.ID
		_, err = tx.Exec(ctx, createOrderLineSQL,
			line.ID, o.ID, line.SKU, line.Quantity, line.UnitPrice,
			line.Gross, line.Discount, line.Net, line.Freight,
		)
		if err != nil {
			return fmt.Errorf("creating order line %q: %w", line.SKU, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}
	return nil
}
