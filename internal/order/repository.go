package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repository is the order store the payment core reads and mutates.
type Repository interface {
	// GetOrderByID returns nil, nil when no order has the id.
	GetOrderByID(ctx context.Context, id int) (*Order, error)
	// UpdateOrder persists PaymentStatus and OrderStatus in one statement.
	UpdateOrder(ctx context.Context, o *Order) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrderByID(ctx context.Context, id int) (*Order, error) {
	const q = `
		SELECT id, order_guid, customer_email, customer_first_name, customer_last_name,
		       language_culture, currency_code, order_total,
		       payment_status, order_status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&o.ID, &o.GUID,
		&o.Customer.Email, &o.Customer.FirstName, &o.Customer.LastName,
		&o.LanguageCulture, &o.CurrencyCode, &o.Total,
		&o.PaymentStatus, &o.OrderStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	return &o, nil
}

func (r *repository) UpdateOrder(ctx context.Context, o *Order) error {
	const q = `
		UPDATE orders
		SET payment_status = $1, order_status = $2, updated_at = now()
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, q, o.PaymentStatus, o.OrderStatus, o.ID)
	if err != nil {
		return fmt.Errorf("update order %d: %w", o.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
