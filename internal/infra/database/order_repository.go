package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/studio-backend/internal/entity"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) FindByClientID(ctx context.Context, clientID string) ([]*entity.Order, error) {
	query := `
		SELECT id, client_id, number, COALESCE(description, ''),
		       amount_cents, status, created_at
		FROM orders
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.Number, &o.Description,
			&o.AmountCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}
