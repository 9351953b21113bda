package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/studio-backend/internal/entity"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) FindByClientID(ctx context.Context, clientID string) ([]*entity.Invoice, error) {
	query := `
		SELECT id, client_id, COALESCE(order_id, ''), number,
		       amount_cents, status, issued_at, due_date, paid_at
		FROM invoices
		WHERE client_id = $1
		ORDER BY issued_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var paidAt sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.OrderID, &inv.Number,
			&inv.AmountCents, &inv.Status, &inv.IssuedAt, &inv.DueDate, &paidAt); err != nil {
			return nil, err
		}
		if paidAt.Valid {
			inv.PaidAt = &paidAt.Time
		}
		invoices = append(invoices, &inv)
	}

	return invoices, rows.Err()
}
