package entity

import (
	"context"
	"time"
)

type Invoice struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	OrderID     string     `json:"order_id,omitempty"`
	Number      string     `json:"number"`
	AmountCents int        `json:"amount_cents"`
	Status      string     `json:"status"` // draft, sent, paid, overdue
	IssuedAt    time.Time  `json:"issued_at"`
	DueDate     time.Time  `json:"due_date"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

type InvoiceRepositoryInterface interface {
	FindByClientID(ctx context.Context, clientID string) ([]*Invoice, error)
}
