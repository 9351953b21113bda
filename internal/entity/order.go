package entity

import (
	"context"
	"time"
)

type Order struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Number      string    `json:"number"`
	Description string    `json:"description,omitempty"`
	AmountCents int       `json:"amount_cents"` // Em centavos, sem float
	Status      string    `json:"status"`       // pending, paid, cancelled
	CreatedAt   time.Time `json:"created_at"`
}

type OrderRepositoryInterface interface {
	FindByClientID(ctx context.Context, clientID string) ([]*Order, error)
}
