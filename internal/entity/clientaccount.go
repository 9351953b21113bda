package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("cliente não encontrado")

// ClientAccount: conta do cliente no dashboard (dona de projects/orders/invoices)
type ClientAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewClientAccount(name, email, company string) *ClientAccount {
	return &ClientAccount{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Company:   company,
		CreatedAt: time.Now(),
	}
}

type ClientAccountRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*ClientAccount, error)
	FindByEmail(ctx context.Context, email string) (*ClientAccount, error)
}
