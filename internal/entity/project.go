package entity

import (
	"context"
	"time"
)

type Project struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"` // active, on_hold, completed
	StartedAt   time.Time  `json:"started_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ProjectRepositoryInterface interface {
	FindByClientID(ctx context.Context, clientID string) ([]*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
}
