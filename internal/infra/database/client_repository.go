package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/studio-backend/internal/entity"
)

type ClientAccountRepository struct {
	DB *sql.DB
}

func NewClientAccountRepository(db *sql.DB) *ClientAccountRepository {
	return &ClientAccountRepository{DB: db}
}

func (r *ClientAccountRepository) FindByID(ctx context.Context, id string) (*entity.ClientAccount, error) {
	query := `
		SELECT id, name, email, COALESCE(company, ''), created_at
		FROM client_accounts
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ClientAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.ClientAccount, error) {
	query := `
		SELECT id, name, email, COALESCE(company, ''), created_at
		FROM client_accounts
		WHERE LOWER(email) = LOWER($1)
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *ClientAccountRepository) scanOne(row *sql.Row) (*entity.ClientAccount, error) {
	var c entity.ClientAccount
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
