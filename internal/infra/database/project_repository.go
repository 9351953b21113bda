package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/studio-backend/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) FindByClientID(ctx context.Context, clientID string) ([]*entity.Project, error) {
	query := `
		SELECT id, client_id, name, COALESCE(description, ''), status,
		       started_at, due_date, updated_at
		FROM projects
		WHERE client_id = $1
		ORDER BY started_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var p entity.Project
		var dueDate sql.NullTime
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status,
			&p.StartedAt, &dueDate, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if dueDate.Valid {
			p.DueDate = &dueDate.Time
		}
		projects = append(projects, &p)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT id, client_id, name, COALESCE(description, ''), status,
		       started_at, due_date, updated_at
		FROM projects
		WHERE id = $1
	`

	var p entity.Project
	var dueDate sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Status,
		&p.StartedAt, &dueDate, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		p.DueDate = &dueDate.Time
	}
	return &p, nil
}
