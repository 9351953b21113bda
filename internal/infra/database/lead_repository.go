package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xavierca1/studio-backend/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, company,
			service, message, preferred_date, preferred_time,
			status, email_sent, calendar_created, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		nullString(lead.Company),
		lead.Service,
		lead.Message,
		lead.PreferredDate,
		lead.PreferredTime,
		lead.Status,
		lead.EmailSent,
		lead.CalendarCreated,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	return err
}

// Update aplica um patch parcial e idempotente. Cada campo é um SET
// independente; notes é sempre anexado (nunca sobrescrito para trás).
func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	if patch.Empty() {
		return nil
	}

	set := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 0

	add := func(clause string, value interface{}) {
		n++
		set = append(set, fmt.Sprintf(clause, n))
		args = append(args, value)
	}

	if patch.Status != nil {
		add("status = $%d", *patch.Status)
	}
	if patch.EmailSent != nil {
		add("email_sent = $%d", *patch.EmailSent)
	}
	if patch.CalendarCreated != nil {
		add("calendar_created = $%d", *patch.CalendarCreated)
	}
	if patch.CalendarEventLink != nil {
		add("calendar_event_link = $%d", *patch.CalendarEventLink)
	}
	if patch.CommerceCustomerID != nil {
		add("commerce_customer_id = $%d", *patch.CommerceCustomerID)
	}
	if patch.InviteSent != nil {
		add("invite_sent = $%d", *patch.InviteSent)
	}
	if patch.Note != nil {
		add("notes = TRIM(BOTH chr(10) FROM COALESCE(notes, '') || chr(10) || $%d)", *patch.Note)
	}

	n++
	args = append(args, id)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(set, ", "), n)

	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

const leadColumns = `
	id, name, email,
	COALESCE(phone, ''), COALESCE(company, ''),
	service, message, preferred_date, preferred_time,
	status, email_sent, calendar_created,
	COALESCE(calendar_event_link, ''), COALESCE(commerce_customer_id, ''),
	invite_sent, COALESCE(notes, ''),
	created_at, updated_at
`

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := "SELECT " + leadColumns + " FROM leads WHERE id = $1"
	return scanLead(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) List(ctx context.Context, limit int) ([]*entity.Lead, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := "SELECT " + leadColumns + " FROM leads ORDER BY created_at DESC LIMIT $1"
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Email,
		&l.Phone, &l.Company,
		&l.Service, &l.Message, &l.PreferredDate, &l.PreferredTime,
		&l.Status, &l.EmailSent, &l.CalendarCreated,
		&l.CalendarEventLink, &l.CommerceCustomerID,
		&l.InviteSent, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
