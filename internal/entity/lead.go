package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status do Lead. Não é uma máquina de estados completa: new -> scheduled,
// e falhas não-fatais viram anotações livres em Notes.
const (
	LeadStatusNew       = "new"
	LeadStatusScheduled = "scheduled"
)

// Entidade: Lead (um pedido de contato/agendamento vindo do site)
type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`

	Service       string `json:"service"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`

	Status string `json:"status"` // new, scheduled

	// Flags de efeito colateral (só viram true, nunca voltam)
	EmailSent         bool   `json:"email_sent"`
	CalendarCreated   bool   `json:"calendar_created"`
	CalendarEventLink string `json:"calendar_event_link,omitempty"`

	// Referência fraca ao cliente criado no e-commerce
	CommerceCustomerID string `json:"commerce_customer_id,omitempty"`
	InviteSent         bool   `json:"invite_sent"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(name, email, phone, company, service, message, preferredDate, preferredTime string) *Lead {
	return &Lead{
		ID:            uuid.New().String(),
		Name:          name,
		Email:         email,
		Phone:         phone,
		Company:       company,
		Service:       service,
		Message:       message,
		PreferredDate: preferredDate,
		PreferredTime: preferredTime,
		Status:        LeadStatusNew,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// LeadPatch: atualização parcial e idempotente. Ponteiro nil = campo intocado.
// Note é ANEXADA ao final de Notes (updates são sempre monotônicos).
type LeadPatch struct {
	Status             *string
	EmailSent          *bool
	CalendarCreated    *bool
	CalendarEventLink  *string
	CommerceCustomerID *string
	InviteSent         *bool
	Note               *string
}

// Empty informa se o patch não altera nada (evita UPDATE à toa)
func (p LeadPatch) Empty() bool {
	return p.Status == nil && p.EmailSent == nil && p.CalendarCreated == nil &&
		p.CalendarEventLink == nil && p.CommerceCustomerID == nil &&
		p.InviteSent == nil && p.Note == nil
}

// Helpers para montar patches
func StrPtr(s string) *string { return &s }
func BoolPtr(b bool) *bool    { return &b }

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, id string, patch LeadPatch) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, limit int) ([]*Lead, error)
}
