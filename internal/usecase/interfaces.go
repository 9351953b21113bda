package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/studio-backend/internal/entity"
	"github.com/xavierca1/studio-backend/internal/infra/integration/gcal"
	"github.com/xavierca1/studio-backend/internal/infra/integration/shopify"
	"github.com/xavierca1/studio-backend/internal/infra/mail"
	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

type CreateBookingInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`

	Service       string `json:"service"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

// CreateBookingOutput: o corpo do 200. Sucesso mesmo quando integrações
// falharam; as flags dizem o que de fato aconteceu.
type CreateBookingOutput struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	LeadID            string `json:"leadId"`
	CustomerEmailID   string `json:"customerEmailId,omitempty"`
	CalendarEventLink string `json:"calendarEventLink,omitempty"`
	EmailSent         bool   `json:"emailSent"`
	CalendarCreated   bool   `json:"calendarCreated"`
}

type CustomerRegistrar interface {
	CreateOrDetect(ctx context.Context, input shopify.RegisterInput) shopify.RegisterResult
}

type EmailService interface {
	Send(to, toName string, email mail.RenderedEmail) (string, error)
}

type CalendarService interface {
	IsAvailable(ctx context.Context, start, end time.Time) (bool, error)
	CreateEvent(ctx context.Context, input gcal.EventInput) (string, error)
}

type CreateBookingUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	Registrar CustomerRegistrar
	Email     EmailService
	Calendar  CalendarService
	Queue     queue.QueueProducerInterface
}
