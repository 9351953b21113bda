package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/studio-backend/internal/entity"
	"github.com/xavierca1/studio-backend/internal/infra/integration/gcal"
	"github.com/xavierca1/studio-backend/internal/infra/integration/shopify"
	"github.com/xavierca1/studio-backend/internal/infra/mail"
	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

const meetingDuration = time.Hour

func NewCreateBookingUseCase(
	leadRepo entity.LeadRepositoryInterface,
	registrar CustomerRegistrar,
	email EmailService,
	calendar CalendarService,
	producer queue.QueueProducerInterface,
) *CreateBookingUseCase {
	return &CreateBookingUseCase{
		LeadRepo:  leadRepo,
		Registrar: registrar,
		Email:     email,
		Calendar:  calendar,
		Queue:     producer,
	}
}

// Execute roda o fluxo completo de agendamento:
//
//  1. Valida a entrada (nenhum efeito colateral antes disso)
//  2. Persiste o lead (se o banco falhar, loga e SEGUE)
//  3. Registra o cliente no Shopify (best-effort)
//  4. Envia o email de confirmação (best-effort)
//  5. Checa disponibilidade e cria o evento no Google Calendar
//     (horário ocupado é o único abort; falha na criação é best-effort)
//  6. Publica o evento lead.booked na fila (best-effort)
//
// "Nunca perder um lead": toda resposta (sucesso, conflito ou erro)
// carrega o LeadID que conseguimos gerar.
func (uc *CreateBookingUseCase) Execute(ctx context.Context, input CreateBookingInput) (*CreateBookingOutput, error) {
	if verr := ValidateCreateBookingInput(input); verr != nil {
		return nil, verr
	}

	log.Printf("🔄 [Booking] Novo pedido de %s <%s> (%s)", input.Name, input.Email, input.Service)

	// 1. Persistir o lead. Falha aqui NÃO derruba o fluxo: o cliente ainda
	// recebe confirmação e o time ainda é avisado pela fila.
	lead := entity.NewLead(
		input.Name, input.Email, input.Phone, input.Company,
		input.Service, input.Message, input.PreferredDate, input.PreferredTime,
	)
	leadID := lead.ID
	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		log.Printf("❌ [Booking] Falha ao salvar lead no banco (seguindo em frente): %v", err)
		leadID = ""
	}

	out := &CreateBookingOutput{
		Success: true,
		Message: "Booking received",
		LeadID:  leadID,
	}

	runner := NewStepRunner(uc.LeadRepo, leadID)

	// 2. Cliente no Shopify, só faz sentido amarrado ao lead persistido
	if leadID != "" {
		runner.Add("register_customer", func(ctx context.Context) (*entity.LeadPatch, error) {
			return uc.registerCustomer(ctx, input)
		})
	}

	// 3. Email de confirmação
	runner.Add("send_confirmation", func(ctx context.Context) (*entity.LeadPatch, error) {
		return uc.sendConfirmation(input, out)
	})

	// 4. Agenda
	runner.Add("book_calendar", func(ctx context.Context) (*entity.LeadPatch, error) {
		return uc.bookCalendar(ctx, input, leadID, out)
	})

	if err := runner.Run(ctx); err != nil {
		// Único caminho até aqui: ConflictError (horário ocupado)
		return nil, err
	}

	// 5. Fila: best-effort, como tudo depois do conflito
	uc.publishBooked(ctx, input, leadID, out)

	log.Printf("✅ [Booking] Fluxo concluído para %s (lead=%s email=%t agenda=%t)",
		input.Email, leadID, out.EmailSent, out.CalendarCreated)

	return out, nil
}

func (uc *CreateBookingUseCase) registerCustomer(ctx context.Context, input CreateBookingInput) (*entity.LeadPatch, error) {
	result := uc.Registrar.CreateOrDetect(ctx, shopify.RegisterInput{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		AcceptsMarketing: false,
		Note:             fmt.Sprintf("Lead via formulário de agendamento — serviço: %s", mail.ServiceLabel(input.Service)),
	})

	switch {
	case result.Success:
		log.Printf("✅ [Shopify] Cliente criado: %s (convite=%t)", result.CustomerID, result.InviteSent)
		return &entity.LeadPatch{
			CommerceCustomerID: entity.StrPtr(result.CustomerID),
			InviteSent:         entity.BoolPtr(result.InviteSent),
			Note:               entity.StrPtr(fmt.Sprintf("Cliente Shopify criado (%s)", result.CustomerID)),
		}, nil

	case result.IsDuplicate:
		log.Printf("⚠️ [Shopify] Cliente já existia para %s", input.Email)
		return &entity.LeadPatch{
			Note: entity.StrPtr("Cliente já existia no Shopify"),
		}, nil

	default:
		return &entity.LeadPatch{
			Note: entity.StrPtr("Falha ao registrar cliente no Shopify"),
		}, fmt.Errorf("shopify: %s", result.Err)
	}
}

func (uc *CreateBookingUseCase) sendConfirmation(input CreateBookingInput, out *CreateBookingOutput) (*entity.LeadPatch, error) {
	rendered := mail.ConfirmationEmail(mail.TemplateData{
		Name:          input.Name,
		Company:       input.Company,
		Service:       input.Service,
		Message:       input.Message,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
	})

	messageID, err := uc.Email.Send(input.Email, input.Name, rendered)
	if err != nil {
		return &entity.LeadPatch{
			EmailSent: entity.BoolPtr(false),
			Note:      entity.StrPtr("Falha no envio do email de confirmação"),
		}, fmt.Errorf("email: %w", err)
	}

	out.EmailSent = true
	out.CustomerEmailID = messageID
	log.Printf("✅ [Email] Confirmação enviada para %s (%s)", input.Email, messageID)

	return &entity.LeadPatch{
		EmailSent: entity.BoolPtr(true),
	}, nil
}

func (uc *CreateBookingUseCase) bookCalendar(ctx context.Context, input CreateBookingInput, leadID string, out *CreateBookingOutput) (*entity.LeadPatch, error) {
	start, err := ParseWhen(input.PreferredDate, input.PreferredTime)
	if err != nil {
		// Horário ilegível não é conflito: o lead está salvo e o time marca
		// manualmente. Segue como falha best-effort.
		return &entity.LeadPatch{
			Note: entity.StrPtr(fmt.Sprintf("Horário preferido ilegível: %s %s", input.PreferredDate, input.PreferredTime)),
		}, fmt.Errorf("calendar: %w", err)
	}
	end := start.Add(meetingDuration)

	available, err := uc.Calendar.IsAvailable(ctx, start, end)
	if err != nil {
		return &entity.LeadPatch{
			Note: entity.StrPtr("Falha ao consultar disponibilidade da agenda"),
		}, fmt.Errorf("calendar: %w", err)
	}

	if !available {
		log.Printf("⚠️ [Calendar] Horário ocupado: %s (lead %s)", start.Format(time.RFC3339), leadID)
		return &entity.LeadPatch{
				Note: entity.StrPtr(fmt.Sprintf("Conflito de agenda em %s", start.Format(time.RFC3339))),
			}, &ConflictError{
				Message: "Time slot no longer available",
				Details: "The selected time conflicts with an existing booking. Please choose another time.",
				LeadID:  leadID,
			}
	}

	link, err := uc.Calendar.CreateEvent(ctx, gcal.EventInput{
		Summary:       fmt.Sprintf("Reunião de descoberta — %s", input.Name),
		Description:   eventDescription(input, leadID),
		Start:         start,
		End:           end,
		AttendeeEmail: input.Email,
		AttendeeName:  input.Name,
	})
	if err != nil {
		return &entity.LeadPatch{
			Note: entity.StrPtr("Falha ao criar evento na agenda"),
		}, fmt.Errorf("calendar: %w", err)
	}

	out.CalendarCreated = true
	out.CalendarEventLink = link
	log.Printf("✅ [Calendar] Evento criado: %s", link)

	return &entity.LeadPatch{
		CalendarCreated:   entity.BoolPtr(true),
		CalendarEventLink: entity.StrPtr(link),
		Status:            entity.StrPtr(entity.LeadStatusScheduled),
	}, nil
}

func (uc *CreateBookingUseCase) publishBooked(ctx context.Context, input CreateBookingInput, leadID string, out *CreateBookingOutput) {
	if uc.Queue == nil {
		return
	}
	err := uc.Queue.PublishLeadBooked(ctx, queue.LeadBookedPayload{
		LeadID:            leadID,
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		Company:           input.Company,
		Service:           input.Service,
		Message:           input.Message,
		PreferredDate:     input.PreferredDate,
		PreferredTime:     input.PreferredTime,
		EmailSent:         out.EmailSent,
		CalendarCreated:   out.CalendarCreated,
		CalendarEventLink: out.CalendarEventLink,
		Origin:            "BOOKING_API",
	})
	if err != nil {
		log.Printf("⚠️ [Booking] Falha ao publicar lead.booked (seguindo em frente): %v", err)
	}
}

// Layouts aceitos para o par data + hora vindo do formulário
var whenLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func ParseWhen(date, clock string) (time.Time, error) {
	raw := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)

	// preferredTime pode vir como timestamp completo (RFC3339)
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(clock)); err == nil {
		return t, nil
	}

	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de horário não reconhecido: %q", raw)
}

func eventDescription(input CreateBookingInput, leadID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cliente: %s\n", input.Name)
	if input.Company != "" {
		fmt.Fprintf(&b, "Empresa: %s\n", input.Company)
	}
	fmt.Fprintf(&b, "Serviço: %s\n", mail.ServiceLabel(input.Service))
	if input.Phone != "" {
		fmt.Fprintf(&b, "Telefone: %s\n", input.Phone)
	}
	fmt.Fprintf(&b, "\nMensagem:\n%s\n", input.Message)
	if leadID != "" {
		fmt.Fprintf(&b, "\nLead: %s", leadID)
	}
	return b.String()
}
