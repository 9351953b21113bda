package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/studio-backend/internal/entity"
	"github.com/xavierca1/studio-backend/internal/infra/integration/gcal"
	"github.com/xavierca1/studio-backend/internal/infra/integration/shopify"
	"github.com/xavierca1/studio-backend/internal/infra/mail"
	"github.com/xavierca1/studio-backend/internal/infra/queue"
	"github.com/xavierca1/studio-backend/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, limit int) ([]*entity.Lead, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockCustomerRegistrar
type MockCustomerRegistrar struct {
	mock.Mock
}

func (m *MockCustomerRegistrar) CreateOrDetect(ctx context.Context, input shopify.RegisterInput) shopify.RegisterResult {
	args := m.Called(ctx, input)
	return args.Get(0).(shopify.RegisterResult)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(to, toName string, email mail.RenderedEmail) (string, error) {
	args := m.Called(to, toName, email)
	return args.String(0), args.Error(1)
}

// MockCalendarService
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) IsAvailable(ctx context.Context, start, end time.Time) (bool, error) {
	args := m.Called(ctx, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarService) CreateEvent(ctx context.Context, input gcal.EventInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadBooked(ctx context.Context, payload queue.LeadBookedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func validBookingInput() usecase.CreateBookingInput {
	return usecase.CreateBookingInput{
		Name:          "Ana Lee",
		Email:         "ana@company.io",
		Phone:         "+55 61 99999-0000",
		Company:       "Acme Corp",
		Service:       "web-design",
		Message:       "Precisamos de um site novo para o lançamento.",
		PreferredDate: "2025-06-01",
		PreferredTime: "2025-06-01T16:00:00Z",
	}
}

func newBookingUC(repo *MockLeadRepository, reg *MockCustomerRegistrar, email *MockEmailService, cal *MockCalendarService, q *MockQueueProducer) *usecase.CreateBookingUseCase {
	return usecase.NewCreateBookingUseCase(repo, reg, email, cal, q)
}

// ============ TESTES ============

// TestCreateBookingFullFlowSuccess - fluxo completo: lead salvo, cliente criado,
// email enviado, evento na agenda e mensagem na fila
func TestCreateBookingFullFlowSuccess(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{
		Success:    true,
		CustomerID: "gid://shopify/Customer/123",
		InviteSent: true,
	})
	mockEmail.On("Send", "ana@company.io", "Ana Lee", mock.Anything).Return("<abc-123@company.io>", nil)

	expectedStart := time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC)
	mockCalendar.On("IsAvailable", ctx, expectedStart, expectedEnd).Return(true, nil)
	mockCalendar.On("CreateEvent", ctx, mock.Anything).Return("https://meet.google.com/abc-defg-hij", nil)

	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.True(t, output.Success)
	assert.NotEmpty(t, output.LeadID)
	assert.True(t, output.EmailSent)
	assert.Equal(t, "<abc-123@company.io>", output.CustomerEmailID)
	assert.True(t, output.CalendarCreated)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", output.CalendarEventLink)

	// A janela do evento é exatamente 1 hora a partir do horário pedido
	mockCalendar.AssertCalled(t, "IsAvailable", ctx, expectedStart, expectedEnd)
	mockCalendar.AssertCalled(t, "CreateEvent", ctx, mock.MatchedBy(func(in gcal.EventInput) bool {
		return in.Start.Equal(expectedStart) && in.End.Equal(expectedEnd) &&
			in.AttendeeEmail == "ana@company.io"
	}))
	mockQueue.AssertCalled(t, "PublishLeadBooked", ctx, mock.MatchedBy(func(p queue.LeadBookedPayload) bool {
		return p.Origin == "BOOKING_API" && p.EmailSent && p.CalendarCreated
	}))
}

// TestCreateBookingMissingFields - validação roda antes de qualquer efeito colateral
func TestCreateBookingMissingFields(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)

	input := validBookingInput()
	input.Service = ""
	input.Message = "  " // só espaço conta como vazio

	output, err := uc.Execute(ctx, input)

	assert.Nil(t, output)
	assert.Error(t, err)
	assert.True(t, usecase.IsValidationError(err))
	assert.Equal(t, "Missing required fields", err.Error())

	// Nenhum efeito colateral
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRegistrar.AssertNotCalled(t, "CreateOrDetect", mock.Anything, mock.Anything)
	mockEmail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	mockCalendar.AssertNotCalled(t, "IsAvailable", mock.Anything, mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "PublishLeadBooked", mock.Anything, mock.Anything)
}

// TestCreateBookingInvalidEmail
func TestCreateBookingInvalidEmail(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	uc := newBookingUC(mockRepo, new(MockCustomerRegistrar), new(MockEmailService), new(MockCalendarService), new(MockQueueProducer))

	for _, bad := range []string{"ana", "ana@", "@company.io", "ana@company", "ana @company.io"} {
		input := validBookingInput()
		input.Email = bad

		output, err := uc.Execute(ctx, input)

		assert.Nil(t, output, "email %q deveria ser rejeitado", bad)
		assert.True(t, usecase.IsValidationError(err))
		assert.Equal(t, "Invalid email address", err.Error())
	}

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestCreateBookingRegistrarFailureDoesNotBlockFlow - Shopify fora do ar não
// impede email nem agenda
func TestCreateBookingRegistrarFailureDoesNotBlockFlow(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{
		Err: "503 service unavailable",
	})
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<msg-1@studio.dev>", nil)
	mockCalendar.On("IsAvailable", ctx, mock.Anything, mock.Anything).Return(true, nil)
	mockCalendar.On("CreateEvent", ctx, mock.Anything).Return("https://calendar.google.com/event?eid=xyz", nil)
	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.True(t, output.EmailSent)
	assert.True(t, output.CalendarCreated)

	mockEmail.AssertCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	mockCalendar.AssertCalled(t, "CreateEvent", ctx, mock.Anything)
}

// TestCreateBookingDuplicateCustomer - cliente já existente no Shopify não é erro
func TestCreateBookingDuplicateCustomer(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{
		IsDuplicate: true,
	})
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<msg-2@studio.dev>", nil)
	mockCalendar.On("IsAvailable", ctx, mock.Anything, mock.Anything).Return(true, nil)
	mockCalendar.On("CreateEvent", ctx, mock.Anything).Return("https://meet.google.com/dup-test", nil)
	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)

	// O duplicado vira anotação no lead
	mockRepo.AssertCalled(t, "Update", ctx, mock.Anything, mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.Note != nil && *p.Note == "Cliente já existia no Shopify"
	}))
}

// TestCreateBookingSlotConflict - horário ocupado é o ÚNICO abort do fluxo
func TestCreateBookingSlotConflict(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	var savedLeadID string
	mockRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		savedLeadID = args.Get(1).(*entity.Lead).ID
	}).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{Success: true, CustomerID: "c1"})
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<msg-3@studio.dev>", nil)
	mockCalendar.On("IsAvailable", ctx, mock.Anything, mock.Anything).Return(false, nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.Nil(t, output)
	assert.Error(t, err)
	assert.True(t, usecase.IsConflictError(err))
	assert.Equal(t, "Time slot no longer available", err.Error())

	// O lead NÃO se perde: o erro carrega o id salvo no banco
	conflict := err.(*usecase.ConflictError)
	assert.Equal(t, savedLeadID, conflict.LeadID)
	assert.NotEmpty(t, conflict.LeadID)

	// Nada de evento nem fila depois do conflito
	mockCalendar.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "PublishLeadBooked", mock.Anything, mock.Anything)

	// E o conflito fica anotado no registro
	mockRepo.AssertCalled(t, "Update", ctx, savedLeadID, mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.Note != nil
	}))
}

// TestCreateBookingStoreFailureStillServesCustomer - banco fora do ar: o
// cliente ainda recebe confirmação e agenda; só não há cliente no Shopify
// (nada para amarrar o cadastro)
func TestCreateBookingStoreFailureStillServesCustomer(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<msg-4@studio.dev>", nil)
	mockCalendar.On("IsAvailable", ctx, mock.Anything, mock.Anything).Return(true, nil)
	mockCalendar.On("CreateEvent", ctx, mock.Anything).Return("https://meet.google.com/no-db", nil)
	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Empty(t, output.LeadID)
	assert.True(t, output.EmailSent)
	assert.True(t, output.CalendarCreated)

	// Sem lead persistido não há cadastro no Shopify nem Update
	mockRegistrar.AssertNotCalled(t, "CreateOrDetect", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	// Mas a fila ainda leva o lead para o time
	mockQueue.AssertCalled(t, "PublishLeadBooked", ctx, mock.Anything)
}

// TestCreateBookingEmailFailure - falha no SMTP vira email_sent=false, fluxo segue
func TestCreateBookingEmailFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{Success: true, CustomerID: "c2"})
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("smtp timeout"))
	mockCalendar.On("IsAvailable", ctx, mock.Anything, mock.Anything).Return(true, nil)
	mockCalendar.On("CreateEvent", ctx, mock.Anything).Return("https://meet.google.com/no-mail", nil)
	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.False(t, output.EmailSent)
	assert.Empty(t, output.CustomerEmailID)
	assert.True(t, output.CalendarCreated)

	mockRepo.AssertCalled(t, "Update", ctx, mock.Anything, mock.MatchedBy(func(p entity.LeadPatch) bool {
		return p.EmailSent != nil && !*p.EmailSent
	}))
}

// TestCreateBookingEventCreationFailure - agenda livre mas criação do evento
// falha: não é conflito, fluxo segue com calendar_created=false
func TestCreateBookingEventCreationFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{Success: true, CustomerID: "c3"})
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<msg-5@studio.dev>", nil)
	mockCalendar.On("IsAvailable", ctx, mock.Anything, mock.Anything).Return(true, nil)
	mockCalendar.On("CreateEvent", ctx, mock.Anything).Return("", errors.New("500 backend error"))
	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, validBookingInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.True(t, output.EmailSent)
	assert.False(t, output.CalendarCreated)
	assert.Empty(t, output.CalendarEventLink)

	mockQueue.AssertCalled(t, "PublishLeadBooked", ctx, mock.MatchedBy(func(p queue.LeadBookedPayload) bool {
		return !p.CalendarCreated
	}))
}

// TestCreateBookingUnparseableTimeIsNotConflict - horário ilegível não derruba
// o fluxo nem vira 409
func TestCreateBookingUnparseableTimeIsNotConflict(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockLeadRepository)
	mockRegistrar := new(MockCustomerRegistrar)
	mockEmail := new(MockEmailService)
	mockCalendar := new(MockCalendarService)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)
	mockRegistrar.On("CreateOrDetect", ctx, mock.Anything).Return(shopify.RegisterResult{Success: true, CustomerID: "c4"})
	mockEmail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return("<msg-6@studio.dev>", nil)
	mockQueue.On("PublishLeadBooked", ctx, mock.Anything).Return(nil)

	input := validBookingInput()
	input.PreferredTime = "a tarde, se der"

	uc := newBookingUC(mockRepo, mockRegistrar, mockEmail, mockCalendar, mockQueue)
	output, err := uc.Execute(ctx, input)

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.False(t, output.CalendarCreated)

	mockCalendar.AssertNotCalled(t, "IsAvailable", mock.Anything, mock.Anything, mock.Anything)
	mockCalendar.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

// TestParseWhenLayouts - formatos aceitos para data + hora
func TestParseWhenLayouts(t *testing.T) {
	cases := []struct {
		date, clock string
		want        time.Time
	}{
		{"2025-06-01", "2025-06-01T16:00:00Z", time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)},
		{"2025-06-01", "16:00", time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)},
		{"2025-06-01", "4:00 PM", time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := usecase.ParseWhen(tc.date, tc.clock)
		assert.NoError(t, err, "%s %s", tc.date, tc.clock)
		assert.True(t, got.Equal(tc.want), "%s %s: got %s", tc.date, tc.clock, got)
	}

	_, err := usecase.ParseWhen("2025-06-01", "a tarde")
	assert.Error(t, err)
}
