package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/studio-backend/internal/infra/mail"
	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

// TestServiceLabelMapping - categoria do formulário vira nome exibível
func TestServiceLabelMapping(t *testing.T) {
	assert.Equal(t, "Design & Desenvolvimento Web", mail.ServiceLabel("web-design"))
	assert.Equal(t, "Aplicativos Mobile", mail.ServiceLabel("mobile-app"))
	assert.Equal(t, "E-commerce", mail.ServiceLabel("ecommerce"))
	assert.Equal(t, "Consultoria Técnica", mail.ServiceLabel("consulting"))
	assert.Equal(t, "Manutenção & Suporte", mail.ServiceLabel("maintenance"))

	// Categoria desconhecida cai no rótulo genérico
	assert.Equal(t, "Projeto sob medida", mail.ServiceLabel("outra-coisa"))
	assert.Equal(t, "Projeto sob medida", mail.ServiceLabel(""))
}

// TestConfirmationEmailContent - template é função pura com o conteúdo esperado
func TestConfirmationEmailContent(t *testing.T) {
	data := mail.TemplateData{
		Name:          "Ana Lee",
		Company:       "Acme Corp",
		Service:       "web-design",
		Message:       "Precisamos de um site novo.",
		PreferredDate: "2025-06-01",
		PreferredTime: "2025-06-01T16:00:00Z",
	}

	email := mail.ConfirmationEmail(data)

	assert.Contains(t, email.Subject, "Ana Lee")
	assert.Contains(t, email.Subject, "Design & Desenvolvimento Web")

	assert.Contains(t, email.Text, "Ana Lee")
	assert.Contains(t, email.Text, "Precisamos de um site novo.")
	assert.Contains(t, email.Text, "2025-06-01")

	assert.Contains(t, email.HTML, "<strong>Ana Lee</strong>")
	assert.Contains(t, email.HTML, "Design & Desenvolvimento Web")

	// Determinístico: mesma entrada, mesmo email
	again := mail.ConfirmationEmail(data)
	assert.Equal(t, email, again)
}

// TestConfirmationEmailWithoutSchedule - sem data/hora não há bloco de agenda
func TestConfirmationEmailWithoutSchedule(t *testing.T) {
	data := mail.TemplateData{
		Name:    "Bruno",
		Service: "consulting",
		Message: "Quero uma avaliação da arquitetura.",
	}

	email := mail.ConfirmationEmail(data)

	assert.NotContains(t, email.Text, "Você pediu uma conversa")
	assert.NotContains(t, email.HTML, "Você pediu uma conversa")
}

// TestAdminLeadEmailContent - aviso interno carrega tudo que o time precisa
func TestAdminLeadEmailContent(t *testing.T) {
	payload := queue.LeadBookedPayload{
		LeadID:            "lead-123",
		Name:              "Ana Lee",
		Email:             "ana@company.io",
		Service:           "ecommerce",
		Message:           "Loja virtual nova.",
		PreferredDate:     "2025-06-01",
		PreferredTime:     "2025-06-01T16:00:00Z",
		EmailSent:         true,
		CalendarCreated:   true,
		CalendarEventLink: "https://meet.google.com/abc",
		Origin:            "BOOKING_API",
	}

	email := mail.AdminLeadEmail(payload)

	assert.Contains(t, email.Subject, "Ana Lee")
	assert.Contains(t, email.Subject, "E-commerce")
	assert.Contains(t, email.Text, "lead-123")
	assert.Contains(t, email.Text, "ana@company.io")
	assert.Contains(t, email.Text, "https://meet.google.com/abc")

	// Campos opcionais vazios viram "-" em vez de buracos no texto
	payload.Phone = ""
	payload.Company = ""
	payload.CalendarEventLink = ""
	email = mail.AdminLeadEmail(payload)
	assert.Contains(t, email.Text, "Telefone: -")
	assert.Contains(t, email.Text, "Empresa: -")
	assert.Contains(t, email.Text, "Link: -")
}
