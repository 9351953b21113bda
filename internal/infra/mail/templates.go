package mail

import (
	"fmt"

	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

// Templates são funções puras: mesma entrada, mesmo email. Nada de I/O aqui,
// o que mantém os templates testáveis sem SMTP nem disco.

var serviceLabels = map[string]string{
	"web-design":  "Design & Desenvolvimento Web",
	"mobile-app":  "Aplicativos Mobile",
	"ecommerce":   "E-commerce",
	"consulting":  "Consultoria Técnica",
	"maintenance": "Manutenção & Suporte",
}

// ServiceLabel traduz a categoria do formulário para o nome exibido no email
func ServiceLabel(service string) string {
	if label, ok := serviceLabels[service]; ok {
		return label
	}
	return "Projeto sob medida"
}

// ConfirmationEmail monta o email de confirmação enviado ao solicitante,
// escolhido pela categoria de serviço pedida.
func ConfirmationEmail(data TemplateData) RenderedEmail {
	label := ServiceLabel(data.Service)

	subject := fmt.Sprintf("Recebemos seu pedido de %s, %s!", label, data.Name)

	schedule := ""
	if data.PreferredDate != "" && data.PreferredTime != "" {
		schedule = fmt.Sprintf(
			"\nVocê pediu uma conversa para %s. Se o horário estiver livre, o convite da chamada chega em seguida no seu email.\n",
			data.PreferredDate,
		)
	}

	text := fmt.Sprintf(
		"Olá, %s!\n\n"+
			"Recebemos seu pedido de %s e já estamos analisando:\n\n"+
			"\"%s\"\n%s\n"+
			"Alguém do nosso time responde em até 1 dia útil.\n\n"+
			"— Studio",
		data.Name, label, data.Message, schedule,
	)

	html := fmt.Sprintf(
		`<html><body>
<p>Olá, <strong>%s</strong>!</p>
<p>Recebemos seu pedido de <strong>%s</strong> e já estamos analisando:</p>
<blockquote>%s</blockquote>
%s
<p>Alguém do nosso time responde em até 1 dia útil.</p>
<p>— Studio</p>
</body></html>`,
		data.Name, label, data.Message, htmlSchedule(data),
	)

	return RenderedEmail{Subject: subject, HTML: html, Text: text}
}

func htmlSchedule(data TemplateData) string {
	if data.PreferredDate == "" || data.PreferredTime == "" {
		return ""
	}
	return fmt.Sprintf(
		"<p>Você pediu uma conversa para <strong>%s</strong>. Se o horário estiver livre, o convite da chamada chega em seguida no seu email.</p>",
		data.PreferredDate,
	)
}

// AdminLeadEmail monta o aviso interno entregue pelo worker da fila
func AdminLeadEmail(payload queue.LeadBookedPayload) RenderedEmail {
	subject := fmt.Sprintf("Novo lead: %s (%s)", payload.Name, ServiceLabel(payload.Service))

	company := payload.Company
	if company == "" {
		company = "-"
	}
	phone := payload.Phone
	if phone == "" {
		phone = "-"
	}
	link := payload.CalendarEventLink
	if link == "" {
		link = "-"
	}

	text := fmt.Sprintf(
		"Lead: %s\nEmail: %s\nTelefone: %s\nEmpresa: %s\nServiço: %s\n\n"+
			"Mensagem:\n%s\n\n"+
			"Data pedida: %s %s\nEmail enviado: %t\nEvento criado: %t\nLink: %s\nLead ID: %s",
		payload.Name, payload.Email, phone, company, ServiceLabel(payload.Service),
		payload.Message,
		payload.PreferredDate, payload.PreferredTime,
		payload.EmailSent, payload.CalendarCreated, link, payload.LeadID,
	)

	return RenderedEmail{Subject: subject, Text: text}
}
