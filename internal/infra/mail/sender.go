package mail

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// Send entrega o email e devolve o Message-ID. O SMTP não devolve id de
// provedor, então o Message-ID é gerado aqui e vira o customerEmailId da
// resposta da API.
func (s *EmailSender) Send(to, toName string, email RenderedEmail) (string, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", email.Subject)

	messageID := newMessageID(s.From)
	m.SetHeader("Message-ID", messageID)

	m.SetBody("text/plain", email.Text)
	if email.HTML != "" {
		m.AddAlternative("text/html", email.HTML)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return "", fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return messageID, nil
}

func newMessageID(from string) string {
	domain := "studio.local"
	if at := strings.LastIndex(from, "@"); at >= 0 {
		domain = strings.Trim(from[at+1:], "> ")
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
