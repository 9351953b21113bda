package mail

import (
	"context"
	"log"

	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

// AdminAlertSender avisa o time interno sobre um lead novo. Usado pelo worker
// da fila, fora do caminho da requisição.
type AdminAlertSender struct {
	sender     *EmailSender
	adminEmail string
}

func NewAdminAlertSender(sender *EmailSender, adminEmail string) *AdminAlertSender {
	return &AdminAlertSender{
		sender:     sender,
		adminEmail: adminEmail,
	}
}

func (s *AdminAlertSender) SendLeadAlert(ctx context.Context, payload queue.LeadBookedPayload) error {
	if s.adminEmail == "" {
		log.Printf("⚠️ AdminAlert: ADMIN_EMAIL não configurado (lead %s fica sem aviso interno)", payload.LeadID)
		return nil
	}

	email := AdminLeadEmail(payload)

	if _, err := s.sender.Send(s.adminEmail, "Equipe Studio", email); err != nil {
		log.Printf("⚠️ AdminAlert: Falha ao avisar o time sobre o lead %s: %v", payload.LeadID, err)
		return err
	}

	return nil
}
