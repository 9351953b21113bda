package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/xavierca1/studio-backend/internal/infra/queue"
)

// FollowupWorker varre leads parados em 'new' há mais de 24h, marca o
// follow-up no registro e republica na fila para o time ser avisado de novo.
// O sweep é idempotente: a cláusula NOT LIKE garante follow-up único por lead.
type FollowupWorker struct {
	db           *sql.DB
	producer     queue.QueueProducerInterface
	staleWindow  time.Duration
	tickInterval time.Duration
}

const followupMarker = "[follow-up] Lead sem resposta há mais de 24h"

func NewFollowupWorker(db *sql.DB, producer queue.QueueProducerInterface) *FollowupWorker {
	return &FollowupWorker{
		db:           db,
		producer:     producer,
		staleWindow:  24 * time.Hour,
		tickInterval: 15 * time.Minute,
	}
}

func (w *FollowupWorker) Start(ctx context.Context) {
	log.Println("🕒 Followup Worker iniciado (janela de 24h)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweepStaleLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Followup Worker encerrado")
			return
		case <-ticker.C:
			w.sweepStaleLeads(ctx)
		}
	}
}

func (w *FollowupWorker) sweepStaleLeads(ctx context.Context) {
	query := `
		UPDATE leads
		SET
			notes = TRIM(BOTH chr(10) FROM COALESCE(notes, '') || chr(10) || $1),
			updated_at = NOW()
		WHERE
			status = 'new'
			AND created_at < NOW() - INTERVAL '24 hours'
			AND COALESCE(notes, '') NOT LIKE '%' || $1 || '%'
		RETURNING id, name, email, COALESCE(phone, ''), COALESCE(company, ''),
			service, message, preferred_date, preferred_time,
			email_sent, calendar_created, COALESCE(calendar_event_link, '')
	`

	rows, err := w.db.QueryContext(ctx, query, followupMarker)
	if err != nil {
		log.Printf("❌ Erro ao varrer leads parados: %v", err)
		return
	}
	defer rows.Close()

	flagged := 0
	for rows.Next() {
		var p queue.LeadBookedPayload
		if err := rows.Scan(
			&p.LeadID, &p.Name, &p.Email, &p.Phone, &p.Company,
			&p.Service, &p.Message, &p.PreferredDate, &p.PreferredTime,
			&p.EmailSent, &p.CalendarCreated, &p.CalendarEventLink,
		); err != nil {
			log.Printf("⚠️ Erro ao escanear lead parado: %v", err)
			continue
		}
		p.Origin = "FOLLOWUP_WORKER"

		log.Printf("⏱️ Lead sem resposta: %s <%s> (desde o cadastro)", p.Name, p.Email)

		if w.producer != nil {
			if err := w.producer.PublishLeadBooked(ctx, p); err != nil {
				log.Printf("⚠️ Falha ao republicar lead %s para follow-up: %v", p.LeadID, err)
			}
		}
		flagged++
	}

	if flagged > 0 {
		log.Printf("✅ %d lead(s) marcados para follow-up", flagged)
	}
}
