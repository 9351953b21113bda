package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadBookedPayload: tudo que o worker precisa para avisar o time, sem voltar
// ao banco.
type LeadBookedPayload struct {
	LeadID string `json:"lead_id"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`

	Service       string `json:"service"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`

	EmailSent         bool   `json:"email_sent"`
	CalendarCreated   bool   `json:"calendar_created"`
	CalendarEventLink string `json:"calendar_event_link,omitempty"`

	Origin string `json:"origin"` // BOOKING_API, FOLLOWUP_WORKER
}

type QueueProducerInterface interface {
	PublishLeadBooked(ctx context.Context, payload LeadBookedPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadBooked(ctx context.Context, payload LeadBookedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
