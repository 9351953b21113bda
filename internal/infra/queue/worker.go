package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AdminNotifier define o contrato do aviso interno (email hoje; o canal pode
// mudar sem tocar no worker)
type AdminNotifier interface {
	SendLeadAlert(ctx context.Context, payload LeadBookedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier AdminNotifier
}

func NewWorker(ch *amqp.Channel, notifier AdminNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadBookedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Lead recebido: %s (origem: %s)", payload.Name, payload.Origin)

			if err := w.Notifier.SendLeadAlert(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Falha no aviso interno do lead %s: %s", payload.LeadID, err)
				// Vai para a DLQ; o lead em si já está salvo no banco.
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
