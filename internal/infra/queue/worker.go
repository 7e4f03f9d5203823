package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zappyhq/maisleads/internal/entity"
	"github.com/zappyhq/maisleads/internal/infra/integration/waha"
)

// MessageSender define o contrato para o envio das mensagens de prospecção
// (WAHA em produção, mock nos testes).
type MessageSender interface {
	SendText(ctx context.Context, phone, text string) error
}

// Worker consome a fila de prospecção e dispara a mensagem de apresentação
// para cada lead novo. O status 'Sent' só é gravado após o envio confirmado.
type Worker struct {
	Channel      *amqp.Channel
	Sender       MessageSender
	Repo         entity.LeadRepositoryInterface
	MessageDelay time.Duration
}

func NewWorker(ch *amqp.Channel, sender MessageSender, repo entity.LeadRepositoryInterface, delay time.Duration) *Worker {
	return &Worker{
		Channel:      ch,
		Sender:       sender,
		Repo:         repo,
		MessageDelay: delay,
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
			var payload ProspectPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Prospectando: %s (%s - %s)", payload.BusinessName, payload.Category, payload.WhatsApp)

			if err := w.processMessage(context.Background(), payload); err != nil {
				if errors.Is(err, waha.ErrNonRetryable) {
					// Número sem WhatsApp. Vai direto para a DLQ.
					log.Printf("⚠️ [WORKER] Número descartado: %s (%s)", payload.WhatsApp, payload.BusinessName)
					d.Nack(false, false)
				} else {
					log.Printf("❌ [WORKER] Erro no envio: %s", err)
					d.Nack(false, false)
				}
			} else {
				log.Printf("✅ [WORKER] Mensagem enviada para %s (%s)", payload.BusinessName, payload.WhatsApp)
				d.Ack(false) // Confirma o sucesso e remove da fila
			}

			// Pausa entre envios para não derrubar a sessão do WhatsApp.
			if w.MessageDelay > 0 {
				time.Sleep(w.MessageDelay)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload ProspectPayload) error {
	text := PitchFor(payload.TargetSaaS)

	if err := w.Sender.SendText(ctx, payload.WhatsApp, text); err != nil {
		return err
	}

	if err := w.Repo.MarkSent(ctx, payload.LeadID); err != nil {
		// Mensagem já saiu; falha no banco não justifica reenviar.
		log.Printf("⚠️ [WORKER] Envio ok mas falhou ao marcar Sent (lead %d): %v", payload.LeadID, err)
	}
	return nil
}
