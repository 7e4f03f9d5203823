package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zappyhq/maisleads/internal/entity"
)

// ProspectPayload é a mensagem publicada para cada lead novo com celular
// válido. O worker de WhatsApp consome daqui.
type ProspectPayload struct {
	LeadID       int64  `json:"lead_id"`
	BusinessName string `json:"business_name"`
	WhatsApp     string `json:"whatsapp"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Category     string `json:"category"`
	TargetSaaS   string `json:"target_saas"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishProspect(ctx context.Context, lead entity.Lead) error {
	payload := ProspectPayload{
		LeadID:       lead.ID,
		BusinessName: lead.BusinessName,
		WhatsApp:     lead.WhatsApp,
		Neighborhood: lead.Neighborhood,
		Category:     lead.Category,
		TargetSaaS:   lead.TargetSaaS,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
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
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
