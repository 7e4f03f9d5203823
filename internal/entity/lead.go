package entity

import (
	"context"
	"time"
)

// Status de um lead. O scraper só cria leads como Pending; as transições
// seguintes pertencem ao fluxo de mensagens/dashboard.
const (
	StatusPending   = "Pending"
	StatusSent      = "Sent"
	StatusHot       = "Quente"
	StatusCold      = "Frio"
	StatusConverted = "Convertido"
	StatusRejected  = "Rejeitado"
)

// Target SaaS: para qual produto o lead é roteado.
const (
	TargetZappy  = "Zappy"
	TargetLojaky = "Lojaky"
)

type Lead struct {
	ID           int64      `json:"id"`
	BusinessName string     `json:"business_name"`
	WhatsApp     string     `json:"whatsapp,omitempty"`
	Neighborhood string     `json:"neighborhood,omitempty"`
	Category     string     `json:"category"`
	GoogleRating *float64   `json:"google_rating,omitempty"`
	Status       string     `json:"status"`
	TargetSaaS   string     `json:"target_saas"`
	CreatedAt    time.Time  `json:"created_at"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}

// Candidate é um registro extraído de uma entrada de resultado, antes da
// deduplicação e persistência.
type Candidate struct {
	BusinessName string
	WhatsApp     string
	Neighborhood string
	Category     string
	GoogleRating *float64
}

// DedupKey é o par único garantido pelo banco: (business_name, category).
func (c Candidate) DedupKey() string {
	return c.BusinessName + "|" + c.Category
}

type LeadFilter struct {
	Status     string
	Category   string
	TargetSaaS string
	Limit      int
}

type LeadStats struct {
	Total      int64            `json:"total"`
	WithPhone  int64            `json:"with_phone"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
	ByTarget   map[string]int64 `json:"by_target"`
}

type LeadRepositoryInterface interface {

	// InsertIfAbsent insere o lead se (business_name, category) ainda não
	// existe. Retorna true se uma linha nova foi criada.
	InsertIfAbsent(ctx context.Context, lead *Lead) (bool, error)

	List(ctx context.Context, filter LeadFilter) ([]Lead, error)
	Stats(ctx context.Context, targetSaaS string) (*LeadStats, error)
	MarkSent(ctx context.Context, id int64) error
	MarkCold(ctx context.Context, olderThan time.Duration) (int64, error)
}
