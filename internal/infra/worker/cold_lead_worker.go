package worker

import (
	"context"
	"log"
	"time"

	"github.com/zappyhq/maisleads/internal/entity"
)

// ColdLeadWorker esfria leads prospectados que ficaram sem resposta: Sent
// há mais de 48h vira Frio, liberando o funil do time comercial.
type ColdLeadWorker struct {
	repo         entity.LeadRepositoryInterface
	coldWindow   time.Duration
	tickInterval time.Duration
}

func NewColdLeadWorker(repo entity.LeadRepositoryInterface) *ColdLeadWorker {
	return &ColdLeadWorker{
		repo:         repo,
		coldWindow:   48 * time.Hour,
		tickInterval: 2 * time.Hour,
	}
}

func (w *ColdLeadWorker) Start(ctx context.Context) {
	log.Println("🕒 Cold Lead Worker iniciado (janela de 48h)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.coolDown(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Cold Lead Worker encerrado")
			return
		case <-ticker.C:
			w.coolDown(ctx)
		}
	}
}

func (w *ColdLeadWorker) coolDown(ctx context.Context) {
	count, err := w.repo.MarkCold(ctx, w.coldWindow)
	if err != nil {
		log.Printf("❌ Erro ao esfriar leads: %v", err)
		return
	}
	if count > 0 {
		log.Printf("✅ %d lead(s) marcados como Frio", count)
	}
}
