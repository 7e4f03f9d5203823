package usecase

import (
	"context"

	"github.com/zappyhq/maisleads/internal/entity"
	"github.com/zappyhq/maisleads/internal/infra/dispatch"
	"github.com/zappyhq/maisleads/internal/infra/proxy"
)

type CategoryExtractor interface {
	ExtractCategory(ctx context.Context, category, location string, p *proxy.Config) ([]entity.Candidate, error)
}

type ProxySource interface {
	Next() *proxy.Config
}

type LeadDispatcher interface {
	DispatchAll(ctx context.Context, runID string, leads []entity.Lead) dispatch.Report
}

// ProspectPublisher publica leads novos com celular válido na fila de
// prospecção (RabbitMQ). Opcional: nil desliga a publicação.
type ProspectPublisher interface {
	PublishProspect(ctx context.Context, lead entity.Lead) error
}
