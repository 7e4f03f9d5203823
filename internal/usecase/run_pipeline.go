package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/zappyhq/maisleads/internal/entity"
	"github.com/zappyhq/maisleads/internal/infra/dispatch"
	"github.com/zappyhq/maisleads/internal/infra/scraper"
)

// RunPipelineUseCase executa um ciclo completo: varre as categorias do
// modo, deduplica, persiste e despacha só o que entrou de novo. O ciclo é
// uma função de (config, estado do banco); rodar de novo do zero é seguro
// porque o insert condicional tolera repetição.
type RunPipelineUseCase struct {
	Repo       entity.LeadRepositoryInterface
	Extractor  CategoryExtractor
	Proxies    ProxySource
	Dispatcher LeadDispatcher
	Queue      ProspectPublisher // opcional

	Mode            string
	ScrapeCities    []string
	RequireWhatsApp bool
}

type RunResult struct {
	RunID         string          `json:"run_id"`
	Mode          string          `json:"mode"`
	Extracted     int             `json:"extracted"`
	Deduplicated  int             `json:"deduplicated"`
	AlreadyKnown  int             `json:"already_known"`
	NewLeads      []entity.Lead   `json:"new_leads"`
	FailedQueries []string        `json:"failed_queries"`
	Dispatch      dispatch.Report `json:"dispatch"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    time.Time       `json:"finished_at"`
}

// Execute roda o ciclo. Erros de sessão são isolados por consulta; erro de
// armazenamento é fatal para o lote e sobe junto com o resultado parcial.
func (uc *RunPipelineUseCase) Execute(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.NewString(),
		Mode:      uc.Mode,
		StartedAt: time.Now(),
	}
	defer func() { result.FinishedAt = time.Now() }()

	categories := entity.CategoriesForMode(uc.Mode)
	locations := entity.BuildLocations(uc.ScrapeCities)
	target := entity.TargetForMode(uc.Mode)

	totalQueries := len(categories) * len(locations)
	log.Printf("═══ Ciclo %s ═══ modo=%s: %d categorias × %d localidades = %d consultas",
		result.RunID, uc.Mode, len(categories), len(locations), totalQueries)

	candidates := uc.collect(ctx, categories, locations, result)
	result.Extracted = len(candidates)

	deduped := dedupInRun(candidates)
	result.Deduplicated = len(deduped)

	for _, cand := range deduped {
		if uc.RequireWhatsApp && cand.WhatsApp == "" {
			continue
		}

		lead := &entity.Lead{
			BusinessName: cand.BusinessName,
			WhatsApp:     cand.WhatsApp,
			Neighborhood: cand.Neighborhood,
			Category:     cand.Category,
			GoogleRating: cand.GoogleRating,
			TargetSaaS:   target,
		}

		inserted, err := uc.Repo.InsertIfAbsent(ctx, lead)
		if err != nil {
			// Erro de armazenamento de verdade (conflito esperado não chega
			// aqui): aborta o lote sem engolir o que já foi inserido.
			uc.finish(ctx, result)
			return result, fmt.Errorf("persistência do lote falhou: %w", err)
		}
		if inserted {
			result.NewLeads = append(result.NewLeads, *lead)
			log.Printf("  → Lead novo: %s | %s | %s", lead.BusinessName, orDash(lead.WhatsApp), orDash(lead.Neighborhood))
		} else {
			result.AlreadyKnown++
		}
	}

	uc.finish(ctx, result)
	log.Printf("Ciclo %s completo: %d extraídos, %d novos, %d já conhecidos, %d consultas falharam",
		result.RunID, result.Extracted, len(result.NewLeads), result.AlreadyKnown, len(result.FailedQueries))
	return result, nil
}

func (uc *RunPipelineUseCase) collect(ctx context.Context, categories, locations []string, result *RunResult) []entity.Candidate {
	var candidates []entity.Candidate
	queryNum := 0

	for _, category := range categories {
		for _, location := range locations {
			queryNum++
			if ctx.Err() != nil {
				log.Printf("⚠️ Ciclo %s cancelado na consulta %d", result.RunID, queryNum)
				return candidates
			}

			proxyCfg := uc.Proxies.Next()
			if proxyCfg != nil {
				log.Printf("Usando proxy: %s", proxyCfg.Server)
			}

			cands, err := uc.Extractor.ExtractCategory(ctx, category, location, proxyCfg)
			if err != nil {
				// Falha de sessão fica contida nesta consulta.
				query := fmt.Sprintf("%s @ %s", category, location)
				result.FailedQueries = append(result.FailedQueries, query)
				if errors.Is(err, scraper.ErrSessionBlocked) {
					log.Printf("🚫 Bloqueio detectado em %q, consulta pulada neste ciclo", query)
				} else {
					log.Printf("❌ Consulta %q falhou: %v", query, err)
				}
				continue
			}
			candidates = append(candidates, cands...)
		}
	}
	return candidates
}

// finish despacha os leads novos e publica os prospectáveis na fila.
func (uc *RunPipelineUseCase) finish(ctx context.Context, result *RunResult) {
	if len(result.NewLeads) == 0 {
		return
	}

	result.Dispatch = uc.Dispatcher.DispatchAll(ctx, result.RunID, result.NewLeads)

	if uc.Queue == nil {
		return
	}
	for _, lead := range result.NewLeads {
		if !scraper.ValidProspectNumber(lead.WhatsApp) {
			continue
		}
		if err := uc.Queue.PublishProspect(ctx, lead); err != nil {
			log.Printf("⚠️ Publicação na fila falhou para %q: %v", lead.BusinessName, err)
		}
	}
}

// dedupInRun remove duplicatas por (business_name, category) preservando a
// primeira ocorrência. O mesmo negócio aparece em buscas de bairros
// vizinhos o tempo todo.
func dedupInRun(candidates []entity.Candidate) []entity.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]entity.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
