package worker

import (
	"context"
	"log"
	"time"

	"github.com/zappyhq/maisleads/internal/infra/http/middleware"
	"github.com/zappyhq/maisleads/internal/infra/mail"
	"github.com/zappyhq/maisleads/internal/usecase"
)

// ReportSender envia o resumo do ciclo por email (opcional).
type ReportSender interface {
	SendRunReport(to string, data mail.RunReportData) error
}

// ScrapeScheduler dispara o ciclo de prospecção em intervalos fixos. O
// primeiro ciclo roda na subida, os demais no tick.
type ScrapeScheduler struct {
	pipeline     *usecase.RunPipelineUseCase
	tickInterval time.Duration
	reporter     ReportSender
	reportTo     string
}

func NewScrapeScheduler(pipeline *usecase.RunPipelineUseCase, interval time.Duration) *ScrapeScheduler {
	return &ScrapeScheduler{
		pipeline:     pipeline,
		tickInterval: interval,
	}
}

// WithReport liga o envio de resumo por email ao fim de cada ciclo.
func (w *ScrapeScheduler) WithReport(reporter ReportSender, to string) *ScrapeScheduler {
	w.reporter = reporter
	w.reportTo = to
	return w
}

func (w *ScrapeScheduler) Start(ctx context.Context) {
	log.Printf("🕒 Scrape Scheduler iniciado (intervalo %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Scrape Scheduler encerrado")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *ScrapeScheduler) runCycle(ctx context.Context) {
	result, err := w.pipeline.Execute(ctx)
	if err != nil {
		log.Printf("❌ Ciclo de prospecção falhou: %v", err)
	}
	if result == nil {
		return
	}

	for _, lead := range result.NewLeads {
		middleware.RecordLeadInserted(lead.TargetSaaS)
	}
	for range result.FailedQueries {
		middleware.RecordScrapeError("session")
	}
	for i := 0; i < result.Dispatch.Delivered; i++ {
		middleware.RecordWebhookDelivery("delivered")
	}
	for i := 0; i < result.Dispatch.Failed; i++ {
		middleware.RecordWebhookDelivery("failed")
	}

	w.sendReport(result)
}

func (w *ScrapeScheduler) sendReport(result *usecase.RunResult) {
	if w.reporter == nil || w.reportTo == "" {
		return
	}

	data := mail.RunReportData{
		RunID:         result.RunID,
		Mode:          result.Mode,
		Extracted:     result.Extracted,
		Deduplicated:  result.Deduplicated,
		AlreadyKnown:  result.AlreadyKnown,
		NewLeads:      len(result.NewLeads),
		Delivered:     result.Dispatch.Delivered,
		FailedQueries: result.FailedQueries,
		Duration:      result.FinishedAt.Sub(result.StartedAt).Round(time.Second).String(),
	}
	if err := w.reporter.SendRunReport(w.reportTo, data); err != nil {
		log.Printf("⚠️ Falha ao enviar resumo por email: %v", err)
	}
}
