package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zappyhq/maisleads/internal/config"
	"github.com/zappyhq/maisleads/internal/entity"
	"github.com/zappyhq/maisleads/internal/infra/database"
	"github.com/zappyhq/maisleads/internal/infra/dispatch"
	"github.com/zappyhq/maisleads/internal/infra/http/handlers"
	"github.com/zappyhq/maisleads/internal/infra/http/middleware"
	"github.com/zappyhq/maisleads/internal/infra/integration/waha"
	"github.com/zappyhq/maisleads/internal/infra/mail"
	"github.com/zappyhq/maisleads/internal/infra/proxy"
	"github.com/zappyhq/maisleads/internal/infra/queue"
	"github.com/zappyhq/maisleads/internal/infra/scraper"
	"github.com/zappyhq/maisleads/internal/infra/worker"
	"github.com/zappyhq/maisleads/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("❌ Migração falhou: %v", err)
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)

	// 2. RabbitMQ + WAHA (opcionais: sem eles o envio de WhatsApp fica desligado)
	var rabbitMQ *queue.RabbitMQ
	var producer *queue.RabbitMQProducer
	if cfg.RabbitEnabled() {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
		if err != nil {
			log.Fatalf("❌ RabbitMQ indisponível: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		log.Println("🐇 RabbitMQ conectado, fila de prospecção ativa")
	} else {
		log.Println("⚠️ RABBITMQ_HOST ausente, fila de prospecção desligada")
	}

	if cfg.WahaEnabled() && rabbitMQ != nil {
		wahaClient := waha.NewClient(cfg.WahaAPIURL, cfg.WahaAPIKey, cfg.WahaSession)
		if err := wahaClient.CheckSession(ctx); err != nil {
			log.Printf("⚠️ Sessão WAHA não respondeu: %v (worker sobe mesmo assim)", err)
		}
		prospectWorker := queue.NewWorker(rabbitMQ.Ch, wahaClient, leadRepo, cfg.MessageDelay)
		go prospectWorker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ WAHA desconfigurado, mensagens de WhatsApp desligadas")
	}

	// Reenfileira pendências de ciclos anteriores (fila fora do ar, restart
	// no meio do ciclo).
	if producer != nil {
		go backfillProspects(ctx, leadRepo, producer, entity.TargetForMode(cfg.Mode))
	}

	// 3. Pipeline de scraping
	rotator := proxy.NewRotator(cfg.ProxyList)
	extractor := scraper.NewExtractor()
	dispatcher := dispatch.NewWebhookDispatcher(cfg.WebhookURL, cfg.WebhookAPIKey)

	pipeline := &usecase.RunPipelineUseCase{
		Repo:            leadRepo,
		Extractor:       extractor,
		Proxies:         rotator,
		Dispatcher:      dispatcher,
		Mode:            cfg.Mode,
		ScrapeCities:    cfg.ScrapeCities,
		RequireWhatsApp: cfg.RequireWhatsApp,
	}
	if producer != nil {
		pipeline.Queue = producer
	}

	// 4. Workers de fundo
	if cfg.ScraperEnabled {
		scheduler := worker.NewScrapeScheduler(pipeline, cfg.ScrapeInterval)
		if cfg.MailEnabled() {
			mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailUser)
			scheduler.WithReport(mailSender, cfg.MailTo)
		}
		go scheduler.Start(ctx)
		log.Printf("🔍 Scraper ligado: modo=%s intervalo=%s proxies=%d", cfg.Mode, cfg.ScrapeInterval, rotator.Count())
	} else {
		log.Println("⚠️ SCRAPER_ENABLED=false, rodando só o dashboard")
	}
	go worker.NewColdLeadWorker(leadRepo).Start(ctx)

	// 5. Handlers
	var rabbitConn *amqp.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	statsHandler := handlers.NewStatsHandler(leadRepo)
	exportHandler := handlers.NewExportHandler(leadRepo)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Get("/api/leads", leadHandler.List)
	r.Get("/api/stats", statsHandler.Handle)
	r.Get("/api/export/csv", exportHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.DashboardPort)
	log.Printf("🔥 Dashboard +Leads rodando na porta %s (modo %s)", addr, cfg.Mode)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

const backfillBatch = 500

func backfillProspects(ctx context.Context, repo *database.LeadRepository, producer *queue.RabbitMQProducer, target string) {
	pending, err := repo.FetchPendingProspects(ctx, target, backfillBatch)
	if err != nil {
		log.Printf("⚠️ Busca de pendências falhou: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	published := 0
	for _, lead := range pending {
		if err := producer.PublishProspect(ctx, lead); err != nil {
			log.Printf("⚠️ Reenfileiramento parou em %q: %v", lead.BusinessName, err)
			break
		}
		published++
	}
	log.Printf("🐇 %d lead(s) pendentes reenfileirados para prospecção", published)
}
