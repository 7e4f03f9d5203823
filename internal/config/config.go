package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zappyhq/maisleads/internal/entity"
)

// Config reúne tudo que o processo consome do ambiente. Os valores chegam
// já validados aos componentes; ninguém mais lê os.Getenv.
type Config struct {
	DatabaseURL string

	WebhookURL    string
	WebhookAPIKey string

	ScrapeInterval  time.Duration
	ScraperEnabled  bool
	DashboardPort   int
	ProxyList       []string
	Mode            string
	ScrapeCities    []string
	RequireWhatsApp bool

	// WAHA (WhatsApp HTTP API)
	WahaAPIURL   string
	WahaAPIKey   string
	WahaSession  string
	MessageDelay time.Duration

	// RabbitMQ (fila de prospecção)
	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	// Relatório de ciclo por e-mail (opcional)
	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailTo   string
}

func (c *Config) WahaEnabled() bool   { return c.WahaAPIURL != "" }
func (c *Config) RabbitEnabled() bool { return c.RabbitHost != "" }
func (c *Config) MailEnabled() bool   { return c.MailHost != "" && c.MailTo != "" }

// Load monta a configuração a partir das variáveis de ambiente.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL é obrigatória")
	}

	mode := strings.ToLower(strings.TrimSpace(getEnv("PROSPECTOR_MODE", entity.ModeZappy)))
	if !entity.ValidMode(mode) {
		return nil, fmt.Errorf("PROSPECTOR_MODE deve ser 'zappy' ou 'lojaky', recebi %q", mode)
	}

	interval, err := getSeconds("SCRAPE_INTERVAL", 3600)
	if err != nil {
		return nil, err
	}
	msgDelay, err := getSeconds("MESSAGE_DELAY", 3)
	if err != nil {
		return nil, err
	}

	port, err := getInt("PORT", getEnvInt("DASHBOARD_PORT", 8080))
	if err != nil {
		return nil, err
	}
	mailPort, err := getInt("MAIL_PORT", 587)
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:     databaseURL,
		WebhookURL:      os.Getenv("N8N_WEBHOOK_URL"),
		WebhookAPIKey:   os.Getenv("N8N_WEBHOOK_API_KEY"),
		ScrapeInterval:  interval,
		ScraperEnabled:  getBool("SCRAPER_ENABLED", false),
		DashboardPort:   port,
		ProxyList:       splitList(os.Getenv("PROXY_LIST")),
		Mode:            mode,
		ScrapeCities:    splitList(os.Getenv("SCRAPE_CITIES")),
		RequireWhatsApp: getBool("REQUIRE_WHATSAPP", false),
		WahaAPIURL:      strings.TrimRight(os.Getenv("WAHA_API_URL"), "/"),
		WahaAPIKey:      os.Getenv("WAHA_API_KEY"),
		WahaSession:     getEnv("WAHA_SESSION", "default"),
		MessageDelay:    msgDelay,
		RabbitUser:      os.Getenv("RABBITMQ_USER"),
		RabbitPass:      os.Getenv("RABBITMQ_PASS"),
		RabbitHost:      os.Getenv("RABBITMQ_HOST"),
		RabbitPort:      getEnv("RABBITMQ_PORT", "5672"),
		MailHost:        os.Getenv("MAIL_HOST"),
		MailPort:        mailPort,
		MailUser:        os.Getenv("MAIL_USER"),
		MailPass:        os.Getenv("MAIL_PASS"),
		MailTo:          os.Getenv("MAIL_REPORT_TO"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := getInt(key, fallback)
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s inválida: %q", key, raw)
	}
	return v, nil
}

func getSeconds(key string, fallback int) (time.Duration, error) {
	v, err := getInt(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(v) * time.Second, nil
}

func getBool(key string, fallback bool) bool {
	raw := strings.ToLower(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	return raw == "true" || raw == "1" || raw == "yes"
}

// splitList quebra listas separadas por vírgula, descartando vazios:
// "http://a:3128, http://b:3128" → ["http://a:3128", "http://b:3128"].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
