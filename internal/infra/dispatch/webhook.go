package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/zappyhq/maisleads/internal/entity"
)

const (
	defaultSendTimeout = 30 * time.Second
	defaultConcurrency = 4
)

// WebhookDispatcher empurra cada lead novo para o endpoint de automação
// (n8n). Entrega é melhor esforço: uma tentativa por lead por ciclo, falha
// de um não segura os outros, e status nunca muda aqui.
type WebhookDispatcher struct {
	URL         string
	APIKey      string
	SendTimeout time.Duration
	Concurrency int
	Client      *http.Client
}

func NewWebhookDispatcher(url, apiKey string) *WebhookDispatcher {
	return &WebhookDispatcher{
		URL:         url,
		APIKey:      apiKey,
		SendTimeout: defaultSendTimeout,
		Concurrency: defaultConcurrency,
		Client:      &http.Client{},
	}
}

// Report resume o resultado de um lote de despacho.
type Report struct {
	Attempted int
	Delivered int
	Failed    int
}

type leadPayload struct {
	ID           int64    `json:"id"`
	BusinessName string   `json:"business_name"`
	WhatsApp     string   `json:"whatsapp,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Category     string   `json:"category"`
	GoogleRating *float64 `json:"google_rating,omitempty"`
	TargetSaaS   string   `json:"target_saas"`
	CreatedAt    string   `json:"created_at"`
	RunID        string   `json:"run_id,omitempty"`
}

// DispatchAll envia um POST por lead, com paralelismo limitado. Sem URL
// configurada vira no-op (os leads ficam no banco, só não são encaminhados).
func (d *WebhookDispatcher) DispatchAll(ctx context.Context, runID string, leads []entity.Lead) Report {
	if d.URL == "" {
		if len(leads) > 0 {
			log.Printf("⚠️ N8N_WEBHOOK_URL não configurada, %d leads não encaminhados", len(leads))
		}
		return Report{}
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	var mu sync.Mutex
	var wg sync.WaitGroup
	report := Report{Attempted: len(leads)}

	for _, lead := range leads {
		wg.Add(1)
		sem <- struct{}{}
		go func(lead entity.Lead) {
			defer wg.Done()
			defer func() { <-sem }()

			err := d.send(ctx, runID, lead)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				log.Printf("❌ Webhook falhou para %q (%s): %v", lead.BusinessName, lead.Category, err)
				return
			}
			report.Delivered++
		}(lead)
	}
	wg.Wait()

	log.Printf("📤 Despacho concluído: %d/%d entregues", report.Delivered, report.Attempted)
	return report
}

func (d *WebhookDispatcher) send(ctx context.Context, runID string, lead entity.Lead) error {
	payload := leadPayload{
		ID:           lead.ID,
		BusinessName: lead.BusinessName,
		WhatsApp:     lead.WhatsApp,
		Neighborhood: lead.Neighborhood,
		Category:     lead.Category,
		GoogleRating: lead.GoogleRating,
		TargetSaaS:   lead.TargetSaaS,
		CreatedAt:    lead.CreatedAt.Format(time.RFC3339),
		RunID:        runID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialização do lead: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.SendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(sendCtx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if d.APIKey != "" {
		req.Header.Set("X-API-Key", d.APIKey)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("webhook retornou %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
