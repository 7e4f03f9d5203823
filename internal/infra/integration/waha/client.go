package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxRetries   = 3
	retryBackoff = 2 // segundos
)

// ErrNonRetryable: o número não tem WhatsApp (ou JID inválido). Repetir o
// envio não muda nada; a mensagem deve ser descartada.
var ErrNonRetryable = errors.New("erro não retentável do WAHA")

// Erros que NÃO devem ser retentados.
var nonRetryableErrors = []string{
	"no lid for user",
	"number does not exist",
	"not registered",
	"invalid jid",
}

// Client fala com o WAHA (WhatsApp HTTP API) para enviar as mensagens de
// prospecção.
type Client struct {
	apiURL  string
	apiKey  string
	session string
	http    *http.Client
}

func NewClient(apiURL, apiKey, session string) *Client {
	return &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		apiKey:  apiKey,
		session: session,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SendText envia uma mensagem de texto com retentativas e backoff.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	payload := SendTextRequest{
		Session: c.session,
		ChatID:  chatID(phone),
		Text:    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		status, respBody, err := c.post(ctx, "/api/sendText", body)
		if err == nil && status < 300 {
			log.Printf("✅ WAHA: mensagem enviada para %s (status %d)", phone, status)
			return nil
		}

		if err == nil {
			var resp SendTextResponse
			_ = json.Unmarshal(respBody, &resp)
			if isNonRetryable(resp) {
				log.Printf("⚠️ WAHA: erro não retentável para %s: %s", phone, errorMessage(resp))
				return fmt.Errorf("%w: %s", ErrNonRetryable, errorMessage(resp))
			}
			lastErr = fmt.Errorf("waha retornou %d: %s", status, truncate(respBody, 200))
		} else {
			lastErr = err
		}
		log.Printf("⚠️ WAHA: envio para %s falhou (tentativa %d/%d): %v", phone, attempt, maxRetries, lastErr)

		if attempt < maxRetries {
			wait := time.Duration(math.Pow(retryBackoff, float64(attempt))) * time.Second
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("envio para %s falhou após %d tentativas: %w", phone, maxRetries, lastErr)
}

// CheckNumberExists consulta se o telefone tem WhatsApp. Em erro assume
// que existe; o envio em si é quem dá a resposta definitiva.
func (c *Client) CheckNumberExists(ctx context.Context, phone string) bool {
	endpoint := fmt.Sprintf("%s/api/checkNumberStatus?session=%s&phone=%s",
		c.apiURL, url.QueryEscape(c.session), url.QueryEscape(chatID(phone)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return true
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return true
	}
	var status NumberStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return true
	}
	return status.NumberExists
}

// CheckSession verifica se a sessão WAHA está ativa.
func (c *Client) CheckSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/api/sessions", nil)
	if err != nil {
		return err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("waha sessions retornou %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, respBody, nil
}

func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}

// chatID converte o telefone para o formato do WAHA: 5581999999999@c.us.
func chatID(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String() + "@c.us"
}

func isNonRetryable(resp SendTextResponse) bool {
	msg := strings.ToLower(errorMessage(resp))
	for _, e := range nonRetryableErrors {
		if strings.Contains(msg, e) {
			return true
		}
	}
	return false
}

func errorMessage(resp SendTextResponse) string {
	if resp.Exception != nil && resp.Exception.Message != "" {
		return resp.Exception.Message
	}
	return resp.Message
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
