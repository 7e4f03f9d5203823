package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zappyhq/maisleads/internal/entity"
)

func testLeads(n int) []entity.Lead {
	leads := make([]entity.Lead, 0, n)
	for i := 0; i < n; i++ {
		leads = append(leads, entity.Lead{
			ID:           int64(i + 1),
			BusinessName: "Negócio " + string(rune('A'+i)),
			Category:     "Padarias",
			TargetSaaS:   entity.TargetZappy,
			CreatedAt:    time.Now(),
		})
	}
	return leads
}

// TestDispatchAllDeliversEveryLead - Um POST por lead, todos entregues
func TestDispatchAllDeliversEveryLead(t *testing.T) {
	var mu sync.Mutex
	var received []leadPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "chave-n8n", r.Header.Get("X-API-Key"))

		var p leadPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		mu.Lock()
		received = append(received, p)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewWebhookDispatcher(server.URL, "chave-n8n")
	report := d.DispatchAll(context.Background(), "run-123", testLeads(5))

	assert.Equal(t, Report{Attempted: 5, Delivered: 5}, report)
	assert.Len(t, received, 5)
	for _, p := range received {
		assert.Equal(t, "run-123", p.RunID)
		assert.Equal(t, "Padarias", p.Category)
	}
}

// TestDispatchAllFailureDoesNotBlockOthers - Falha de um lead não segura os demais
func TestDispatchAllFailureDoesNotBlockOthers(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p leadPayload
		json.NewDecoder(r.Body).Decode(&p)

		mu.Lock()
		calls++
		mu.Unlock()

		// O lead 3 sempre falha no lado do n8n.
		if p.ID == 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewWebhookDispatcher(server.URL, "")
	report := d.DispatchAll(context.Background(), "run-456", testLeads(5))

	assert.Equal(t, 5, report.Attempted)
	assert.Equal(t, 4, report.Delivered)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 5, calls)
}

// TestDispatchAllTimeoutCountsAsFailure - Endpoint pendurado estoura o timeout por lead
func TestDispatchAllTimeoutCountsAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewWebhookDispatcher(server.URL, "")
	d.SendTimeout = 20 * time.Millisecond
	report := d.DispatchAll(context.Background(), "run-789", testLeads(1))

	assert.Equal(t, Report{Attempted: 1, Delivered: 0, Failed: 1}, report)
}

// TestDispatchAllWithoutURLIsNoOp - Sem URL configurada nada é enviado
func TestDispatchAllWithoutURLIsNoOp(t *testing.T) {
	d := NewWebhookDispatcher("", "")
	report := d.DispatchAll(context.Background(), "run-000", testLeads(3))

	assert.Equal(t, Report{}, report)
}

// TestDispatchAllOmitsAPIKeyHeaderWhenUnset - Header X-API-Key só aparece com chave configurada
func TestDispatchAllOmitsAPIKeyHeaderWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		assert.False(t, present)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewWebhookDispatcher(server.URL, "")
	report := d.DispatchAll(context.Background(), "run-111", testLeads(1))

	assert.Equal(t, 1, report.Delivered)
}
