package waha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSendTextSuccess - Envio feliz manda sessão, chatId e texto no corpo
func TestSendTextSuccess(t *testing.T) {
	var got SendTextRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sendText", r.URL.Path)
		assert.Equal(t, "minha-chave", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := NewClient(server.URL, "minha-chave", "default")
	err := c.SendText(context.Background(), "5581999991234", "Olá!")

	assert.NoError(t, err)
	assert.Equal(t, "default", got.Session)
	assert.Equal(t, "5581999991234@c.us", got.ChatID)
	assert.Equal(t, "Olá!", got.Text)
}

// TestSendTextNonRetryableShortCircuits - Número inexistente não gasta retentativas
func TestSendTextNonRetryableShortCircuits(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(SendTextResponse{
			Exception: &ExceptionBody{Message: "Number does not exist on WhatsApp"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "", "default")
	err := c.SendText(context.Background(), "5581988880000", "Olá!")

	assert.ErrorIs(t, err, ErrNonRetryable)
	assert.Equal(t, 1, calls)
}

// TestSendTextRetriesServerErrors - Erro transitório é retentado até passar
func TestSendTextRetriesServerErrors(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, "", "default")
	err := c.SendText(context.Background(), "5581999991234", "Olá!")

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

// TestCheckNumberExists - A resposta do WAHA decide; erro assume que existe
func TestCheckNumberExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(NumberStatusResponse{NumberExists: false})
	}))
	defer server.Close()

	c := NewClient(server.URL, "", "default")
	assert.False(t, c.CheckNumberExists(context.Background(), "5581988880000"))

	server.Close()
	// Servidor fora do ar: assume true para não descartar lead à toa.
	assert.True(t, c.CheckNumberExists(context.Background(), "5581988880000"))
}

// TestChatIDStripsNonDigits - Formatos de exibição viram o JID do WhatsApp
func TestChatIDStripsNonDigits(t *testing.T) {
	assert.Equal(t, "5581999991234@c.us", chatID("+55 (81) 99999-1234"))
	assert.Equal(t, "5581999991234@c.us", chatID("5581999991234"))
}
