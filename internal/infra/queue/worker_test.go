package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zappyhq/maisleads/internal/entity"
	"github.com/zappyhq/maisleads/internal/infra/integration/waha"
)

// ============ MOCKS ============

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendText(ctx context.Context, phone, text string) error {
	return m.Called(ctx, phone, text).Error(0)
}

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) InsertIfAbsent(ctx context.Context, lead *entity.Lead) (bool, error) {
	args := m.Called(ctx, lead)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, filter)
	return nil, args.Error(1)
}

func (m *MockRepo) Stats(ctx context.Context, targetSaaS string) (*entity.LeadStats, error) {
	args := m.Called(ctx, targetSaaS)
	return nil, args.Error(1)
}

func (m *MockRepo) MarkSent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) MarkCold(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// ============ TESTES DO WORKER ============

// TestProcessMessageSendsPitchAndMarksSent - Envio confirmado grava o status Sent
func TestProcessMessageSendsPitchAndMarksSent(t *testing.T) {
	sender := new(MockSender)
	repo := new(MockRepo)

	payload := ProspectPayload{
		LeadID:       42,
		BusinessName: "Padaria Sol",
		WhatsApp:     "5581999991234",
		Category:     "Padarias",
		TargetSaaS:   entity.TargetZappy,
	}

	sender.On("SendText", mock.Anything, "5581999991234", PitchFor(entity.TargetZappy)).Return(nil)
	repo.On("MarkSent", mock.Anything, int64(42)).Return(nil)

	w := NewWorker(nil, sender, repo, 0)
	err := w.processMessage(context.Background(), payload)

	assert.NoError(t, err)
	sender.AssertExpectations(t)
	repo.AssertExpectations(t)
}

// TestProcessMessageSendFailureSkipsMarkSent - Sem envio, o status não muda
func TestProcessMessageSendFailureSkipsMarkSent(t *testing.T) {
	sender := new(MockSender)
	repo := new(MockRepo)

	sender.On("SendText", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("waha retornou 500"))

	w := NewWorker(nil, sender, repo, 0)
	err := w.processMessage(context.Background(), ProspectPayload{LeadID: 7, WhatsApp: "5581999991234"})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything)
}

// TestProcessMessageNonRetryableBubblesUp - Número sem WhatsApp sobe como não retentável
func TestProcessMessageNonRetryableBubblesUp(t *testing.T) {
	sender := new(MockSender)
	repo := new(MockRepo)

	sender.On("SendText", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: number does not exist", waha.ErrNonRetryable))

	w := NewWorker(nil, sender, repo, 0)
	err := w.processMessage(context.Background(), ProspectPayload{LeadID: 9, WhatsApp: "5581988880000"})

	assert.ErrorIs(t, err, waha.ErrNonRetryable)
}

// TestProcessMessageMarkSentFailureIsNotFatal - Mensagem já saiu; falha no banco não reenvia
func TestProcessMessageMarkSentFailureIsNotFatal(t *testing.T) {
	sender := new(MockSender)
	repo := new(MockRepo)

	sender.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("MarkSent", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	w := NewWorker(nil, sender, repo, 0)
	err := w.processMessage(context.Background(), ProspectPayload{LeadID: 11, WhatsApp: "5581999991234"})

	assert.NoError(t, err)
}

// ============ TESTES DO PAYLOAD ============

// TestProspectPayloadMarshalling - Payload serializa com as chaves esperadas pelo worker
func TestProspectPayloadMarshalling(t *testing.T) {
	payload := ProspectPayload{
		LeadID:       42,
		BusinessName: "Padaria Sol",
		WhatsApp:     "5581999991234",
		Neighborhood: "Carmo",
		Category:     "Padarias",
		TargetSaaS:   entity.TargetZappy,
	}

	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	var data map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &data))

	assert.Equal(t, float64(42), data["lead_id"])
	assert.Equal(t, "Padaria Sol", data["business_name"])
	assert.Equal(t, "5581999991234", data["whatsapp"])
	assert.Equal(t, "Carmo", data["neighborhood"])
	assert.Equal(t, "Padarias", data["category"])
	assert.Equal(t, "Zappy", data["target_saas"])
}

// ============ TESTES DO PITCH ============

// TestPitchForSelectsProduct - Cada produto tem sua mensagem e seu link
func TestPitchForSelectsProduct(t *testing.T) {
	zappy := PitchFor(entity.TargetZappy)
	lojaky := PitchFor(entity.TargetLojaky)

	assert.Contains(t, zappy, "Somos do Zappy")
	assert.Contains(t, zappy, "https://zappy.noviapp.com.br/")
	assert.Contains(t, lojaky, "Somos do Lojaky")
	assert.Contains(t, lojaky, "https://lojaky.noviapp.com.br/")
	assert.NotEqual(t, zappy, lojaky)
}
