package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zappyhq/maisleads/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) InsertIfAbsent(ctx context.Context, lead *entity.Lead) (bool, error) {
	args := m.Called(ctx, lead)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, filter)
	return nil, args.Error(1)
}

func (m *MockLeadRepository) Stats(ctx context.Context, targetSaaS string) (*entity.LeadStats, error) {
	args := m.Called(ctx, targetSaaS)
	return nil, args.Error(1)
}

func (m *MockLeadRepository) MarkSent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) MarkCold(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// TestColdLeadWorkerUsesConfiguredWindow - A janela de 48h chega intacta no repositório
func TestColdLeadWorkerUsesConfiguredWindow(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("MarkCold", mock.Anything, 48*time.Hour).Return(int64(3), nil)

	w := NewColdLeadWorker(repo)
	w.coolDown(context.Background())

	repo.AssertExpectations(t)
}

// TestColdLeadWorkerSurvivesRepoError - Erro de banco só loga; o próximo tick tenta de novo
func TestColdLeadWorkerSurvivesRepoError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("MarkCold", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	w := NewColdLeadWorker(repo)

	assert.NotPanics(t, func() { w.coolDown(context.Background()) })
}
