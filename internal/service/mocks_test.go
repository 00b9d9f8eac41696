package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестов сервисов
// ============================================================================

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetWithChoices(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListPublished(ctx context.Context, now time.Time, limit int) ([]entity.Question, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, limit, offset int) ([]entity.Question, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Question), args.Get(1).(int64), args.Error(2)
}

// MockChoiceRepository реализует repository.ChoiceRepository
type MockChoiceRepository struct {
	mock.Mock
}

func (m *MockChoiceRepository) Create(ctx context.Context, choice *entity.Choice) error {
	args := m.Called(ctx, choice)
	return args.Error(0)
}

func (m *MockChoiceRepository) GetByQuestionID(ctx context.Context, questionID uint) ([]entity.Choice, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Choice), args.Error(1)
}

func (m *MockChoiceRepository) Delete(ctx context.Context, questionID, choiceID uint) error {
	args := m.Called(ctx, questionID, choiceID)
	return args.Error(0)
}

func (m *MockChoiceRepository) IncrementVotes(ctx context.Context, questionID, choiceID uint) (*entity.Choice, error) {
	args := m.Called(ctx, questionID, choiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Choice), args.Error(1)
}
