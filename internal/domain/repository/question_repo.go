package repository

import (
	"context"
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	// GetWithChoices возвращает вопрос вместе с вариантами, упорядоченными по id
	GetWithChoices(ctx context.Context, id uint) (*entity.Question, error)
	Update(ctx context.Context, question *entity.Question) error
	// Delete удаляет вопрос и каскадно все его варианты
	Delete(ctx context.Context, id uint) error

	// ListPublished возвращает до limit вопросов с pub_date <= now,
	// отсортированных по pub_date DESC, id DESC
	ListPublished(ctx context.Context, now time.Time, limit int) ([]entity.Question, error)
	// List возвращает все вопросы (включая неопубликованные) с пагинацией
	List(ctx context.Context, limit, offset int) ([]entity.Question, int64, error)
}
