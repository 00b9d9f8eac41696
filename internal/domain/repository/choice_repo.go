package repository

import (
	"context"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
)

// ChoiceRepository определяет методы для работы с вариантами ответа
type ChoiceRepository interface {
	Create(ctx context.Context, choice *entity.Choice) error
	GetByQuestionID(ctx context.Context, questionID uint) ([]entity.Choice, error)
	Delete(ctx context.Context, questionID, choiceID uint) error

	// IncrementVotes атомарно увеличивает votes на 1 у варианта choiceID,
	// только если он принадлежит вопросу questionID.
	// Возвращает apperrors.ErrNotFound, если такой пары нет.
	IncrementVotes(ctx context.Context, questionID, choiceID uint) (*entity.Choice, error)
}
