package service

import (
	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
)

// InvalidChoiceError возвращается, когда вариант не выбран или не принадлежит вопросу.
// Содержит вопрос с вариантами, чтобы страницу можно было отрисовать повторно.
type InvalidChoiceError struct {
	Question *entity.Question
	Message  string
}

func (e *InvalidChoiceError) Error() string {
	return e.Message
}

func (e *InvalidChoiceError) Unwrap() error {
	return apperrors.ErrInvalidChoice
}
