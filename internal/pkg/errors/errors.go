package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда вопрос или вариант не найдены.
	// Неопубликованный вопрос (pub_date в будущем) тоже возвращает ErrNotFound:
	// наружу нельзя раскрывать, что такой вопрос существует.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidChoice используется, когда вариант ответа не выбран, не парсится
	// или принадлежит другому вопросу.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, нарушение уникальности).
	ErrConflict = errors.New("resource state conflict")
)

// MsgNoChoiceSelected показывается пользователю при ErrInvalidChoice.
const MsgNoChoiceSelected = "You didn't select a choice"
