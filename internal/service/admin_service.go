package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	"github.com/nabelosaurus/polls-api/internal/domain/repository"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
)

const (
	maxTextLength      = 200
	defaultAdminPage   = 20
	maxAdminPageSize   = 100
	maxChoicesOnCreate = 20
)

// AdminService управляет вопросами и вариантами вне зависимости от даты публикации
type AdminService struct {
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
}

// NewAdminService создает новый административный сервис
func NewAdminService(questionRepo repository.QuestionRepository, choiceRepo repository.ChoiceRepository) *AdminService {
	return &AdminService{
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
	}
}

// CreateQuestion создает вопрос и, опционально, его варианты одной операцией
func (s *AdminService) CreateQuestion(ctx context.Context, questionText string, pubDate time.Time, choiceTexts []string) (*entity.Question, error) {
	text, err := normalizeText("question_text", questionText)
	if err != nil {
		return nil, err
	}
	if len(choiceTexts) > maxChoicesOnCreate {
		return nil, fmt.Errorf("%w: at most %d choices per request", apperrors.ErrValidation, maxChoicesOnCreate)
	}

	question := &entity.Question{
		QuestionText: text,
		PubDate:      pubDate,
	}
	for _, raw := range choiceTexts {
		choiceText, err := normalizeText("choice_text", raw)
		if err != nil {
			return nil, err
		}
		question.Choices = append(question.Choices, entity.Choice{ChoiceText: choiceText})
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	log.Printf("[AdminService] Создан вопрос ID=%d (pub_date=%s, choices=%d)", question.ID, question.PubDate.Format(time.RFC3339), len(question.Choices))
	return question, nil
}

// GetQuestion возвращает любой вопрос (включая неопубликованные) с вариантами
func (s *AdminService) GetQuestion(ctx context.Context, questionID uint) (*entity.Question, error) {
	return s.questionRepo.GetWithChoices(ctx, questionID)
}

// NormalizePage приводит номер и размер страницы к допустимым значениям:
// page >= 1, размер по умолчанию 20 и не больше 100
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultAdminPage
	}
	if pageSize > maxAdminPageSize {
		pageSize = maxAdminPageSize
	}
	return page, pageSize
}

// ListQuestions возвращает страницу всех вопросов и их общее количество
func (s *AdminService) ListQuestions(ctx context.Context, page, pageSize int) ([]entity.Question, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)
	offset := (page - 1) * pageSize
	return s.questionRepo.List(ctx, pageSize, offset)
}

// UpdateQuestion меняет текст и дату публикации вопроса
func (s *AdminService) UpdateQuestion(ctx context.Context, questionID uint, questionText string, pubDate time.Time) (*entity.Question, error) {
	text, err := normalizeText("question_text", questionText)
	if err != nil {
		return nil, err
	}

	question := &entity.Question{ID: questionID, QuestionText: text, PubDate: pubDate}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return s.questionRepo.GetWithChoices(ctx, questionID)
}

// DeleteQuestion удаляет вопрос вместе со всеми вариантами
func (s *AdminService) DeleteQuestion(ctx context.Context, questionID uint) error {
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return err
	}
	log.Printf("[AdminService] Удален вопрос ID=%d", questionID)
	return nil
}

// AddChoice добавляет вариант к вопросу; счетчик голосов начинается с нуля
func (s *AdminService) AddChoice(ctx context.Context, questionID uint, choiceText string) (*entity.Choice, error) {
	text, err := normalizeText("choice_text", choiceText)
	if err != nil {
		return nil, err
	}

	choice := &entity.Choice{QuestionID: questionID, ChoiceText: text}
	if err := s.choiceRepo.Create(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// DeleteChoice удаляет вариант вопроса
func (s *AdminService) DeleteChoice(ctx context.Context, questionID, choiceID uint) error {
	return s.choiceRepo.Delete(ctx, questionID, choiceID)
}

func normalizeText(field, value string) (string, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", fmt.Errorf("%w: %s must not be empty", apperrors.ErrValidation, field)
	}
	if len([]rune(text)) > maxTextLength {
		return "", fmt.Errorf("%w: %s must be at most %d characters", apperrors.ErrValidation, field, maxTextLength)
	}
	return text, nil
}
