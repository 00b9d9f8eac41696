package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	"github.com/nabelosaurus/polls-api/internal/domain/repository"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
)

// DefaultLatestLimit — сколько вопросов показывает главная страница
const DefaultLatestLimit = 5

// PollService реализует публичную часть опросов: список, детали, результаты, голосование
type PollService struct {
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	latestLimit  int
	now          func() time.Time
}

// NewPollService создает новый сервис опросов
func NewPollService(
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
	latestLimit int,
) *PollService {
	if latestLimit <= 0 {
		latestLimit = DefaultLatestLimit
	}
	return &PollService{
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
		latestLimit:  latestLimit,
		now:          time.Now,
	}
}

// VoteResult описывает принятый голос и куда перенаправить пользователя
type VoteResult struct {
	Question   *entity.Question
	Choice     *entity.Choice
	RedirectTo string
}

// ResultsPath возвращает путь страницы результатов вопроса
func ResultsPath(questionID uint) string {
	return fmt.Sprintf("/%d/results/", questionID)
}

// LatestQuestions возвращает последние опубликованные вопросы для главной страницы
func (s *PollService) LatestQuestions(ctx context.Context) ([]entity.Question, error) {
	return s.ListRecent(ctx, s.latestLimit)
}

// ListRecent возвращает до limit опубликованных вопросов, новые первыми.
// Вопросы из будущего не попадают в выборку совсем.
func (s *PollService) ListRecent(ctx context.Context, limit int) ([]entity.Question, error) {
	if limit <= 0 {
		return []entity.Question{}, nil
	}
	questions, err := s.questionRepo.ListPublished(ctx, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent questions: %w", err)
	}
	return questions, nil
}

// GetPublishedQuestion возвращает вопрос, только если он опубликован.
// Отсутствующий и неопубликованный вопрос неразличимы: оба дают ErrNotFound.
func (s *PollService) GetPublishedQuestion(ctx context.Context, questionID uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !question.IsPublished(s.now()) {
		return nil, apperrors.ErrNotFound
	}
	return question, nil
}

// GetDetail возвращает опубликованный вопрос с вариантами для формы голосования
func (s *PollService) GetDetail(ctx context.Context, questionID uint) (*entity.Question, error) {
	return s.getPublishedWithChoices(ctx, questionID)
}

// GetResults возвращает опубликованный вопрос с вариантами и числом голосов
func (s *PollService) GetResults(ctx context.Context, questionID uint) (*entity.Question, error) {
	return s.getPublishedWithChoices(ctx, questionID)
}

// Vote принимает голос за вариант rawChoiceID вопроса questionID.
// rawChoiceID приходит из формы как есть: пустое или нечисловое значение,
// а также чужой вариант дают *InvalidChoiceError без каких-либо изменений.
func (s *PollService) Vote(ctx context.Context, questionID uint, rawChoiceID string) (*VoteResult, error) {
	question, err := s.getPublishedWithChoices(ctx, questionID)
	if err != nil {
		return nil, err
	}

	choiceID, err := strconv.ParseUint(strings.TrimSpace(rawChoiceID), 10, 32)
	if err != nil {
		return nil, &InvalidChoiceError{Question: question, Message: apperrors.MsgNoChoiceSelected}
	}

	if !question.HasChoice(uint(choiceID)) {
		return nil, &InvalidChoiceError{Question: question, Message: apperrors.MsgNoChoiceSelected}
	}

	// Вариант мог быть удален после загрузки вопроса
	choice, err := s.choiceRepo.IncrementVotes(ctx, question.ID, uint(choiceID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &InvalidChoiceError{Question: question, Message: apperrors.MsgNoChoiceSelected}
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	log.Printf("[PollService] Голос принят: question=%d choice=%d votes=%d", question.ID, choice.ID, choice.Votes)

	return &VoteResult{
		Question:   question,
		Choice:     choice,
		RedirectTo: ResultsPath(question.ID),
	}, nil
}

func (s *PollService) getPublishedWithChoices(ctx context.Context, questionID uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetWithChoices(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !question.IsPublished(s.now()) {
		return nil, apperrors.ErrNotFound
	}
	return question, nil
}
