// Package memory содержит хранилище вопросов и вариантов в памяти процесса.
// Используется при storage.driver=memory и в тестах. Атомарность голосования
// обеспечивается мьютексом, поэтому драйвер годится только для одной реплики.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
)

// Store хранит вопросы и варианты; владеет временем жизни всех сущностей
type Store struct {
	mu sync.RWMutex

	questions map[uint]entity.Question
	choices   map[uint]entity.Choice

	nextQuestionID uint
	nextChoiceID   uint

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		questions: make(map[uint]entity.Question),
		choices:   make(map[uint]entity.Choice),
		now:       time.Now,
	}
}

// Questions возвращает репозиторий вопросов поверх хранилища
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{store: s}
}

// Choices возвращает репозиторий вариантов поверх хранилища
func (s *Store) Choices() *ChoiceRepo {
	return &ChoiceRepo{store: s}
}

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	store *Store
}

// Create сохраняет вопрос и вложенные варианты, проставляя ID
func (r *QuestionRepo) Create(_ context.Context, question *entity.Question) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQuestionID++
	now := s.now()
	question.ID = s.nextQuestionID
	question.CreatedAt = now
	question.UpdatedAt = now

	for i := range question.Choices {
		s.nextChoiceID++
		question.Choices[i].ID = s.nextChoiceID
		question.Choices[i].QuestionID = question.ID
		question.Choices[i].CreatedAt = now
		s.choices[question.Choices[i].ID] = question.Choices[i]
	}

	stored := *question
	stored.Choices = nil
	s.questions[question.ID] = stored
	return nil
}

// GetByID возвращает вопрос без вариантов
func (r *QuestionRepo) GetByID(_ context.Context, id uint) (*entity.Question, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &question, nil
}

// GetWithChoices возвращает вопрос с вариантами, упорядоченными по id
func (r *QuestionRepo) GetWithChoices(_ context.Context, id uint) (*entity.Question, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	question.Choices = s.choicesOfLocked(id)
	return &question, nil
}

// Update обновляет текст и дату публикации
func (r *QuestionRepo) Update(_ context.Context, question *entity.Question) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.questions[question.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.QuestionText = question.QuestionText
	stored.PubDate = question.PubDate
	stored.UpdatedAt = s.now()
	s.questions[question.ID] = stored
	return nil
}

// Delete удаляет вопрос вместе с его вариантами
func (r *QuestionRepo) Delete(_ context.Context, id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.questions, id)
	for choiceID, c := range s.choices {
		if c.QuestionID == id {
			delete(s.choices, choiceID)
		}
	}
	return nil
}

// ListPublished возвращает до limit вопросов с pub_date <= now, новые первыми
func (r *QuestionRepo) ListPublished(_ context.Context, now time.Time, limit int) ([]entity.Question, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]entity.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if q.IsPublished(now) {
			questions = append(questions, q)
		}
	}
	sortNewestFirst(questions)
	if limit >= 0 && len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, nil
}

// List возвращает все вопросы с пагинацией
func (r *QuestionRepo) List(_ context.Context, limit, offset int) ([]entity.Question, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]entity.Question, 0, len(s.questions))
	for _, q := range s.questions {
		questions = append(questions, q)
	}
	sortNewestFirst(questions)

	total := int64(len(questions))
	if offset >= len(questions) {
		return []entity.Question{}, total, nil
	}
	questions = questions[offset:]
	if limit >= 0 && len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, total, nil
}

// ChoiceRepo реализует repository.ChoiceRepository
type ChoiceRepo struct {
	store *Store
}

// Create добавляет вариант к существующему вопросу
func (r *ChoiceRepo) Create(_ context.Context, choice *entity.Choice) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[choice.QuestionID]; !ok {
		return apperrors.ErrNotFound
	}
	s.nextChoiceID++
	choice.ID = s.nextChoiceID
	choice.CreatedAt = s.now()
	s.choices[choice.ID] = *choice
	return nil
}

// GetByQuestionID возвращает варианты вопроса по возрастанию id
func (r *ChoiceRepo) GetByQuestionID(_ context.Context, questionID uint) ([]entity.Choice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.choicesOfLocked(questionID), nil
}

// Delete удаляет вариант, если он принадлежит вопросу
func (r *ChoiceRepo) Delete(_ context.Context, questionID, choiceID uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.choices[choiceID]
	if !ok || c.QuestionID != questionID {
		return apperrors.ErrNotFound
	}
	delete(s.choices, choiceID)
	return nil
}

// IncrementVotes увеличивает votes на 1 под эксклюзивной блокировкой
func (r *ChoiceRepo) IncrementVotes(_ context.Context, questionID, choiceID uint) (*entity.Choice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.choices[choiceID]
	if !ok || c.QuestionID != questionID {
		return nil, apperrors.ErrNotFound
	}
	c.Votes++
	s.choices[choiceID] = c
	return &c, nil
}

func (s *Store) choicesOfLocked(questionID uint) []entity.Choice {
	choices := make([]entity.Choice, 0)
	for _, c := range s.choices {
		if c.QuestionID == questionID {
			choices = append(choices, c)
		}
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].ID < choices[j].ID })
	return choices
}

func sortNewestFirst(questions []entity.Question) {
	sort.Slice(questions, func(i, j int) bool {
		if !questions[i].PubDate.Equal(questions[j].PubDate) {
			return questions[i].PubDate.After(questions[j].PubDate)
		}
		return questions[i].ID > questions[j].ID
	})
}
