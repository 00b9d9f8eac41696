// Package factory создает тестовые и демонстрационные вопросы и варианты.
package factory

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	"github.com/nabelosaurus/polls-api/internal/domain/repository"
)

var words = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
}

// QuestionFactory создает вопросы со случайным текстом и датой публикации в текущем месяце
type QuestionFactory struct {
	repo repository.QuestionRepository
	rnd  *rand.Rand
	now  func() time.Time
}

// NewQuestionFactory создает фабрику вопросов
func NewQuestionFactory(repo repository.QuestionRepository, seed int64) *QuestionFactory {
	return &QuestionFactory{
		repo: repo,
		rnd:  rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

// QuestionOption переопределяет поле создаваемого вопроса
type QuestionOption func(*QuestionFactory, *entity.Question)

// WithText задает текст вопроса
func WithText(text string) QuestionOption {
	return func(_ *QuestionFactory, q *entity.Question) { q.QuestionText = text }
}

// WithPubDate задает дату публикации
func WithPubDate(pubDate time.Time) QuestionOption {
	return func(_ *QuestionFactory, q *entity.Question) { q.PubDate = pubDate }
}

// PublishedDaysFromNow задает дату публикации со сдвигом в днях от часов фабрики
// (отрицательный — в прошлом, положительный — еще не опубликован)
func PublishedDaysFromNow(days int) QuestionOption {
	return func(f *QuestionFactory, q *entity.Question) { q.PubDate = f.now().AddDate(0, 0, days) }
}

// Build собирает вопрос без сохранения
func (f *QuestionFactory) Build(opts ...QuestionOption) *entity.Question {
	q := &entity.Question{
		QuestionText: f.sentence(10),
		PubDate:      f.dateThisMonth(),
	}
	for _, opt := range opts {
		opt(f, q)
	}
	return q
}

// Create собирает и сохраняет вопрос
func (f *QuestionFactory) Create(ctx context.Context, opts ...QuestionOption) (*entity.Question, error) {
	q := f.Build(opts...)
	if err := f.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// CreateBatch создает n вопросов с одинаковыми опциями
func (f *QuestionFactory) CreateBatch(ctx context.Context, n int, opts ...QuestionOption) ([]*entity.Question, error) {
	questions := make([]*entity.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := f.Create(ctx, opts...)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// sentence возвращает предложение примерно из nbWords слов (±40%)
func (f *QuestionFactory) sentence(nbWords int) string {
	delta := nbWords * 40 / 100
	n := nbWords - delta + f.rnd.Intn(2*delta+1)
	if n < 1 {
		n = 1
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[f.rnd.Intn(len(words))]
	}
	parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return strings.Join(parts, " ") + "."
}

// dateThisMonth возвращает момент в пределах текущего месяца, в прошлом или будущем
func (f *QuestionFactory) dateThisMonth() time.Time {
	now := f.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)
	span := end.Sub(start)
	return start.Add(time.Duration(f.rnd.Int63n(int64(span))))
}

// ChoiceFactory создает варианты со случайным словом и 0–9 голосами
type ChoiceFactory struct {
	repo      repository.ChoiceRepository
	questions *QuestionFactory
	rnd       *rand.Rand
}

// NewChoiceFactory создает фабрику вариантов. questions используется,
// когда вопрос не передан явно.
func NewChoiceFactory(repo repository.ChoiceRepository, questions *QuestionFactory, seed int64) *ChoiceFactory {
	return &ChoiceFactory{
		repo:      repo,
		questions: questions,
		rnd:       rand.New(rand.NewSource(seed)),
	}
}

// ChoiceOption переопределяет поле создаваемого варианта
type ChoiceOption func(*entity.Choice)

// ForQuestion привязывает вариант к вопросу
func ForQuestion(q *entity.Question) ChoiceOption {
	return func(c *entity.Choice) { c.QuestionID = q.ID }
}

// WithChoiceText задает текст варианта
func WithChoiceText(text string) ChoiceOption {
	return func(c *entity.Choice) { c.ChoiceText = text }
}

// WithVotes задает начальное число голосов
func WithVotes(votes int) ChoiceOption {
	return func(c *entity.Choice) { c.Votes = votes }
}

// Create сохраняет вариант; без ForQuestion сначала создается новый вопрос
func (f *ChoiceFactory) Create(ctx context.Context, opts ...ChoiceOption) (*entity.Choice, error) {
	c := &entity.Choice{
		ChoiceText: words[f.rnd.Intn(len(words))],
		Votes:      f.rnd.Intn(10),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.QuestionID == 0 {
		q, err := f.questions.Create(ctx)
		if err != nil {
			return nil, err
		}
		c.QuestionID = q.ID
	}
	if err := f.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateBatch создает n вариантов с одинаковыми опциями
func (f *ChoiceFactory) CreateBatch(ctx context.Context, n int, opts ...ChoiceOption) ([]*entity.Choice, error) {
	choices := make([]*entity.Choice, 0, n)
	for i := 0; i < n; i++ {
		c, err := f.Create(ctx, opts...)
		if err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	return choices, nil
}
