package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос вместе с переданными вариантами
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetWithChoices возвращает вопрос вместе с вариантами ответа
func (r *QuestionRepo) GetWithChoices(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id")
		}).
		First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Update точечно обновляет текст и дату публикации вопроса
func (r *QuestionRepo) Update(ctx context.Context, question *entity.Question) error {
	result := r.db.WithContext(ctx).Model(&entity.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"question_text": question.QuestionText,
			"pub_date":      question.PubDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет вопрос. Варианты удаляются каскадно (ON DELETE CASCADE)
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListPublished возвращает последние опубликованные вопросы.
// Вопросы с pub_date в будущем исключаются фильтром, а не сортировкой.
func (r *QuestionRepo) ListPublished(ctx context.Context, now time.Time, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	err := publishedQuery(r.db.WithContext(ctx), now, limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func publishedQuery(db *gorm.DB, now time.Time, limit int) *gorm.DB {
	return db.
		Where("pub_date <= ?", now).
		Order("pub_date DESC").
		Order("id DESC").
		Limit(limit)
}

// List возвращает все вопросы с пагинацией и общим количеством
func (r *QuestionRepo) List(ctx context.Context, limit, offset int) ([]entity.Question, int64, error) {
	var questions []entity.Question
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&entity.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.
		Order("pub_date DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}
