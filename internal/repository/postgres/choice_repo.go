package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// ChoiceRepo реализует repository.ChoiceRepository
type ChoiceRepo struct {
	db *gorm.DB
}

// NewChoiceRepo создает новый репозиторий вариантов ответа
func NewChoiceRepo(db *gorm.DB) *ChoiceRepo {
	return &ChoiceRepo{db: db}
}

// Create создает вариант ответа. Если вопроса нет, возвращает ErrNotFound
func (r *ChoiceRepo) Create(ctx context.Context, choice *entity.Choice) error {
	err := r.db.WithContext(ctx).Create(choice).Error
	if err == nil {
		return nil
	}
	switch pgErrorCode(err) {
	case pgForeignKeyViolation:
		return apperrors.ErrNotFound
	case pgUniqueViolation:
		return apperrors.ErrConflict
	}
	return err
}

// GetByQuestionID возвращает все варианты вопроса в порядке создания
func (r *ChoiceRepo) GetByQuestionID(ctx context.Context, questionID uint) ([]entity.Choice, error) {
	var choices []entity.Choice
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id").
		Find(&choices).Error
	if err != nil {
		return nil, err
	}
	return choices, nil
}

// Delete удаляет вариант, только если он принадлежит вопросу
func (r *ChoiceRepo) Delete(ctx context.Context, questionID, choiceID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", choiceID, questionID).
		Delete(&entity.Choice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementVotes атомарно увеличивает votes через gorm.Expr одним UPDATE.
// Проверка принадлежности варианта вопросу входит в тот же WHERE,
// поэтому конкурентные голоса не теряются.
func (r *ChoiceRepo) IncrementVotes(ctx context.Context, questionID, choiceID uint) (*entity.Choice, error) {
	var choice entity.Choice
	result := incrementVotes(r.db.WithContext(ctx), &choice, questionID, choiceID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &choice, nil
}

// incrementVotes выполняет UPDATE choices SET votes = votes + 1 ... RETURNING * в dest
func incrementVotes(db *gorm.DB, dest *entity.Choice, questionID, choiceID uint) *gorm.DB {
	return db.
		Model(dest).
		Clauses(clause.Returning{}).
		Where("id = ? AND question_id = ?", choiceID, questionID).
		Update("votes", gorm.Expr("votes + ?", 1))
}

// pgErrorCode извлекает SQLSTATE для pgconn и lib/pq драйверов
func pgErrorCode(err error) string {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
