package entity

import (
	"time"
)

// RecentWindow — окно, в течение которого вопрос считается "недавно опубликованным"
const RecentWindow = 24 * time.Hour

// Question представляет вопрос опроса
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuestionText string    `gorm:"size:200;not null" json:"question_text"`
	PubDate      time.Time `gorm:"not null;index" json:"pub_date"`
	Choices      []Choice  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// String возвращает текст вопроса
func (q Question) String() string {
	return q.QuestionText
}

// IsPublished проверяет, опубликован ли вопрос на момент now.
// Вопрос с pub_date строго в будущем не виден и не принимает голоса.
func (q *Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// IsRecentlyPublished возвращает true, если now-24h <= pub_date <= now
func (q *Question) IsRecentlyPublished(now time.Time) bool {
	return q.IsPublished(now) && !q.PubDate.Before(now.Add(-RecentWindow))
}

// TotalVotes возвращает сумму голосов по всем загруженным вариантам
func (q *Question) TotalVotes() int {
	total := 0
	for _, c := range q.Choices {
		total += c.Votes
	}
	return total
}

// HasChoice проверяет, принадлежит ли вариант с choiceID этому вопросу.
// Работает только если варианты загружены (Preload).
func (q *Question) HasChoice(choiceID uint) bool {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return true
		}
	}
	return false
}
