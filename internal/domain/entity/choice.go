package entity

import "time"

// Choice представляет вариант ответа на вопрос.
// Поле Votes меняется только операцией голосования и только на +1.
type Choice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	ChoiceText string    `gorm:"size:200;not null" json:"choice_text"`
	Votes      int       `gorm:"not null;default:0;check:votes >= 0" json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Choice) TableName() string {
	return "choices"
}

// String возвращает текст варианта
func (c Choice) String() string {
	return c.ChoiceText
}

// VoteShare возвращает долю голосов варианта от total в процентах
func (c *Choice) VoteShare(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(c.Votes) * 100 / float64(total)
}
