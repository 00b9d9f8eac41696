package dto

import (
	"fmt"
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
)

// ChoiceView — вариант ответа для HTML-шаблонов
type ChoiceView struct {
	ID         uint
	ChoiceText string
	Votes      int
	Share      string
}

// QuestionView — вопрос для HTML-шаблонов
type QuestionView struct {
	ID           uint
	QuestionText string
	PubDate      time.Time
	TotalVotes   int
	Choices      []ChoiceView
}

// String нужен, чтобы {{.}} в шаблоне выводил текст вопроса
func (v QuestionView) String() string {
	return v.QuestionText
}

// NewQuestionView готовит вопрос к отрисовке, включая доли голосов
func NewQuestionView(question *entity.Question) QuestionView {
	total := question.TotalVotes()
	choices := make([]ChoiceView, 0, len(question.Choices))
	for i := range question.Choices {
		choice := &question.Choices[i]
		choices = append(choices, ChoiceView{
			ID:         choice.ID,
			ChoiceText: choice.ChoiceText,
			Votes:      choice.Votes,
			Share:      fmt.Sprintf("%.1f%%", choice.VoteShare(total)),
		})
	}
	return QuestionView{
		ID:           question.ID,
		QuestionText: question.QuestionText,
		PubDate:      question.PubDate,
		TotalVotes:   total,
		Choices:      choices,
	}
}

// NewQuestionViews готовит список вопросов для главной страницы
func NewQuestionViews(questions []entity.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, NewQuestionView(&questions[i]))
	}
	return views
}
