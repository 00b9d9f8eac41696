package dto

import (
	"time"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
)

// ChoiceResponse представляет вариант ответа в JSON-ответе API
type ChoiceResponse struct {
	ID         uint      `json:"id"`
	QuestionID uint      `json:"question_id"`
	ChoiceText string    `json:"choice_text"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionResponse представляет вопрос в JSON-ответе административного API
type QuestionResponse struct {
	ID                uint             `json:"id"`
	QuestionText      string           `json:"question_text"`
	PubDate           time.Time        `json:"pub_date"`
	Published         bool             `json:"published"`
	RecentlyPublished bool             `json:"recently_published"`
	TotalVotes        int              `json:"total_votes"`
	Choices           []ChoiceResponse `json:"choices"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// PaginatedQuestionResponse представляет страницу списка вопросов
type PaginatedQuestionResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

// CreateQuestionRequest — запрос на создание вопроса.
// Если pub_date не передан, вопрос публикуется сразу.
type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text" binding:"required,max=200"`
	PubDate      *time.Time `json:"pub_date"`
	Choices      []string   `json:"choices" binding:"omitempty,max=20,dive,required,max=200"`
}

// UpdateQuestionRequest — запрос на изменение текста и даты публикации
type UpdateQuestionRequest struct {
	QuestionText string    `json:"question_text" binding:"required,max=200"`
	PubDate      time.Time `json:"pub_date" binding:"required"`
}

// AddChoiceRequest — запрос на добавление варианта
type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text" binding:"required,max=200"`
}

// NewChoiceResponse создает DTO для варианта
func NewChoiceResponse(choice *entity.Choice) ChoiceResponse {
	return ChoiceResponse{
		ID:         choice.ID,
		QuestionID: choice.QuestionID,
		ChoiceText: choice.ChoiceText,
		Votes:      choice.Votes,
		CreatedAt:  choice.CreatedAt,
	}
}

// NewQuestionResponse создает DTO для вопроса; now нужен для флагов публикации
func NewQuestionResponse(question *entity.Question, now time.Time) QuestionResponse {
	choices := make([]ChoiceResponse, 0, len(question.Choices))
	for i := range question.Choices {
		choices = append(choices, NewChoiceResponse(&question.Choices[i]))
	}
	return QuestionResponse{
		ID:                question.ID,
		QuestionText:      question.QuestionText,
		PubDate:           question.PubDate,
		Published:         question.IsPublished(now),
		RecentlyPublished: question.IsRecentlyPublished(now),
		TotalVotes:        question.TotalVotes(),
		Choices:           choices,
		CreatedAt:         question.CreatedAt,
		UpdatedAt:         question.UpdatedAt,
	}
}

// NewPaginatedQuestionResponse создает DTO страницы вопросов
func NewPaginatedQuestionResponse(questions []entity.Question, total int64, page, perPage int, now time.Time) PaginatedQuestionResponse {
	items := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		items = append(items, NewQuestionResponse(&questions[i], now))
	}
	return PaginatedQuestionResponse{
		Questions: items,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
}
