package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nabelosaurus/polls-api/internal/handler/dto"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
	"github.com/nabelosaurus/polls-api/internal/service"
)

// QuestionIDKey — ключ контекста Gin, куда middleware кладет id вопроса
const QuestionIDKey = "questionID"

// PollHandler отдает HTML-страницы опросов
type PollHandler struct {
	pollService *service.PollService
}

// NewPollHandler создает новый обработчик страниц опросов
func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// Index отдает главную страницу с последними опубликованными вопросами
// GET /
func (h *PollHandler) Index(c *gin.Context) {
	questions, err := h.pollService.LatestQuestions(c.Request.Context())
	if err != nil {
		h.handlePageError(c, err)
		return
	}

	c.HTML(http.StatusOK, TemplateIndex, gin.H{
		"latest_question_list": dto.NewQuestionViews(questions),
	})
}

// Detail отдает страницу вопроса с формой голосования
// GET /:id/
func (h *PollHandler) Detail(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	question, err := h.pollService.GetDetail(c.Request.Context(), questionID)
	if err != nil {
		h.handlePageError(c, err)
		return
	}

	view := dto.NewQuestionView(question)
	c.HTML(http.StatusOK, TemplateDetail, gin.H{
		"title":    view.QuestionText,
		"question": view,
	})
}

// Results отдает страницу с результатами голосования
// GET /:id/results/
func (h *PollHandler) Results(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	question, err := h.pollService.GetResults(c.Request.Context(), questionID)
	if err != nil {
		h.handlePageError(c, err)
		return
	}

	view := dto.NewQuestionView(question)
	c.HTML(http.StatusOK, TemplateResults, gin.H{
		"title":    view.QuestionText,
		"question": view,
	})
}

// Vote принимает голос из формы (поле choice)
// POST /:id/vote/
func (h *PollHandler) Vote(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	result, err := h.pollService.Vote(c.Request.Context(), questionID, c.PostForm("choice"))
	if err != nil {
		var invalid *service.InvalidChoiceError
		if errors.As(err, &invalid) {
			view := dto.NewQuestionView(invalid.Question)
			c.HTML(http.StatusOK, TemplateDetail, gin.H{
				"title":         view.QuestionText,
				"question":      view,
				"error_message": invalid.Message,
			})
			return
		}
		h.handlePageError(c, err)
		return
	}

	c.Redirect(http.StatusFound, result.RedirectTo)
}

// NotFound отдает HTML-страницу 404
func (h *PollHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, TemplateNotFound, gin.H{"title": "Not Found"})
}

func (h *PollHandler) handlePageError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		h.NotFound(c)
		return
	}
	log.Printf("ERROR: Internal server error in PollHandler: %v", err)
	c.String(http.StatusInternalServerError, "Internal server error")
}
