package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	"github.com/nabelosaurus/polls-api/internal/handler/dto"
	apperrors "github.com/nabelosaurus/polls-api/internal/pkg/errors"
	"github.com/nabelosaurus/polls-api/internal/service"
)

// ChoiceIDKey — ключ контекста Gin для id варианта
const ChoiceIDKey = "choiceID"

// AdminHandler обрабатывает административный JSON API вопросов и вариантов
type AdminHandler struct {
	adminService *service.AdminService
	now          func() time.Time
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		now:          time.Now,
	}
}

// ListQuestions возвращает все вопросы (включая будущие) с пагинацией
// GET /api/admin/questions?page=1&page_size=20
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	// Нечисловые значения превращаются в 0 и получают значения по умолчанию
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	page, pageSize = service.NormalizePage(page, pageSize)

	questions, total, err := h.adminService.ListQuestions(c.Request.Context(), page, pageSize)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedQuestionResponse(questions, total, page, pageSize, h.now()))
}

// CreateQuestion создает вопрос с необязательным списком вариантов
// POST /api/admin/questions
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pubDate := h.now()
	if req.PubDate != nil {
		pubDate = *req.PubDate
	}

	question, err := h.adminService.CreateQuestion(c.Request.Context(), req.QuestionText, pubDate, req.Choices)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question, h.now()))
}

// GetQuestion возвращает любой вопрос с вариантами и голосами
// GET /api/admin/questions/:id
func (h *AdminHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	question, err := h.adminService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, h.now()))
}

// UpdateQuestion меняет текст и дату публикации вопроса
// PUT /api/admin/questions/:id
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.adminService.UpdateQuestion(c.Request.Context(), questionID, req.QuestionText, req.PubDate)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, h.now()))
}

// DeleteQuestion удаляет вопрос вместе с вариантами
// DELETE /api/admin/questions/:id
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	if err := h.adminService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddChoice добавляет вариант к вопросу
// POST /api/admin/questions/:id/choices
func (h *AdminHandler) AddChoice(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)

	var req dto.AddChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	choice, err := h.adminService.AddChoice(c.Request.Context(), questionID, req.ChoiceText)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewChoiceResponse(choice))
}

// DeleteChoice удаляет вариант вопроса
// DELETE /api/admin/questions/:id/choices/:choiceId
func (h *AdminHandler) DeleteChoice(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)
	choiceID := c.MustGet(ChoiceIDKey).(uint)

	if err := h.adminService.DeleteChoice(c.Request.Context(), questionID, choiceID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportResults экспортирует результаты голосования в CSV или Excel
// GET /api/admin/questions/:id/export?format=csv|xlsx
func (h *AdminHandler) ExportResults(c *gin.Context) {
	questionID := c.MustGet(QuestionIDKey).(uint)
	format := c.DefaultQuery("format", "csv")

	question, err := h.adminService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	filename := fmt.Sprintf("question_%d_results_%s", questionID, h.now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, question, filename)
	case "csv":
		h.exportCSV(c, question, filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format %q", format)})
	}
}

var exportHeaders = []string{"Choice ID", "Choice", "Votes", "Share (%)"}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *AdminHandler) exportCSV(c *gin.Context, question *entity.Question, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	total := question.TotalVotes()
	for i := range question.Choices {
		choice := &question.Choices[i]
		writer.Write([]string{
			strconv.FormatUint(uint64(choice.ID), 10),
			sanitizeForExcel(choice.ChoiceText),
			strconv.Itoa(choice.Votes),
			strconv.FormatFloat(choice.VoteShare(total), 'f', 1, 64),
		})
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *AdminHandler) exportXLSX(c *gin.Context, question *entity.Question, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, header := range exportHeaders {
		headers[i] = header
	}
	if err := sw.SetRow("A1", []interface{}{sanitizeForExcel(question.QuestionText)}); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовка вопроса: %v", err)
	}
	if err := sw.SetRow("A2", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	total := question.TotalVotes()
	for i := range question.Choices {
		choice := &question.Choices[i]
		rowNum := i + 3
		row := []interface{}{choice.ID, sanitizeForExcel(choice.ChoiceText), choice.Votes, choice.VoteShare(total)}
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidChoice) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AdminHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
