package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nabelosaurus/polls-api/internal/config"
	"github.com/nabelosaurus/polls-api/internal/domain/entity"
	"github.com/nabelosaurus/polls-api/internal/factory"
	"github.com/nabelosaurus/polls-api/internal/handler/dto"
	"github.com/nabelosaurus/polls-api/internal/repository/memory"
	"github.com/nabelosaurus/polls-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router    *gin.Engine
	store     *memory.Store
	questions *factory.QuestionFactory
	choices   *factory.ChoiceFactory
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		Polls:   config.PollsConfig{LatestLimit: service.DefaultLatestLimit},
		RateLimit: config.RateLimitConfig{
			Enabled:     true,
			MaxRequests: 2,
			Window:      time.Minute,
		},
		CORS:  config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Admin: config.AdminConfig{Enabled: true},
	}
}

func newTestApp(t *testing.T, cache *fakeCache) *testApp {
	t.Helper()
	return newTestAppWithConfig(t, testConfig(), cache)
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config, cache *fakeCache) *testApp {
	t.Helper()
	store := memory.NewStore()

	deps := Deps{
		Config:       cfg,
		PollService:  service.NewPollService(store.Questions(), store.Choices(), cfg.Polls.LatestLimit),
		AdminService: service.NewAdminService(store.Questions(), store.Choices()),
	}
	if cache != nil {
		deps.Cache = cache
	}

	r, err := NewRouter(deps)
	require.NoError(t, err)

	questions := factory.NewQuestionFactory(store.Questions(), 1)
	return &testApp{
		router:    r,
		store:     store,
		questions: questions,
		choices:   factory.NewChoiceFactory(store.Choices(), questions, 2),
	}
}

// createQuestion создает вопрос со сдвигом даты публикации в днях относительно текущего момента
func (a *testApp) createQuestion(t *testing.T, text string, days int) *entity.Question {
	t.Helper()
	q, err := a.questions.Create(context.Background(), factory.WithText(text), factory.PublishedDaysFromNow(days))
	require.NoError(t, err)
	return q
}

func (a *testApp) createChoice(t *testing.T, q *entity.Question) *entity.Choice {
	t.Helper()
	c, err := a.choices.Create(context.Background(), factory.ForQuestion(q), factory.WithVotes(0))
	require.NoError(t, err)
	return c
}

func (a *testApp) votes(t *testing.T, questionID uint) []int {
	t.Helper()
	choices, err := a.store.Choices().GetByQuestionID(context.Background(), questionID)
	require.NoError(t, err)
	votes := make([]int, len(choices))
	for i, c := range choices {
		votes[i] = c.Votes
	}
	return votes
}

func (a *testApp) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil, "")
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, []byte(form.Encode()), "application/x-www-form-urlencoded")
}

func (a *testApp) sendJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(method, path, body, "application/json")
}

// fakeCache — счетчики в памяти для проверки ограничения частоты
type fakeCache struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: make(map[string]int64)}
}

func (f *fakeCache) Increment(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCache) Expire(context.Context, string, time.Duration) error { return nil }

func (f *fakeCache) TTL(context.Context, string) (time.Duration, error) { return time.Minute, nil }

// ============================================================================
// Служебные маршруты
// ============================================================================

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/abc/", "/0/", "/1/unknown/", "/abc/results/"} {
		t.Run(path, func(t *testing.T) {
			w := app.get(path)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Not Found")
		})
	}
}

func TestMissingTrailingSlashRedirects(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -1)

	w := app.get(fmt.Sprintf("/%d", q.ID))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, fmt.Sprintf("/%d/", q.ID), w.Header().Get("Location"))
}

// ============================================================================
// Главная страница
// ============================================================================

func TestIndex_NoQuestions(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No polls are available.")
}

func TestIndex_PastQuestion(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -30)

	w := app.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Past question.")
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`href="/%d/"`, q.ID))
	assert.NotContains(t, w.Body.String(), "No polls are available.")
}

func TestIndex_FutureQuestionHidden(t *testing.T) {
	app := newTestApp(t, nil)
	app.createQuestion(t, "Future question.", 30)

	w := app.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Future question.")
	assert.Contains(t, w.Body.String(), "No polls are available.")
}

func TestIndex_FutureAndPastQuestion(t *testing.T) {
	app := newTestApp(t, nil)
	app.createQuestion(t, "Past question.", -30)
	app.createQuestion(t, "Future question.", 30)

	body := app.get("/").Body.String()

	assert.Contains(t, body, "Past question.")
	assert.NotContains(t, body, "Future question.")
}

func TestIndex_TwoPastQuestionsNewestFirst(t *testing.T) {
	app := newTestApp(t, nil)
	app.createQuestion(t, "Past question 1.", -30)
	app.createQuestion(t, "Past question 2.", -30)

	body := app.get("/").Body.String()

	first := strings.Index(body, "Past question 2.")
	second := strings.Index(body, "Past question 1.")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestIndex_ShowsAtMostLatestLimit(t *testing.T) {
	app := newTestApp(t, nil)
	for i := 1; i <= 7; i++ {
		app.createQuestion(t, fmt.Sprintf("Question number %d.", i), -i)
	}

	body := app.get("/").Body.String()

	assert.Equal(t, service.DefaultLatestLimit, strings.Count(body, "<li>"))
	assert.Contains(t, body, "Question number 1.")
	assert.NotContains(t, body, "Question number 6.")
}

// ============================================================================
// Страницы вопроса и результатов
// ============================================================================

func TestDetail_FutureQuestionNotFound(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Future question.", 5)

	w := app.get(fmt.Sprintf("/%d/", q.ID))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Future question.")
}

func TestDetail_PastQuestion(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -30)
	c := app.createChoice(t, q)

	w := app.get(fmt.Sprintf("/%d/", q.ID))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Past question.")
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`action="/%d/vote/"`, q.ID))
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`value="%d"`, c.ID))
}

func TestResults_NoQuestion(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/1/results/")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResults_FutureQuestion(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Future question.", 5)

	w := app.get(fmt.Sprintf("/%d/results/", q.ID))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResults_PastQuestion(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -30)
	_, err := app.choices.Create(context.Background(), factory.ForQuestion(q), factory.WithChoiceText("Sky"), factory.WithVotes(3))
	require.NoError(t, err)
	_, err = app.choices.Create(context.Background(), factory.ForQuestion(q), factory.WithChoiceText("Sea"), factory.WithVotes(1))
	require.NoError(t, err)

	w := app.get(fmt.Sprintf("/%d/results/", q.ID))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Sky -- 3 votes (75.0%)")
	assert.Contains(t, body, "Sea -- 1 vote (25.0%)")
	assert.Contains(t, body, fmt.Sprintf(`href="/%d/"`, q.ID))
}

// ============================================================================
// Голосование
// ============================================================================

func TestVote_PastQuestionWithoutChoice(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -5)
	app.createChoice(t, q)

	w := app.postForm(fmt.Sprintf("/%d/vote/", q.ID), url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice")
	assert.Contains(t, w.Body.String(), "Past question.")
	assert.Equal(t, []int{0}, app.votes(t, q.ID))
}

func TestVote_FutureQuestionWithoutChoice(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Future question.", 5)

	w := app.postForm(fmt.Sprintf("/%d/vote/", q.ID), url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVote_PastQuestionWithChoice(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -5)
	app.createChoice(t, q)
	c2 := app.createChoice(t, q)

	w := app.postForm(fmt.Sprintf("/%d/vote/", q.ID), url.Values{"choice": {fmt.Sprint(c2.ID)}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/%d/results/", q.ID), w.Header().Get("Location"))
	assert.Equal(t, []int{0, 1}, app.votes(t, q.ID))

	results := app.get(w.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, results.Code)
}

func TestVote_FutureQuestionWithChoice(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Future question.", 5)
	app.createChoice(t, q)
	c2 := app.createChoice(t, q)

	w := app.postForm(fmt.Sprintf("/%d/vote/", q.ID), url.Values{"choice": {fmt.Sprint(c2.ID)}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []int{0, 0}, app.votes(t, q.ID))
}

func TestVote_ChoiceOfAnotherQuestion(t *testing.T) {
	app := newTestApp(t, nil)
	q1 := app.createQuestion(t, "First question.", -5)
	q2 := app.createQuestion(t, "Second question.", -5)
	app.createChoice(t, q1)
	foreign := app.createChoice(t, q2)

	w := app.postForm(fmt.Sprintf("/%d/vote/", q1.ID), url.Values{"choice": {fmt.Sprint(foreign.ID)}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice")
	assert.Equal(t, []int{0}, app.votes(t, q1.ID))
	assert.Equal(t, []int{0}, app.votes(t, q2.ID))
}

func TestVote_NonNumericChoice(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -5)
	app.createChoice(t, q)

	w := app.postForm(fmt.Sprintf("/%d/vote/", q.ID), url.Values{"choice": {"abc"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice")
}

func TestVote_RateLimited(t *testing.T) {
	app := newTestApp(t, newFakeCache())
	q := app.createQuestion(t, "Past question.", -5)
	c := app.createChoice(t, q)
	path := fmt.Sprintf("/%d/vote/", q.ID)
	form := url.Values{"choice": {fmt.Sprint(c.ID)}}

	assert.Equal(t, http.StatusFound, app.postForm(path, form).Code)
	assert.Equal(t, http.StatusFound, app.postForm(path, form).Code)

	w := app.postForm(path, form)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, []int{2}, app.votes(t, q.ID))
}

// ============================================================================
// Административный API
// ============================================================================

func TestAdmin_QuestionLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	future := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	w := app.sendJSON(t, http.MethodPost, "/api/admin/questions", gin.H{
		"question_text": "What's up?",
		"pub_date":      future,
		"choices":       []string{"Not much", "The sky"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.QuestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "What's up?", created.QuestionText)
	assert.False(t, created.Published)
	require.Len(t, created.Choices, 2)

	// Будущий вопрос недоступен на страницах, но виден в API
	assert.Equal(t, http.StatusNotFound, app.get(fmt.Sprintf("/%d/", created.ID)).Code)
	assert.Equal(t, http.StatusOK, app.get(fmt.Sprintf("/api/admin/questions/%d", created.ID)).Code)

	w = app.sendJSON(t, http.MethodPut, fmt.Sprintf("/api/admin/questions/%d", created.ID), gin.H{
		"question_text": "What's new?",
		"pub_date":      time.Now().Add(-time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated dto.QuestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Published)
	assert.True(t, updated.RecentlyPublished)
	assert.Equal(t, http.StatusOK, app.get(fmt.Sprintf("/%d/", created.ID)).Code)

	w = app.sendJSON(t, http.MethodPost, fmt.Sprintf("/api/admin/questions/%d/choices", created.ID), gin.H{"choice_text": "Just hacking"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var choice dto.ChoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &choice))
	assert.Zero(t, choice.Votes)

	w = app.do(http.MethodDelete, fmt.Sprintf("/api/admin/questions/%d/choices/%d", created.ID, choice.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, app.votes(t, created.ID), 2)

	w = app.do(http.MethodDelete, fmt.Sprintf("/api/admin/questions/%d", created.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, app.get(fmt.Sprintf("/api/admin/questions/%d", created.ID)).Code)
	assert.Empty(t, app.votes(t, created.ID))
}

func TestAdmin_ListIncludesFutureQuestions(t *testing.T) {
	app := newTestApp(t, nil)
	app.createQuestion(t, "Past question.", -1)
	app.createQuestion(t, "Future question.", 1)
	app.createQuestion(t, "Older question.", -10)

	w := app.get("/api/admin/questions?page=1&page_size=2")
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.PaginatedQuestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.PerPage)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, "Future question.", page.Questions[0].QuestionText)
	assert.Equal(t, "Past question.", page.Questions[1].QuestionText)
}

func TestAdmin_ListClampsPageSize(t *testing.T) {
	app := newTestApp(t, nil)
	app.createQuestion(t, "Past question.", -1)

	testCases := []struct {
		query   string
		perPage int
	}{
		{"page_size=500", 100},
		{"page_size=0", 20},
		{"page_size=abc", 20},
		{"page_size=50", 50},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			w := app.get("/api/admin/questions?" + tc.query)
			require.Equal(t, http.StatusOK, w.Code)

			var page dto.PaginatedQuestionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			assert.Equal(t, tc.perPage, page.PerPage)
			assert.Equal(t, 1, page.Page)
		})
	}
}

func TestAdmin_ValidationErrors(t *testing.T) {
	app := newTestApp(t, nil)

	testCases := []struct {
		name       string
		payload    gin.H
		wantStatus int
	}{
		{"нет текста", gin.H{}, http.StatusBadRequest},
		{"только пробелы", gin.H{"question_text": "   "}, http.StatusUnprocessableEntity},
		{"слишком длинный", gin.H{"question_text": strings.Repeat("x", 201)}, http.StatusBadRequest},
		{"пустой вариант", gin.H{"question_text": "Ok?", "choices": []string{""}}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.sendJSON(t, http.MethodPost, "/api/admin/questions", tc.payload)
			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestAdmin_NotFoundAndBadID(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, http.StatusNotFound, app.get("/api/admin/questions/42").Code)
	assert.Equal(t, http.StatusBadRequest, app.get("/api/admin/questions/abc").Code)

	w := app.sendJSON(t, http.MethodPost, "/api/admin/questions/42/choices", gin.H{"choice_text": "Orphan"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_ExportCSV(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -1)
	_, err := app.choices.Create(context.Background(), factory.ForQuestion(q), factory.WithChoiceText("=SUM(A1)"), factory.WithVotes(1))
	require.NoError(t, err)
	_, err = app.choices.Create(context.Background(), factory.ForQuestion(q), factory.WithChoiceText("Plain, with comma"), factory.WithVotes(3))
	require.NoError(t, err)

	w := app.get(fmt.Sprintf("/api/admin/questions/%d/export", q.ID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "Choice ID,Choice,Votes,Share (%)")
	assert.Contains(t, body, "'=SUM(A1),1,25.0")
	assert.Contains(t, body, `"Plain, with comma",3,75.0`)
}

func TestAdmin_ExportXLSX(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -1)
	_, err := app.choices.Create(context.Background(), factory.ForQuestion(q), factory.WithChoiceText("Sky"), factory.WithVotes(2))
	require.NoError(t, err)

	w := app.get(fmt.Sprintf("/api/admin/questions/%d/export?format=xlsx", q.ID))
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Results", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Past question.", title)

	choiceText, err := f.GetCellValue("Results", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Sky", choiceText)

	votes, err := f.GetCellValue("Results", "C3")
	require.NoError(t, err)
	assert.Equal(t, "2", votes)
}

func TestAdmin_ExportUnknownFormat(t *testing.T) {
	app := newTestApp(t, nil)
	q := app.createQuestion(t, "Past question.", -1)

	w := app.get(fmt.Sprintf("/api/admin/questions/%d/export?format=pdf", q.ID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_DisabledHidesUnpublishedQuestions(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.Enabled = false
	app := newTestAppWithConfig(t, cfg, nil)
	future := app.createQuestion(t, "Future question.", 30)

	assert.Equal(t, http.StatusNotFound, app.get(fmt.Sprintf("/%d/", future.ID)).Code)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/questions"},
		{http.MethodGet, fmt.Sprintf("/api/admin/questions/%d", future.ID)},
		{http.MethodGet, fmt.Sprintf("/api/admin/questions/%d/export", future.ID)},
		{http.MethodDelete, fmt.Sprintf("/api/admin/questions/%d", future.ID)},
	}
	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := app.do(r.method, r.path, nil, "")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Not Found")
			assert.NotContains(t, w.Body.String(), "Future question.")
		})
	}

	_, err := app.store.Questions().GetByID(context.Background(), future.ID)
	assert.NoError(t, err, "вопрос не удален")
}

func TestAdmin_CORSPreflight(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
