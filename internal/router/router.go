// Package router собирает gin.Engine со страницами опросов и административным API.
package router

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nabelosaurus/polls-api/internal/config"
	"github.com/nabelosaurus/polls-api/internal/domain/repository"
	"github.com/nabelosaurus/polls-api/internal/handler"
	"github.com/nabelosaurus/polls-api/internal/middleware"
	"github.com/nabelosaurus/polls-api/internal/service"
)

// Deps — зависимости роутера
type Deps struct {
	Config       *config.Config
	PollService  *service.PollService
	AdminService *service.AdminService
	// Cache может быть nil: тогда ограничение частоты отключено
	Cache repository.CacheRepository
}

// NewRouter создает gin.Engine со всеми маршрутами
func NewRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	templates, err := handler.LoadTemplates()
	if err != nil {
		return nil, err
	}

	pollHandler := handler.NewPollHandler(deps.PollService)
	adminHandler := handler.NewAdminHandler(deps.AdminService)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	router.SetHTMLTemplate(templates)

	// В release не доверяем прокси-заголовкам (защита от IP spoofing в rate limiter)
	trustedProxies := []string{"127.0.0.1", "::1"}
	if cfg.Server.Mode == gin.ReleaseMode {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS
	if len(cfg.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.NoRoute(pollHandler.NotFound)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	var limiter *middleware.RateLimiter
	if deps.Cache != nil && cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(deps.Cache)
	}

	// Страницы опросов
	router.GET("/", pollHandler.Index)
	page := router.Group("/:id")
	page.Use(middleware.ExtractPageUintParam("id", handler.QuestionIDKey, pollHandler.NotFound))
	{
		page.GET("/", pollHandler.Detail)
		page.GET("/results/", pollHandler.Results)

		voteHandlers := []gin.HandlerFunc{pollHandler.Vote}
		if limiter != nil {
			voteLimit := middleware.VoteRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
			voteHandlers = append([]gin.HandlerFunc{limiter.Limit(voteLimit)}, voteHandlers...)
		}
		page.POST("/vote/", voteHandlers...)
	}

	// Административный API выключен по умолчанию (admin.enabled)
	if cfg.Admin.Enabled {
		registerAdminRoutes(router, adminHandler, limiter)
	}

	return router, nil
}

// registerAdminRoutes монтирует /api/admin/questions
func registerAdminRoutes(router *gin.Engine, adminHandler *handler.AdminHandler, limiter *middleware.RateLimiter) {
	api := router.Group("/api")
	if limiter != nil {
		api.Use(limiter.LimitByIP(middleware.AdminRateLimitConfig()))
	}

	questions := api.Group("/admin/questions")
	{
		questions.GET("", adminHandler.ListQuestions)
		questions.POST("", adminHandler.CreateQuestion)

		questionWithID := questions.Group("/:id")
		questionWithID.Use(middleware.ExtractUintParam("id", handler.QuestionIDKey))
		{
			questionWithID.GET("", adminHandler.GetQuestion)
			questionWithID.PUT("", adminHandler.UpdateQuestion)
			questionWithID.DELETE("", adminHandler.DeleteQuestion)
			questionWithID.GET("/export", adminHandler.ExportResults)
			questionWithID.POST("/choices", adminHandler.AddChoice)
			questionWithID.DELETE("/choices/:choiceId",
				middleware.ExtractUintParam("choiceId", handler.ChoiceIDKey),
				adminHandler.DeleteChoice,
			)
		}
	}
}
