package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Невалидное значение дает 400 с JSON-ошибкой (для API).
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, paramName)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

// ExtractPageUintParam делает то же для HTML-страниц: нечисловой id
// не соответствует ни одному маршруту, поэтому вызывается notFound.
func ExtractPageUintParam(paramName, contextKey string, notFound gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, paramName)
		if !ok {
			notFound(c)
			c.Abort()
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

func parseUintParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
