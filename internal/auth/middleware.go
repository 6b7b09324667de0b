package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"online_queue/internal/response"
)

// ContextUserID — ключ gin.Context с идентификатором проверенного пользователя.
const ContextUserID = "userID"

// tokenFromRequest берёт токен из заголовка Authorization или параметра token.
// EventSource в браузере не умеет слать заголовки, поэтому нужен параметр.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

// RequireUser проверяет токен и кладёт user id в контекст.
func RequireUser(v Verifier, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := v.Verify(c.Request.Context(), tokenFromRequest(c))
		if err != nil {
			var authErr *AuthError
			if errors.As(err, &authErr) {
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Требуется авторизация", authErr.Reason)
				return
			}
			logger.WithError(err).Error("token verification failed")
			response.Error(c, http.StatusServiceUnavailable, response.CodeAuthUnavailable, "Сервис авторизации недоступен", "")
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID возвращает идентификатор пользователя, установленный RequireUser.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}
