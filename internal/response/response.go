package response

import "github.com/gin-gonic/gin"

// Коды ошибок API.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAuthUnavailable = "AUTH_UNAVAILABLE"
	CodeDBError         = "DB_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// Envelope — единый формат всех ответов API.
type Envelope struct {
	Data  interface{}    `json:"data"`
	Error *ErrorResponse `json:"error"`
	Meta  interface{}    `json:"meta"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: name: must not be empty
	Details string `json:"details,omitempty"`
}

// QueueCreatedResponse — данные ответа на создание очереди.
type QueueCreatedResponse struct {
	QueueID int64 `json:"queue_id" example:"1"`
}

// EntryCreatedResponse — данные ответа на вступление в очередь.
type EntryCreatedResponse struct {
	EntryID int64 `json:"entry_id" example:"17"`
}

// AuthCheckResponse — результат проверки токена.
type AuthCheckResponse struct {
	Auth   bool  `json:"auth" example:"true"`
	UserID int64 `json:"user_id" example:"42"`
}

// TokenResponse представляет ответ с токеном доступа (queuectl token issue --json)
type TokenResponse struct {
	// JWT токен для доступа к защищенным эндпоинтам
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`
}

// JSON пишет успешный ответ в конверте.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Data: data})
}

// JSONWithMeta пишет успешный ответ с метаданными.
func JSONWithMeta(c *gin.Context, status int, data, meta interface{}) {
	c.JSON(status, Envelope{Data: data, Meta: meta})
}

// Error прерывает цепочку обработчиков и пишет ошибку в конверте.
func Error(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, Envelope{
		Error: &ErrorResponse{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
