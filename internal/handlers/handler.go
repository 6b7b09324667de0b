package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"online_queue/internal/auth"
	"online_queue/internal/models"
	"online_queue/internal/queue"
	"online_queue/internal/response"
	"online_queue/internal/ws"
)

// QueueService — операции движка очередей, которые нужны HTTP-слою.
type QueueService interface {
	CreateQueue(ctx context.Context, name string) (int64, error)
	ListQueues(ctx context.Context) ([]models.Queue, error)
	Join(ctx context.Context, queueID, userID int64) (int64, error)
	Leave(ctx context.Context, queueID, userID int64) error
	Skip(ctx context.Context, queueID, userID int64) error
	Swap(ctx context.Context, queueID, callerID, targetEntryID int64) error
	UserQueues(ctx context.Context, userID int64) ([]queue.UserQueueItem, error)
}

// Subscriber выдаёт подписки на обновления очередей.
type Subscriber interface {
	Subscribe() *ws.Subscription
	Unsubscribe(sub *ws.Subscription)
}

type Handler struct {
	queues    QueueService
	updates   Subscriber
	heartbeat time.Duration
	logger    *log.Logger
}

func New(queues QueueService, updates Subscriber, heartbeat time.Duration, logger *log.Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Handler{
		queues:    queues,
		updates:   updates,
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// fail переводит доменную ошибку в HTTP-ответ.
func (h *Handler) fail(c *gin.Context, err error) {
	var validation *queue.ValidationError
	var notFound *queue.NotFoundError
	var storage *queue.StorageError

	switch {
	case errors.As(err, &validation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Ошибка валидации данных", validation.Error())
	case errors.As(err, &notFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Не найдено", notFound.Error())
	case errors.As(err, &storage):
		h.logger.WithError(err).WithField("op", storage.Op).Error("storage failure")
		response.Error(c, http.StatusInternalServerError, response.CodeDBError, "Ошибка базы данных", storage.Err.Error())
	default:
		h.logger.WithError(err).Error("unexpected error")
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Внутренняя ошибка сервера", "")
	}
}

func (h *Handler) badRequest(c *gin.Context, details string) {
	response.Error(c, http.StatusBadRequest, response.CodeValidation, "Ошибка валидации данных", details)
}

// queueID разбирает параметр :id. При ошибке ответ уже записан.
func (h *Handler) queueID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, "id: must be a positive integer")
		return 0, false
	}
	return id, true
}

// bindOptional разбирает JSON-тело, если оно есть. Пустое тело не ошибка.
func (h *Handler) bindOptional(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err.Error())
		return false
	}
	return true
}

// UserRequest — тело join/leave/skip. user_id по умолчанию — вызывающий.
type UserRequest struct {
	UserID int64 `json:"user_id" example:"42"`
}

func (r UserRequest) userOr(caller int64) int64 {
	if r.UserID != 0 {
		return r.UserID
	}
	return caller
}

// SwapRequest — тело запроса обмена местами.
type SwapRequest struct {
	UserID        int64 `json:"user_id" example:"42"`
	TargetEntryID int64 `json:"target_entry_id" example:"17"`
}

// CreateQueueRequest — тело запроса создания очереди.
type CreateQueueRequest struct {
	Name string `json:"name" example:"Обед"`
}

func caller(c *gin.Context) int64 {
	return auth.UserID(c)
}
