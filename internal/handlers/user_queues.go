package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"online_queue/internal/response"
)

// GetUserQueues godoc
// @Summary		Получение списка своих очередей
// @Description	Очереди, в которых состоит пользователь, с текущей позицией каждой записи
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		queue.UserQueueItem	"Записи пользователя"
// @Failure		401	{object}	response.ErrorResponse	"Требуется авторизация (UNAUTHORIZED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/profile/queues [get]
func (h *Handler) GetUserQueues(c *gin.Context) {
	items, err := h.queues.UserQueues(c.Request.Context(), caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSONWithMeta(c, http.StatusOK, items, gin.H{"count": len(items)})
}

// AuthCheck godoc
// @Summary		Проверка токена
// @Description	Возвращает идентификатор пользователя, если токен действителен
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.AuthCheckResponse	"Токен действителен"
// @Failure		401	{object}	response.ErrorResponse	"Требуется авторизация (UNAUTHORIZED)"
// @Router			/api/authcheck [get]
func (h *Handler) AuthCheck(c *gin.Context) {
	response.JSON(c, http.StatusOK, response.AuthCheckResponse{Auth: true, UserID: caller(c)})
}
