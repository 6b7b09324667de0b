package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"online_queue/internal/response"
)

// CreateQueue обрабатывает запрос на создание очереди
// @Summary		Создание очереди
// @Description	Создаёт новую именованную очередь
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			input	body	CreateQueueRequest	true	"Название очереди"
// @Security		BearerAuth
// @Success		201	{object}	response.QueueCreatedResponse	"Очередь создана"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		401	{object}	response.ErrorResponse	"Требуется авторизация (UNAUTHORIZED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues [post]
func (h *Handler) CreateQueue(c *gin.Context) {
	var req CreateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	id, err := h.queues.CreateQueue(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, response.QueueCreatedResponse{QueueID: id})
}

// ListQueues обрабатывает запрос на получение всех очередей
// @Summary		Список очередей
// @Description	Возвращает все очереди с участниками в порядке (timestamp, id)
// @Tags			queue
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Queue	"Список очередей"
// @Failure		401	{object}	response.ErrorResponse	"Требуется авторизация (UNAUTHORIZED)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues [get]
func (h *Handler) ListQueues(c *gin.Context) {
	queues, err := h.queues.ListQueues(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSONWithMeta(c, http.StatusOK, queues, gin.H{"count": len(queues)})
}

// JoinQueue обрабатывает запрос на вступление в очередь
// @Summary		Вступление в очередь
// @Description	Добавляет пользователя в конец очереди и уведомляет наблюдателей
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			id		path	int			true	"ID очереди"
// @Param			input	body	UserRequest	false	"user_id, по умолчанию текущий пользователь"
// @Security		BearerAuth
// @Success		201	{object}	response.EntryCreatedResponse	"Успешное вступление в очередь"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{id}/join [post]
func (h *Handler) JoinQueue(c *gin.Context) {
	queueID, ok := h.queueID(c)
	if !ok {
		return
	}
	var req UserRequest
	if !h.bindOptional(c, &req) {
		return
	}

	entryID, err := h.queues.Join(c.Request.Context(), queueID, req.userOr(caller(c)))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, response.EntryCreatedResponse{EntryID: entryID})
}

// LeaveQueue обрабатывает запрос на выход из очереди
// @Summary		Выход из очереди
// @Description	Удаляет первую запись пользователя. Выход не состоящего в очереди не ошибка.
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			id		path	int			true	"ID очереди"
// @Param			input	body	UserRequest	false	"user_id, по умолчанию текущий пользователь"
// @Security		BearerAuth
// @Success		200	{string}	string	"Left queue"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{id}/leave [delete]
func (h *Handler) LeaveQueue(c *gin.Context) {
	queueID, ok := h.queueID(c)
	if !ok {
		return
	}
	var req UserRequest
	if !h.bindOptional(c, &req) {
		return
	}

	if err := h.queues.Leave(c.Request.Context(), queueID, req.userOr(caller(c))); err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Left queue")
}

// SkipTurn обрабатывает запрос на пропуск хода
// @Summary		Пропуск хода
// @Description	Пересоздаёт запись пользователя согласно режиму QUEUE_SKIP_MODE
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			id		path	int			true	"ID очереди"
// @Param			input	body	UserRequest	false	"user_id, по умолчанию текущий пользователь"
// @Security		BearerAuth
// @Success		200	{string}	string	"Skipped turn"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Пользователь не в очереди (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{id}/skip [post]
func (h *Handler) SkipTurn(c *gin.Context) {
	queueID, ok := h.queueID(c)
	if !ok {
		return
	}
	var req UserRequest
	if !h.bindOptional(c, &req) {
		return
	}

	if err := h.queues.Skip(c.Request.Context(), queueID, req.userOr(caller(c))); err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Skipped turn")
}

// SwapPlaces обрабатывает запрос на обмен местами
// @Summary		Обмен местами
// @Description	Передаёт вызывающему место целевой записи согласно режиму QUEUE_SWAP_MODE
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			id		path	int			true	"ID очереди"
// @Param			input	body	SwapRequest	true	"Целевая запись"
// @Security		BearerAuth
// @Success		200	{string}	string	"Swapped places"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{id}/swap [post]
func (h *Handler) SwapPlaces(c *gin.Context) {
	queueID, ok := h.queueID(c)
	if !ok {
		return
	}
	var req SwapRequest
	if !h.bindOptional(c, &req) {
		return
	}

	callerID := req.UserID
	if callerID == 0 {
		callerID = caller(c)
	}

	if err := h.queues.Swap(c.Request.Context(), queueID, callerID, req.TargetEntryID); err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, "Swapped places")
}
