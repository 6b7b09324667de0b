package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"online_queue/internal/response"
	"online_queue/internal/ws"
)

// Pinger проверяет доступность базы данных.
type Pinger func(ctx context.Context) error

// HubStats отдаёт снимок состояния хаба уведомлений.
type HubStats interface {
	Stats() ws.Stats
}

// HealthResponse — состояние сервиса.
type HealthResponse struct {
	Status   string   `json:"status" example:"ok"`
	Database string   `json:"database" example:"ok"`
	Hub      ws.Stats `json:"hub"`
}

type HealthHandler struct {
	ping Pinger
	hub  HubStats
}

func NewHealthHandler(ping Pinger, hub HubStats) *HealthHandler {
	return &HealthHandler{ping: ping, hub: hub}
}

// Health godoc
// @Summary		Проверка состояния
// @Description	Проверяет соединение с базой и возвращает статистику хаба уведомлений
// @Tags			health
// @Produce		json
// @Success		200	{object}	HealthResponse	"Сервис работает"
// @Failure		503	{object}	HealthResponse	"База данных недоступна"
// @Router			/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	res := HealthResponse{Status: "ok", Database: "ok", Hub: h.hub.Stats()}
	status := http.StatusOK
	if err := h.ping(ctx); err != nil {
		res.Status = "degraded"
		res.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	response.JSON(c, status, res)
}
