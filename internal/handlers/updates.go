package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// QueueUpdates открывает поток Server-Sent Events с уведомлениями об изменениях
// @Summary		Поток обновлений очередей
// @Description	SSE-поток: каждое событие — data: {"queueId":N}. Токен можно передать параметром token.
// @Tags			updates
// @Produce		text/event-stream
// @Param			token	query	string	false	"Токен доступа для EventSource"
// @Security		BearerAuth
// @Success		200	{string}	string	"Поток событий"
// @Failure		401	{object}	response.ErrorResponse	"Требуется авторизация (UNAUTHORIZED)"
// @Router			/api/queue/updates [get]
func (h *Handler) QueueUpdates(c *gin.Context) {
	sub := h.updates.Subscribe()
	defer h.updates.Unsubscribe(sub)

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	log := h.logger.WithField("subscription", sub.ID())
	log.Debug("sse observer connected")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case payload, ok := <-sub.C():
			if !ok {
				return false
			}
			return sse.Encode(w, sse.Event{Data: string(payload)}) == nil
		case <-ticker.C:
			_, err := io.WriteString(w, ": ping\n\n")
			return err == nil
		}
	})

	log.WithField("dropped", sub.Dropped()).Debug("sse observer disconnected")
}
