package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
)

// Client представляет одно подключение через WebSocket.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	sub    *Subscription
	logger *log.Entry
}

// NewClient подписывает соединение на хаб.
func NewClient(hub *Hub, conn *websocket.Conn, logger *log.Logger) *Client {
	sub := hub.Subscribe()
	return &Client{
		hub:    hub,
		conn:   conn,
		sub:    sub,
		logger: logger.WithField("subscription", sub.ID()),
	}
}

// Serve запускает writePump в отдельной горутине и блокируется в readPump
// до разрыва соединения.
func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}

// readPump читает входящие кадры только ради ping/pong и обнаружения разрыва.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.sub)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Debug("websocket closed unexpectedly")
			}
			return
		}
	}
}

// writePump отправляет клиенту события из подписки.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.sub.C():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Подписка закрыта.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler обновляет соединение до WebSocket и подписывает клиента на все очереди.
// @Summary		WebSocket-поток обновлений очередей
// @Description	Каждое сообщение — текстовый кадр {"queueId":N}. Токен можно передать параметром token.
// @Tags			updates
// @Param			token	query	string	false	"Токен доступа для браузерного WebSocket"
// @Security		BearerAuth
// @Success		101	{string}	string	"Переключение на WebSocket"
// @Router			/api/queue/updates/ws [get]
func Handler(hub *Hub, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade уже записал ответ с ошибкой.
			logger.WithError(err).Warn("websocket upgrade failed")
			return
		}

		client := NewClient(hub, conn, logger)
		client.logger.Debug("websocket observer connected")
		client.Serve()
	}
}
