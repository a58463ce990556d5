package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveComments streams comments added to :id over a WebSocket as JSON.
func (h *Handler) LiveComments(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	comments, err := h.Storage.SubscribeToComments(ctx, c.Param("id"))
	if err != nil {
		storageError(c, "LiveComments", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("LiveComments upgrade error: %v", err)
		return
	}
	defer conn.Close()
	// http.Server.ReadTimeout still applies to the hijacked connection
	conn.SetReadDeadline(time.Time{})

	// Клиент ничего не присылает; чтение нужно, чтобы заметить закрытие
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case comment, ok := <-comments:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(comment); err != nil {
				log.Printf("LiveComments write error: %v", err)
				return
			}
		}
	}
}
