package controllers

import (
	"log"
	"net/http"

	"family-restaurant/notifications"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades an authenticated admin connection and streams hub
// events to it until the client goes away. The Authentication middleware
// must run before this handler: only verified sessions join the broadcast.
func HandleWebSocket(hub *notifications.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}

		sub := hub.Subscribe()

		go func() {
			for event := range sub.Events() {
				if err := conn.WriteJSON(event); err != nil {
					sub.Close()
					conn.Close()
					return
				}
			}
			conn.Close()
		}()

		// Clients never send application data; the read loop only detects
		// disconnection.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		sub.Close()
	}
}
