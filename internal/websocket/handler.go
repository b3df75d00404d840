package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer; the feed itself requires a
	// valid admin token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades an admin dashboard connection. The token is passed as a
// query parameter because browsers cannot set headers on WebSocket
// connects.
func Handler(hub *Hub, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		claims, err := tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			Hub:    hub,
			Conn:   conn,
			Send:   make(chan []byte, 16),
			UserID: claims.UserID,
		}
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
