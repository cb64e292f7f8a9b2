package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/claudiojas/rockbandpay-table-client/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dev server, no origin policy
	},
}

type WSController struct {
	DB  *gorm.DB
	Hub *Hub
}

func NewWSController(db *gorm.DB, hub *Hub) *WSController {
	return &WSController{DB: db, Hub: hub}
}

// SessionSocket -> GET /ws/session/:session_id
func (wc *WSController) SessionSocket(c *gin.Context) {
	sessionID := c.Param("session_id")

	var session models.Session
	if err := wc.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wc.Hub.Register(sessionID, ws)

	// Inbound traffic is ignored; the read loop only detects disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	wc.Hub.Unregister(sessionID, ws)
}
