package devserver

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the external API surface the table client consumes.
func SetupRouter(db *gorm.DB, hub *Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(NewRateLimiter(50, 100).RateLimit())

	sessionCtrl := NewSessionController(db)
	catalogCtrl := NewCatalogController(db)
	orderCtrl := NewOrderController(db, hub)
	wsCtrl := NewWSController(db, hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/sessions/id/:session_id", sessionCtrl.GetSessionByID)
	r.GET("/sessions/table/:table_id/active", sessionCtrl.GetActiveSession)
	r.POST("/sessions", sessionCtrl.CreateSession)

	r.GET("/products", catalogCtrl.GetAllProducts)
	r.GET("/categories", catalogCtrl.GetAllCategories)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/session/:session_id", orderCtrl.GetOrdersBySession)
	r.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

	r.GET("/ws/session/:session_id", wsCtrl.SessionSocket)

	return r
}
