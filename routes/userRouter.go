package routes

import (
	"family-restaurant/controllers"
	"family-restaurant/middleware"
	"family-restaurant/notifications"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine, hub *notifications.Hub) {
	incomingRoutes.POST("/api/auth/register", controllers.Register())
	incomingRoutes.POST("/api/auth/login", controllers.Login())
	incomingRoutes.GET("/api/auth/me", middleware.Authentication(), controllers.GetCurrentUser())
	incomingRoutes.PUT("/api/auth/change-password", middleware.Authentication(), controllers.ChangePassword())

	incomingRoutes.GET("/ws", middleware.Authentication(), controllers.HandleWebSocket(hub))
}
