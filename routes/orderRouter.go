package routes

import (
	"family-restaurant/controllers"
	"family-restaurant/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, controller *controllers.OrderController) {
	incomingRoutes.POST("/api/orders", controller.CreateOrder())

	protected := incomingRoutes.Group("/api/orders", middleware.Authentication())
	protected.GET("", controller.GetOrders())
	protected.GET("/stats", controller.GetOrderStats())
	protected.GET("/stats/chart", controller.GetOrderChart())
	protected.PUT("/:id/status", controller.UpdateOrderStatus())
}
