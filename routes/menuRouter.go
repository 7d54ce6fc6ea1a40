package routes

import (
	"family-restaurant/controllers"
	"family-restaurant/middleware"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/menu", controllers.GetMenuItems())
	incomingRoutes.GET("/api/menu/:id", controllers.GetMenuItem())
	incomingRoutes.GET("/api/menu/categories/all", controllers.GetMenuCategories())
	incomingRoutes.GET("/api/menu/stats/count", middleware.Authentication(), controllers.GetMenuStats())

	admin := incomingRoutes.Group("/api/menu", middleware.Authentication(), middleware.AdminOnly())
	admin.POST("", controllers.CreateMenuItem())
	admin.PUT("/:id", controllers.UpdateMenuItem())
	admin.PATCH("/:id/availability", controllers.UpdateMenuItemAvailability())
	admin.DELETE("/:id", controllers.DeleteMenuItem())
}
