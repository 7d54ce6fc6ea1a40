package routes

import (
	"family-restaurant/controllers"
	"family-restaurant/middleware"

	"github.com/gin-gonic/gin"
)

func ChefRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/chefs", controllers.GetChefs())
	incomingRoutes.GET("/api/chefs/:id", controllers.GetChef())

	admin := incomingRoutes.Group("/api/chefs", middleware.Authentication(), middleware.AdminOnly())
	admin.POST("", controllers.CreateChef())
	admin.PUT("/:id", controllers.UpdateChef())
	admin.PATCH("/:id/availability", controllers.UpdateChefAvailability())
	admin.DELETE("/:id", controllers.DeleteChef())
}
