package routes

import (
	"family-restaurant/controllers"
	"family-restaurant/middleware"

	"github.com/gin-gonic/gin"
)

func ContactRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/contact", controllers.SubmitContactMessage())

	admin := incomingRoutes.Group("/api/contact", middleware.Authentication(), middleware.AdminOnly())
	admin.GET("", controllers.GetContactMessages())
	admin.GET("/stats", controllers.GetContactStats())
	admin.PATCH("/:id/read", controllers.MarkContactMessageRead())
	admin.DELETE("/:id", controllers.DeleteContactMessage())
}
