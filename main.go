package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"family-restaurant/controllers"
	"family-restaurant/database"
	"family-restaurant/notifications"
	"family-restaurant/repositories"
	"family-restaurant/routes"
	"family-restaurant/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	if err := database.EnsureIndexes(database.Client); err != nil {
		log.Fatal("failed to create indexes: ", err)
	}

	hub := notifications.NewHub()
	go hub.Run()
	defer hub.Stop()

	orderRepo := repositories.NewOrderRepository(database.OpenCollection(database.Client, "order"))
	menuRepo := repositories.NewMenuRepository(database.OpenCollection(database.Client, "menu"))

	// The original system accepted any status value for any current status;
	// strict transition validation is the default here, the flag restores
	// the old behavior.
	strictTransitions := os.Getenv("STRICT_STATUS_TRANSITIONS") != "false"
	orderService := services.NewOrderService(orderRepo, menuRepo, hub, strictTransitions)
	orderController := controllers.NewOrderController(orderService)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
	})

	routes.UserRoutes(router, hub)
	routes.MenuRoutes(router)
	routes.OrderRoutes(router, orderController)
	routes.ChefRoutes(router)
	routes.ContactRoutes(router)

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
