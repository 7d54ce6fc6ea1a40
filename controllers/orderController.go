package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"family-restaurant/models"
	"family-restaurant/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

func (ctrl *OrderController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req services.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := ctrl.service.Create(ctx, req)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func (ctrl *OrderController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		todayOnly := c.Query("today") == "true"
		orders, err := ctrl.service.List(ctx, todayOnly)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctrl *OrderController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var body struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := ctrl.service.UpdateStatus(ctx, c.Param("id"), models.OrderStatus(body.Status))
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (ctrl *OrderController) GetOrderStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		stats, err := ctrl.service.Stats(ctx)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func (ctrl *OrderController) GetOrderChart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		chart, err := ctrl.service.HourlyChart(ctx)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, chart)
	}
}

func respondOrderError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var unavailable *services.UnavailableError
	var validation *services.ValidationError
	var conflict *services.ConflictError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unavailable), errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Println("order operation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
