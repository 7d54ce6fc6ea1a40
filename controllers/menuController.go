package controllers

import (
	"context"
	"net/http"
	"time"

	"family-restaurant/database"
	"family-restaurant/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuCollection *mongo.Collection = database.OpenCollection(database.Client, "menu")

type menuItemRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Price           *float64 `json:"price" validate:"required,gte=0"`
	Category        string   `json:"category" validate:"required,oneof=starters biryanis main-course soft-drinks specials"`
	Image           string   `json:"image"`
	SpicyLevel      string   `json:"spicyLevel" validate:"omitempty,oneof=mild medium spicy extra-spicy"`
	PreparationTime *int     `json:"preparationTime" validate:"omitempty,gt=0"`
}

func GetMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		filter := bson.M{}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}
		if available := c.Query("available"); available != "" {
			filter["available"] = available == "true"
		}

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := menuCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		items := []models.MenuItem{}
		if err := cursor.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		var item models.MenuItem
		err = menuCollection.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req menuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item := models.MenuItem{
			ID:              primitive.NewObjectID(),
			Name:            req.Name,
			Description:     req.Description,
			Price:           *req.Price,
			Category:        req.Category,
			Image:           req.Image,
			Available:       true,
			SpicyLevel:      "medium",
			PreparationTime: 15,
			CreatedAt:       time.Now(),
		}
		if req.SpicyLevel != "" {
			item.SpicyLevel = req.SpicyLevel
		}
		if req.PreparationTime != nil {
			item.PreparationTime = *req.PreparationTime
		}

		if _, err := menuCollection.InsertOne(ctx, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Menu item was not created"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		var req struct {
			Name            *string  `json:"name"`
			Description     *string  `json:"description"`
			Price           *float64 `json:"price" validate:"omitempty,gte=0"`
			Category        *string  `json:"category" validate:"omitempty,oneof=starters biryanis main-course soft-drinks specials"`
			Image           *string  `json:"image"`
			Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
			Available       *bool    `json:"available"`
			SpicyLevel      *string  `json:"spicyLevel" validate:"omitempty,oneof=mild medium spicy extra-spicy"`
			PreparationTime *int     `json:"preparationTime" validate:"omitempty,gt=0"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		if req.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: *req.Name})
		}
		if req.Description != nil {
			updateObj = append(updateObj, bson.E{Key: "description", Value: *req.Description})
		}
		if req.Price != nil {
			updateObj = append(updateObj, bson.E{Key: "price", Value: *req.Price})
		}
		if req.Category != nil {
			updateObj = append(updateObj, bson.E{Key: "category", Value: *req.Category})
		}
		if req.Image != nil {
			updateObj = append(updateObj, bson.E{Key: "image", Value: *req.Image})
		}
		if req.Rating != nil {
			updateObj = append(updateObj, bson.E{Key: "rating", Value: *req.Rating})
		}
		if req.Available != nil {
			updateObj = append(updateObj, bson.E{Key: "available", Value: *req.Available})
		}
		if req.SpicyLevel != nil {
			updateObj = append(updateObj, bson.E{Key: "spicy_level", Value: *req.SpicyLevel})
		}
		if req.PreparationTime != nil {
			updateObj = append(updateObj, bson.E{Key: "preparation_time", Value: *req.PreparationTime})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		var updated models.MenuItem
		err = menuCollection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": itemID},
			bson.D{{Key: "$set", Value: updateObj}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Menu item update failed"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func UpdateMenuItemAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		var body struct {
			Available *bool `json:"available" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updated models.MenuItem
		err = menuCollection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": itemID},
			bson.D{{Key: "$set", Value: bson.D{{Key: "available", Value: *body.Available}}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		result, err := menuCollection.DeleteOne(ctx, bson.M{"_id": itemID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
	}
}

func GetMenuCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		categories, err := menuCollection.Distinct(ctx, "category", bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func GetMenuStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		totalItems, err := menuCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		availableItems, err := menuCollection.CountDocuments(ctx, bson.M{"available": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		groupStage := bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "available", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$available", true}}}, 1, 0,
				}},
			}}}},
		}}}

		cursor, err := menuCollection.Aggregate(ctx, mongo.Pipeline{groupStage})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var categoryStats []bson.M
		if err := cursor.All(ctx, &categoryStats); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalItems":      totalItems,
			"availableItems":  availableItems,
			"outOfStockItems": totalItems - availableItems,
			"categoryStats":   categoryStats,
		})
	}
}
