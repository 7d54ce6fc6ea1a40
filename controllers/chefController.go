package controllers

import (
	"context"
	"net/http"

	"family-restaurant/database"
	"family-restaurant/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var chefCollection *mongo.Collection = database.OpenCollection(database.Client, "chef")

func GetChefs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
		cursor, err := chefCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		chefs := []models.Chef{}
		if err := cursor.All(ctx, &chefs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, chefs)
	}
}

func GetChef() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		chefID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}

		var chef models.Chef
		err = chefCollection.FindOne(ctx, bson.M{"_id": chefID}).Decode(&chef)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, chef)
	}
}

func CreateChef() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var chef models.Chef
		if err := c.ShouldBindJSON(&chef); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		chef.ID = primitive.NewObjectID()
		chef.Available = true
		if err := validate.Struct(&chef); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if _, err := chefCollection.InsertOne(ctx, chef); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Chef was not created"})
			return
		}
		c.JSON(http.StatusCreated, chef)
	}
}

func UpdateChef() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		chefID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}

		var req struct {
			Name       *string  `json:"name"`
			Specialty  *string  `json:"specialty"`
			Experience *int     `json:"experience" validate:"omitempty,gte=0"`
			Image      *string  `json:"image"`
			Bio        *string  `json:"bio"`
			Rating     *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
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
		if req.Specialty != nil {
			updateObj = append(updateObj, bson.E{Key: "specialty", Value: *req.Specialty})
		}
		if req.Experience != nil {
			updateObj = append(updateObj, bson.E{Key: "experience", Value: *req.Experience})
		}
		if req.Image != nil {
			updateObj = append(updateObj, bson.E{Key: "image", Value: *req.Image})
		}
		if req.Bio != nil {
			updateObj = append(updateObj, bson.E{Key: "bio", Value: *req.Bio})
		}
		if req.Rating != nil {
			updateObj = append(updateObj, bson.E{Key: "rating", Value: *req.Rating})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		var updated models.Chef
		err = chefCollection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": chefID},
			bson.D{{Key: "$set", Value: updateObj}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Chef update failed"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func UpdateChefAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		chefID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}

		var body struct {
			Available *bool `json:"available" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updated models.Chef
		err = chefCollection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": chefID},
			bson.D{{Key: "$set", Value: bson.D{{Key: "available", Value: *body.Available}}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteChef() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		chefID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}

		result, err := chefCollection.DeleteOne(ctx, bson.M{"_id": chefID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Chef deleted successfully"})
	}
}
