package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"family-restaurant/database"
	"family-restaurant/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var contactCollection *mongo.Collection = database.OpenCollection(database.Client, "contact")

func SubmitContactMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var message models.ContactMessage
		if err := c.ShouldBindJSON(&message); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		message.Name = strings.TrimSpace(message.Name)
		message.Email = strings.ToLower(strings.TrimSpace(message.Email))
		message.Phone = strings.TrimSpace(message.Phone)
		message.Message = strings.TrimSpace(message.Message)
		if err := validate.Struct(&message); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and message are required fields"})
			return
		}

		message.ID = primitive.NewObjectID()
		message.Read = false
		message.CreatedAt = time.Now()

		if _, err := contactCollection.InsertOne(ctx, message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact message. Please try again later."})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your message! We will get back to you soon."})
	}
}

func GetContactMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		filter := bson.M{}
		if read := c.Query("read"); read != "" {
			filter["read"] = read == "true"
		}

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := contactCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		messages := []models.ContactMessage{}
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

func MarkContactMessageRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		var updated models.ContactMessage
		err = contactCollection.FindOneAndUpdate(
			ctx,
			bson.M{"_id": messageID},
			bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteContactMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		messageID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		result, err := contactCollection.DeleteOne(ctx, bson.M{"_id": messageID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	}
}

func GetContactStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		total, err := contactCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		unread, err := contactCollection.CountDocuments(ctx, bson.M{"read": false})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalMessages":  total,
			"unreadMessages": unread,
			"readMessages":   total - unread,
		})
	}
}
