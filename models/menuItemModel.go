package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the authoritative set; surfaces must not offer values the
// schema rejects.
var Categories = []string{"starters", "biryanis", "main-course", "soft-drinks", "specials"}

var SpicyLevels = []string{"mild", "medium", "spicy", "extra-spicy"}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Name            string             `bson:"name" json:"name" validate:"required"`
	Description     string             `bson:"description" json:"description" validate:"required"`
	Price           float64            `bson:"price" json:"price" validate:"gte=0"`
	Category        string             `bson:"category" json:"category" validate:"required,oneof=starters biryanis main-course soft-drinks specials"`
	Image           string             `bson:"image" json:"image"`
	Rating          float64            `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	Available       bool               `bson:"available" json:"available"`
	SpicyLevel      string             `bson:"spicy_level" json:"spicyLevel" validate:"omitempty,oneof=mild medium spicy extra-spicy"`
	PreparationTime int                `bson:"preparation_time" json:"preparationTime" validate:"omitempty,gt=0"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
