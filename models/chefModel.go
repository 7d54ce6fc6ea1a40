package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Chef struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Specialty  string             `bson:"specialty" json:"specialty" validate:"required"`
	Experience int                `bson:"experience" json:"experience" validate:"gte=0"`
	Image      string             `bson:"image" json:"image"`
	Bio        string             `bson:"bio" json:"bio"`
	Available  bool               `bson:"available" json:"available"`
	Rating     float64            `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
}
