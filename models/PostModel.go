package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"name" bson:"name" validate:"required"`
	Address  string             `json:"address" bson:"address" validate:"required"`
	Phone    string             `json:"phone" bson:"phone" validate:"required"`
	ImgURL   string             `json:"imgUrl" bson:"imgUrl" validate:"required"`
	Owner    primitive.ObjectID `json:"owner" bson:"owner"`
	Archived bool               `json:"archived" bson:"archived"`
}
