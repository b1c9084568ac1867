package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id"`
	FirstName      string               `json:"firstName" bson:"firstName" validate:"required"`
	MiddleName     string               `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName       string               `json:"lastName" bson:"lastName" validate:"required"`
	Username       string               `json:"username" bson:"username" validate:"required"`
	Email          string               `json:"email" bson:"email" validate:"required,email"`
	Phone          string               `json:"phone" bson:"phone" validate:"required"`
	Password       string               `json:"password" bson:"password" validate:"required"`
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	PostsCount     int                  `json:"postsCount" bson:"postsCount"`
	FollowersCount int                  `json:"followersCount" bson:"followersCount"`
	FollowingCount int                  `json:"followingCount" bson:"followingCount"`
	ProfileImage   string               `json:"profileImage" bson:"profileImage"`
	Tags           string               `json:"tags,omitempty" bson:"tags,omitempty"`
	Bio            string               `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
}

// UserSummary is the trimmed projection served by listing endpoints.
type UserSummary struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Username       string             `json:"username" bson:"username"`
	ProfileImage   string             `json:"profileImage" bson:"profileImage"`
	FollowersCount int                `json:"followersCount" bson:"followersCount"`
	FollowingCount int                `json:"followingCount" bson:"followingCount"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfileImage:   u.ProfileImage,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		Bio:            u.Bio,
	}
}
