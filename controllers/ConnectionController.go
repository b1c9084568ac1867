package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pawarnaren/ConnectApp-Backend/helper"
	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

type ConnectionController struct {
	users store.UserStore
}

func NewConnectionController(users store.UserStore) *ConnectionController {
	return &ConnectionController{users: users}
}

type followRequest struct {
	UserID string `json:"userId"`
}

func (cc *ConnectionController) FollowUser(c *gin.Context) {
	var body followRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	actor, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Current user not found"})
		return
	}
	if actor.ID == targetID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot follow yourself"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	counts, err := cc.users.Follow(ctx, actor.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User to follow not found"})
		case errors.Is(err, store.ErrAlreadyFollowing):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already following this user"})
		default:
			log.Println("error following user:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Followed successfully",
		"userId":         body.UserID,
		"followersCount": counts.FollowersCount,
		"followingCount": counts.FollowingCount,
	})
}

func (cc *ConnectionController) UnfollowUser(c *gin.Context) {
	var body followRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	actor, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Current user not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	counts, err := cc.users.Unfollow(ctx, actor.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User to unfollow not found"})
		case errors.Is(err, store.ErrNotFollowing):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Not following this user"})
		default:
			log.Println("error unfollowing user:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Unfollowed successfully",
		"userId":         body.UserID,
		"followersCount": counts.FollowersCount,
		"followingCount": counts.FollowingCount,
	})
}

func (cc *ConnectionController) GetAllFollowers(c *gin.Context) {
	cc.listRelations(c, func(user []primitive.ObjectID, _ []primitive.ObjectID) []primitive.ObjectID {
		return user
	})
}

func (cc *ConnectionController) GetAllFollowing(c *gin.Context) {
	cc.listRelations(c, func(_ []primitive.ObjectID, following []primitive.ObjectID) []primitive.ObjectID {
		return following
	})
}

func (cc *ConnectionController) listRelations(c *gin.Context, pick func(followers, following []primitive.ObjectID) []primitive.ObjectID) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := cc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Println("error fetching user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	relations, err := cc.users.FindByIDs(ctx, pick(user.Followers, user.Following))
	if err != nil {
		log.Println("error fetching relations:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, relations)
}
