package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pawarnaren/ConnectApp-Backend/helper"
	"github.com/Pawarnaren/ConnectApp-Backend/models"
	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

type PostController struct {
	posts store.PostStore
	users store.UserStore
}

func NewPostController(posts store.PostStore, users store.UserStore) *PostController {
	return &PostController{posts: posts, users: users}
}

func (pc *PostController) CreatePost(c *gin.Context) {
	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	owner, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	post.ID = primitive.NewObjectID()
	post.Owner = owner.ID
	post.Archived = false

	if err := validate.Struct(post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := pc.posts.Insert(ctx, &post); err != nil {
		log.Println("error creating post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating post"})
		return
	}

	// Best-effort counter bump: a failure here is logged but the post has
	// already been created, so the request still succeeds.
	if err := pc.users.IncPostsCount(ctx, owner.ID, 1); err != nil {
		log.Println("error incrementing posts count:", err)
	}

	c.JSON(http.StatusCreated, post)
}

func (pc *PostController) GetPostById(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := pc.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		log.Println("error fetching post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost merges the provided fields into the post. Only the owner may
// update it.
func (pc *PostController) UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	var patch struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
		ImgURL  *string `json:"imgUrl"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	actor, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := pc.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		log.Println("error fetching post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating post"})
		return
	}
	if post.Owner != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	if patch.Name != nil {
		post.Name = *patch.Name
	}
	if patch.Address != nil {
		post.Address = *patch.Address
	}
	if patch.Phone != nil {
		post.Phone = *patch.Phone
	}
	if patch.ImgURL != nil {
		post.ImgURL = *patch.ImgURL
	}

	if err := pc.posts.Replace(ctx, post); err != nil {
		log.Println("error updating post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	actor, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := pc.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		log.Println("error fetching post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting post"})
		return
	}
	if post.Owner != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		return
	}

	if err := pc.posts.Delete(ctx, postID); err != nil {
		log.Println("error deleting post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting post"})
		return
	}

	// Best-effort decrement, floored at zero by the store.
	if err := pc.users.IncPostsCount(ctx, actor.ID, -1); err != nil {
		log.Println("error decrementing posts count:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ArchivePost toggles the archived flag. Any authenticated caller with a
// valid boolean may toggle it; ownership is not checked.
func (pc *PostController) ArchivePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post ID"})
		return
	}

	var body struct {
		Archived *bool `json:"archived"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Archived == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid archived status"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := pc.posts.SetArchived(ctx, postID, *body.Archived)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		log.Println("error updating post archive status:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully", "post": post})
}

func (pc *PostController) GetPostsByOwnerEmail(c *gin.Context) {
	pc.listByOwnerEmail(c, false)
}

func (pc *PostController) GetArchivedPostsByOwnerEmail(c *gin.Context) {
	pc.listByOwnerEmail(c, true)
}

func (pc *PostController) listByOwnerEmail(c *gin.Context, archived bool) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email parameter not provided"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := pc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Println("error resolving owner email:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching posts"})
		return
	}

	posts, err := pc.posts.FindByOwner(ctx, user.ID, archived)
	if err != nil {
		log.Println("error fetching posts by owner:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetDemoPosts serves a generated feed for frontend demos. Nothing here
// touches the store.
func (pc *PostController) GetDemoPosts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit or offset parameter"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit or offset parameter"})
		return
	}

	const total = 1000
	if offset > total {
		offset = total
	}
	if offset+limit > total {
		limit = total - offset
	}

	data := make([]gin.H, 0, limit)
	for i := 0; i < limit; i++ {
		data = append(data, gin.H{
			"id":      uuid.NewString(),
			"name":    gofakeit.Name(),
			"email":   gofakeit.Email(),
			"address": gofakeit.Street(),
			"phone":   gofakeit.Phone(),
			"imgUrl":  fmt.Sprintf("https://picsum.photos/200/300?random=%d", gofakeit.Number(0, 999)),
		})
	}

	c.JSON(http.StatusOK, data)
}
