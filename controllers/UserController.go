package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Pawarnaren/ConnectApp-Backend/helper"
	"github.com/Pawarnaren/ConnectApp-Backend/models"
	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

type UserController struct {
	users               store.UserStore
	images              store.ImageStore
	tokens              *helper.TokenService
	defaultProfileImage string
}

func NewUserController(users store.UserStore, images store.ImageStore, tokens *helper.TokenService, defaultProfileImage string) *UserController {
	return &UserController{
		users:               users,
		images:              images,
		tokens:              tokens,
		defaultProfileImage: defaultProfileImage,
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// profilePayload is the response shape for profile reads. Follower and
// following counts are derived from the relation sets rather than read
// from the stored counters, so drifted counters never surface here.
func profilePayload(user models.User) gin.H {
	return gin.H{
		"username":       user.Username,
		"firstName":      user.FirstName,
		"middleName":     user.MiddleName,
		"lastName":       user.LastName,
		"email":          user.Email,
		"phone":          user.Phone,
		"profileImage":   user.ProfileImage,
		"followersCount": len(user.Followers),
		"followingCount": len(user.Following),
		"postsCount":     user.PostsCount,
		"followers":      user.Followers,
		"following":      user.Following,
		"tags":           user.Tags,
		"bio":            user.Bio,
	}
}

func (uc *UserController) SignUp(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if user.Username == "" || user.Email == "" || user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email, and password are required"})
		return
	}
	if err := validate.Struct(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		return
	}
	user.Password = string(hashedPassword)

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.Followers = []primitive.ObjectID{}
	user.Following = []primitive.ObjectID{}
	// Counters always start at zero regardless of what the request body
	// carried; they must mirror the relation sets.
	user.PostsCount = 0
	user.FollowersCount = 0
	user.FollowingCount = 0
	if user.ProfileImage == "" {
		user.ProfileImage = uc.defaultProfileImage
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := uc.users.Insert(ctx, &user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		case errors.Is(err, store.ErrDuplicateUsername):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		case errors.Is(err, store.ErrDuplicatePhone):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone already exists"})
		default:
			log.Println("error registering user:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    loginUserPayload(user),
	})
}

func loginUserPayload(user models.User) gin.H {
	return gin.H{
		"id":             user.ID,
		"firstName":      user.FirstName,
		"middleName":     user.MiddleName,
		"lastName":       user.LastName,
		"username":       user.Username,
		"email":          user.Email,
		"phone":          user.Phone,
		"followersCount": len(user.Followers),
		"followingCount": len(user.Following),
		"profileImage":   user.ProfileImage,
	}
}

func (uc *UserController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := uc.users.FindByEmail(ctx, body.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Email or Password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Email or Password"})
		return
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		log.Println("error signing token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    loginUserPayload(user),
		"token":   token,
	})
}

// GetCurrentUserProfile serves the principal attached by RequireAuth, so
// it reflects the stored counters directly.
func (uc *UserController) GetCurrentUserProfile(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	payload := profilePayload(user)
	payload["followersCount"] = user.FollowersCount
	payload["followingCount"] = user.FollowingCount
	c.JSON(http.StatusOK, payload)
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Println("error fetching user profile:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, profilePayload(user))
}

func (uc *UserController) UpdateUserEmail(c *gin.Context) {
	var body struct {
		NewEmail string `json:"newEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := uc.users.UpdateEmail(ctx, user.ID, body.NewEmail); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			log.Println("error updating email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating email"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email updated successfully"})
}

func (uc *UserController) UpdateUserPassword(c *gin.Context) {
	var body struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating password"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := uc.users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		log.Println("error updating password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// UpdateUserProfile updates bio and tags. The username path segment is
// kept for route compatibility; the update always applies to the
// authenticated principal.
func (uc *UserController) UpdateUserProfile(c *gin.Context) {
	var body struct {
		Bio  string `json:"bio"`
		Tags string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := uc.users.UpdateBioTags(ctx, user.ID, body.Bio, body.Tags)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Println("error updating user profile:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating profile"})
		return
	}

	c.JSON(http.StatusOK, profilePayload(updated))
}

func (uc *UserController) UploadProfilePicture(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	fileHeader, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	switch fileHeader.Header.Get("Content-Type") {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file type"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Println("error opening uploaded file:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading profile picture"})
		return
	}
	defer src.Close()

	ctx, cancel := requestContext(c)
	defer cancel()

	imageID, err := uc.images.Save(ctx, fileHeader.Filename, src)
	if err != nil {
		log.Println("error storing profile picture:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading profile picture"})
		return
	}

	imageURL := "/images/" + imageID
	if err := uc.users.UpdateProfileImage(ctx, user.ID, imageURL); err != nil {
		log.Println("error persisting profile picture url:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading profile picture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profileImage": imageURL})
}

func (uc *UserController) GetImage(c *gin.Context) {
	imageID := c.Param("image_id")

	ctx, cancel := requestContext(c)
	defer cancel()

	file, err := uc.images.Open(ctx, imageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Image not found"})
		return
	}
	defer file.Close()

	c.Header("Content-Type", "image/png")
	if _, err := io.Copy(c.Writer, file); err != nil {
		log.Println("error streaming image:", err)
	}
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := uc.users.ListSummaries(ctx)
	if err != nil {
		log.Println("error fetching users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) SearchUsersByTag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tag is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := uc.users.FindByTag(ctx, tag)
	if err != nil {
		log.Println("error searching users by tag:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No users found with this tag"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (uc *UserController) ValidateUser(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user does not exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "username": user.Username})
}

// ValidateUserByEmail is the weak-mode counterpart of ValidateUser and
// carries an explicit marker so callers cannot mistake it for a verified
// identity.
func (uc *UserController) ValidateUserByEmail(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user does not exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "username": user.Username, "mode": "email-asserted"})
}
