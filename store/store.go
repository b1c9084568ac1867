// Package store defines the persistence contracts the controllers depend
// on, so that handlers can run against mongo in production and an
// in-memory implementation in tests.
package store

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pawarnaren/ConnectApp-Backend/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicatePhone    = errors.New("phone already exists")
	ErrAlreadyFollowing  = errors.New("already following this user")
	ErrNotFollowing      = errors.New("not following this user")
)

// FollowCounts carries the updated denormalized counters for both parties
// of a follow or unfollow.
type FollowCounts struct {
	FollowersCount int // target's followers after the operation
	FollowingCount int // actor's following after the operation
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
	FindByTag(ctx context.Context, tag string) ([]models.UserSummary, error)
	ListSummaries(ctx context.Context) ([]models.UserSummary, error)

	UpdateEmail(ctx context.Context, id primitive.ObjectID, newEmail string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdateBioTags(ctx context.Context, id primitive.ObjectID, bio, tags string) (models.User, error)
	UpdateProfileImage(ctx context.Context, id primitive.ObjectID, imageURL string) error

	// Follow and Unfollow mutate both user documents: the actor's following
	// set and count, and the target's followers set and count. The pair of
	// writes is applied together; a failure leaves neither side changed.
	Follow(ctx context.Context, actorID, targetID primitive.ObjectID) (FollowCounts, error)
	Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) (FollowCounts, error)

	// IncPostsCount adjusts the owner's post counter by delta. Decrements
	// are floored at zero.
	IncPostsCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

type PostStore interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Post, error)
	Replace(ctx context.Context, post models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetArchived(ctx context.Context, id primitive.ObjectID, archived bool) (models.Post, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID, archived bool) ([]models.Post, error)
}

// ImageStore is the object-storage collaborator for uploaded images.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}
