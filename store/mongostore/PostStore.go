package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Pawarnaren/ConnectApp-Backend/models"
	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

type PostStore struct {
	posts *mongo.Collection
}

func NewPostStore(client *mongo.Client, dbName string) *PostStore {
	return &PostStore{posts: client.Database(dbName).Collection("posts-collection")}
}

func (s *PostStore) Insert(ctx context.Context, post *models.Post) error {
	_, err := s.posts.InsertOne(ctx, post)
	return err
}

func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var post models.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, store.ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *PostStore) Replace(ctx context.Context, post models.Post) error {
	result, err := s.posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *PostStore) SetArchived(ctx context.Context, id primitive.ObjectID, archived bool) (models.Post, error) {
	result, err := s.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"archived": archived}})
	if err != nil {
		return models.Post{}, err
	}
	if result.MatchedCount == 0 {
		return models.Post{}, store.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *PostStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID, archived bool) ([]models.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.M{"owner": ownerID, "archived": archived})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
