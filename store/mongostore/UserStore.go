package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pawarnaren/ConnectApp-Backend/models"
	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

var summaryProjection = bson.M{
	"_id":            1,
	"username":       1,
	"profileImage":   1,
	"followersCount": 1,
	"followingCount": 1,
	"bio":            1,
}

type UserStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

func NewUserStore(client *mongo.Client, dbName string) *UserStore {
	return &UserStore{
		client: client,
		users:  client.Database(dbName).Collection("user-collection"),
	}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	// Pre-check the identity fields so duplicates map to typed errors
	// instead of a raw index violation.
	if err := s.users.FindOne(ctx, bson.M{"email": user.Email}).Err(); err == nil {
		return store.ErrDuplicateEmail
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if err := s.users.FindOne(ctx, bson.M{"username": user.Username}).Err(); err == nil {
		return store.ErrDuplicateUsername
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if err := s.users.FindOne(ctx, bson.M{"phone": user.Phone}).Err(); err == nil {
		return store.ErrDuplicatePhone
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	return s.findSummaries(ctx, filter)
}

func (s *UserStore) FindByTag(ctx context.Context, tag string) ([]models.UserSummary, error) {
	return s.findSummaries(ctx, bson.M{"tags": tag})
}

func (s *UserStore) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	return s.findSummaries(ctx, bson.M{})
}

func (s *UserStore) findSummaries(ctx context.Context, filter bson.M) ([]models.UserSummary, error) {
	cursor, err := s.users.Find(ctx, filter, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) UpdateEmail(ctx context.Context, id primitive.ObjectID, newEmail string) error {
	if err := s.users.FindOne(ctx, bson.M{"email": newEmail}).Err(); err == nil {
		return store.ErrDuplicateEmail
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"email": newEmail}})
}

func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"password": passwordHash}})
}

func (s *UserStore) UpdateBioTags(ctx context.Context, id primitive.ObjectID, bio, tags string) (models.User, error) {
	set := bson.M{}
	if bio != "" {
		set["bio"] = bio
	}
	if tags != "" {
		set["tags"] = tags
	}
	if len(set) > 0 {
		if err := s.updateOne(ctx, id, bson.M{"$set": set}); err != nil {
			return models.User{}, err
		}
	}
	return s.FindByID(ctx, id)
}

func (s *UserStore) UpdateProfileImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"profileImage": imageURL}})
}

func (s *UserStore) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Follow appends the relation on both documents and bumps both counters.
// Both writes run inside one session transaction so a failure cannot leave
// the relation asymmetric. The membership condition on the actor filter
// makes the duplicate-follow check atomic with the write.
func (s *UserStore) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) (store.FollowCounts, error) {
	return s.inTransaction(ctx, func(sc mongo.SessionContext) (store.FollowCounts, error) {
		if err := s.users.FindOne(sc, bson.M{"_id": targetID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return store.FollowCounts{}, store.ErrNotFound
			}
			return store.FollowCounts{}, err
		}

		result, err := s.users.UpdateOne(sc,
			bson.M{"_id": actorID, "following": bson.M{"$ne": targetID}},
			bson.M{
				"$addToSet": bson.M{"following": targetID},
				"$inc":      bson.M{"followingCount": 1},
			})
		if err != nil {
			return store.FollowCounts{}, err
		}
		if result.MatchedCount == 0 {
			// The filter misses when the actor is gone, not only when
			// the relation already exists.
			if err := s.users.FindOne(sc, bson.M{"_id": actorID}).Err(); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return store.FollowCounts{}, store.ErrNotFound
				}
				return store.FollowCounts{}, err
			}
			return store.FollowCounts{}, store.ErrAlreadyFollowing
		}

		_, err = s.users.UpdateOne(sc,
			bson.M{"_id": targetID},
			bson.M{
				"$addToSet": bson.M{"followers": actorID},
				"$inc":      bson.M{"followersCount": 1},
			})
		if err != nil {
			return store.FollowCounts{}, err
		}

		return s.counts(sc, actorID, targetID)
	})
}

func (s *UserStore) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) (store.FollowCounts, error) {
	return s.inTransaction(ctx, func(sc mongo.SessionContext) (store.FollowCounts, error) {
		if err := s.users.FindOne(sc, bson.M{"_id": targetID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return store.FollowCounts{}, store.ErrNotFound
			}
			return store.FollowCounts{}, err
		}

		result, err := s.users.UpdateOne(sc,
			bson.M{"_id": actorID, "following": targetID},
			bson.M{
				"$pull": bson.M{"following": targetID},
				"$inc":  bson.M{"followingCount": -1},
			})
		if err != nil {
			return store.FollowCounts{}, err
		}
		if result.MatchedCount == 0 {
			if err := s.users.FindOne(sc, bson.M{"_id": actorID}).Err(); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return store.FollowCounts{}, store.ErrNotFound
				}
				return store.FollowCounts{}, err
			}
			return store.FollowCounts{}, store.ErrNotFollowing
		}

		_, err = s.users.UpdateOne(sc,
			bson.M{"_id": targetID, "followers": actorID},
			bson.M{
				"$pull": bson.M{"followers": actorID},
				"$inc":  bson.M{"followersCount": -1},
			})
		if err != nil {
			return store.FollowCounts{}, err
		}

		// The membership filters above keep the counters in step with the
		// sets, but clamp anyway in case of pre-existing drift.
		for _, field := range []string{"followingCount", "followersCount"} {
			_, err = s.users.UpdateMany(sc,
				bson.M{"_id": bson.M{"$in": []primitive.ObjectID{actorID, targetID}}, field: bson.M{"$lt": 0}},
				bson.M{"$set": bson.M{field: 0}})
			if err != nil {
				return store.FollowCounts{}, err
			}
		}

		return s.counts(sc, actorID, targetID)
	})
}

func (s *UserStore) inTransaction(ctx context.Context, fn func(mongo.SessionContext) (store.FollowCounts, error)) (store.FollowCounts, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return store.FollowCounts{}, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return fn(sc)
	})
	if err != nil {
		return store.FollowCounts{}, err
	}
	return result.(store.FollowCounts), nil
}

func (s *UserStore) counts(ctx context.Context, actorID, targetID primitive.ObjectID) (store.FollowCounts, error) {
	actor, err := s.findOne(ctx, bson.M{"_id": actorID})
	if err != nil {
		return store.FollowCounts{}, err
	}
	target, err := s.findOne(ctx, bson.M{"_id": targetID})
	if err != nil {
		return store.FollowCounts{}, err
	}
	return store.FollowCounts{
		FollowersCount: target.FollowersCount,
		FollowingCount: actor.FollowingCount,
	}, nil
}

func (s *UserStore) IncPostsCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// Decrements only apply while the counter is positive.
		filter["postsCount"] = bson.M{"$gt": 0}
	}
	result, err := s.users.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"postsCount": delta}})
	if err != nil {
		return err
	}
	if delta > 0 && result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
