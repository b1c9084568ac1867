// Package memstore holds store implementations backed by process memory,
// for tests and lightweight local runs.
package memstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pawarnaren/ConnectApp-Backend/models"
	"github.com/Pawarnaren/ConnectApp-Backend/store"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *UserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		switch {
		case existing.Email == user.Email:
			return store.ErrDuplicateEmail
		case existing.Username == user.Username:
			return store.ErrDuplicateUsername
		case existing.Phone == user.Phone:
			return store.ErrDuplicatePhone
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *UserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := []models.UserSummary{}
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

func (s *UserStore) FindByTag(_ context.Context, tag string) ([]models.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := []models.UserSummary{}
	for _, user := range s.users {
		if user.Tags == tag {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

func (s *UserStore) ListSummaries(_ context.Context) ([]models.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := []models.UserSummary{}
	for _, user := range s.users {
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}

func (s *UserStore) UpdateEmail(_ context.Context, id primitive.ObjectID, newEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for otherID, other := range s.users {
		if otherID != id && other.Email == newEmail {
			return store.ErrDuplicateEmail
		}
	}
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Email = newEmail
	return nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

func (s *UserStore) UpdateBioTags(_ context.Context, id primitive.ObjectID, bio, tags string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	if bio != "" {
		user.Bio = bio
	}
	if tags != "" {
		user.Tags = tags
	}
	return cloneUser(user), nil
}

func (s *UserStore) UpdateProfileImage(_ context.Context, id primitive.ObjectID, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.ProfileImage = imageURL
	return nil
}

func (s *UserStore) Follow(_ context.Context, actorID, targetID primitive.ObjectID) (store.FollowCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.users[targetID]
	if !ok {
		return store.FollowCounts{}, store.ErrNotFound
	}
	actor, ok := s.users[actorID]
	if !ok {
		return store.FollowCounts{}, store.ErrNotFound
	}
	if containsID(actor.Following, targetID) {
		return store.FollowCounts{}, store.ErrAlreadyFollowing
	}

	actor.Following = append(actor.Following, targetID)
	actor.FollowingCount++
	target.Followers = append(target.Followers, actorID)
	target.FollowersCount++

	return store.FollowCounts{
		FollowersCount: target.FollowersCount,
		FollowingCount: actor.FollowingCount,
	}, nil
}

func (s *UserStore) Unfollow(_ context.Context, actorID, targetID primitive.ObjectID) (store.FollowCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.users[targetID]
	if !ok {
		return store.FollowCounts{}, store.ErrNotFound
	}
	actor, ok := s.users[actorID]
	if !ok {
		return store.FollowCounts{}, store.ErrNotFound
	}
	if !containsID(actor.Following, targetID) {
		return store.FollowCounts{}, store.ErrNotFollowing
	}

	actor.Following = removeID(actor.Following, targetID)
	if actor.FollowingCount > 0 {
		actor.FollowingCount--
	}
	target.Followers = removeID(target.Followers, actorID)
	if target.FollowersCount > 0 {
		target.FollowersCount--
	}

	return store.FollowCounts{
		FollowersCount: target.FollowersCount,
		FollowingCount: actor.FollowingCount,
	}, nil
}

func (s *UserStore) IncPostsCount(_ context.Context, id primitive.ObjectID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.PostsCount += delta
	if user.PostsCount < 0 {
		user.PostsCount = 0
	}
	return nil
}

func cloneUser(u *models.User) models.User {
	clone := *u
	clone.Followers = append([]primitive.ObjectID(nil), u.Followers...)
	clone.Following = append([]primitive.ObjectID(nil), u.Following...)
	return clone
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	kept := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}

type PostStore struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*models.Post
}

func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (s *PostStore) Insert(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *PostStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	return *post, nil
}

func (s *PostStore) Replace(_ context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return store.ErrNotFound
	}
	clone := post
	s.posts[post.ID] = &clone
	return nil
}

func (s *PostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *PostStore) SetArchived(_ context.Context, id primitive.ObjectID, archived bool) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	post.Archived = archived
	return *post, nil
}

func (s *PostStore) FindByOwner(_ context.Context, ownerID primitive.ObjectID, archived bool) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := []models.Post{}
	for _, post := range s.posts {
		if post.Owner == ownerID && post.Archived == archived {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

type ImageStore struct {
	mu     sync.RWMutex
	images map[string][]byte
}

func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string][]byte)}
}

func (s *ImageStore) Save(_ context.Context, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	id := primitive.NewObjectID().Hex()
	s.mu.Lock()
	s.images[id] = data
	s.mu.Unlock()
	return id, nil
}

func (s *ImageStore) Open(_ context.Context, id string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
