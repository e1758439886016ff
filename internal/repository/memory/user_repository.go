package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vlemaire/flashdeck/internal/models"
	"github.com/vlemaire/flashdeck/internal/repository"
)

type userRepository struct {
	mu      sync.RWMutex
	byName  map[string]models.User
	byID    map[string]string // user ID -> username
	inOrder []string          // usernames in registration order
}

// NewUserRepository creates an empty in-memory UserRepository.
// Usernames are unique case-insensitively.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byName: make(map[string]models.User),
		byID:   make(map[string]string),
	}
}

func (r *userRepository) Insert(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, exists := r.byName[key]; exists {
		return repository.ErrUsernameTaken
	}
	r.byName[key] = user
	r.byID[user.ID] = key
	r.inOrder = append(r.inOrder, key)
	return nil
}

func (r *userRepository) ByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byName[strings.ToLower(username)]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepository) ByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return r.byName[key], nil
}

func (r *userRepository) Snapshot(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.inOrder))
	for _, key := range r.inOrder {
		users = append(users, r.byName[key])
	}
	return users, nil
}

func (r *userRepository) ReplaceAll(_ context.Context, users []models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName = make(map[string]models.User, len(users))
	r.byID = make(map[string]string, len(users))
	r.inOrder = r.inOrder[:0]
	for _, user := range users {
		key := strings.ToLower(user.Username)
		if _, exists := r.byName[key]; exists {
			continue
		}
		r.byName[key] = user
		r.byID[user.ID] = key
		r.inOrder = append(r.inOrder, key)
	}
	return nil
}
