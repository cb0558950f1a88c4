package repositories

import (
	"context"
	"sync"
	"time"

	"building/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// It enforces email uniqueness the same way the SQL unique index does.
type MemoryUserRepository struct {
	users map[string]models.User
	order []string
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// GetAll returns all users in insertion order, without password hashes.
func (r *MemoryUserRepository) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		u := copyUser(r.users[id])
		u.Password = ""
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByID returns a user by their ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := copyUser(user)
	return &u, nil
}

// GetByIDs returns the users whose IDs are listed. Unknown IDs are skipped.
func (r *MemoryUserRepository) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var userList []models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			u := copyUser(user)
			u.Password = ""
			userList = append(userList, u)
		}
	}
	return userList, nil
}

// GetByEmail returns the user whose email matches under EmailKey folding.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := models.EmailKey(email)
	for _, user := range r.users {
		if user.EmailKey == key {
			u := copyUser(user)
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.EmailKey = models.EmailKey(user.Email)
	if r.emailTaken(user.EmailKey, "") {
		return ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = copyUser(*user)
	r.order = append(r.order, user.ID)
	return nil
}

// Update replaces an existing user.
func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	user.EmailKey = models.EmailKey(user.Email)
	if r.emailTaken(user.EmailKey, user.ID) {
		return ErrDuplicateEmail
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = copyUser(*user)
	return nil
}

// Delete removes a user by their ID.
func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	r.order = removeID(r.order, id)
	return nil
}

// emailTaken must be called with r.mu held.
func (r *MemoryUserRepository) emailTaken(key, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && u.EmailKey == key {
			return true
		}
	}
	return false
}

func copyUser(u models.User) models.User {
	u.Roles = append([]string(nil), u.Roles...)
	return u
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
