package memstorage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindthevirt/binge-master-api/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*user.User),
	}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.UniqueIdentifier]; ok {
		return uuid.Nil, user.ErrAlreadyRegistered
	}

	stored := *u
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.users[stored.UniqueIdentifier] = &stored

	return stored.ID, nil
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}
