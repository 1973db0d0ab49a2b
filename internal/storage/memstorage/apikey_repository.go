package memstorage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindthevirt/binge-master-api/internal/domain/apikey"
)

type APIKeyRepository struct {
	mu   sync.RWMutex
	keys map[string]*apikey.APIKey
}

func NewAPIKeyRepository() *APIKeyRepository {
	return &APIKeyRepository{
		keys: make(map[string]*apikey.APIKey),
	}
}

var _ apikey.Repository = (*APIKeyRepository)(nil)

func (r *APIKeyRepository) Create(ctx context.Context, key *apikey.APIKey) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key.KeyHash]; ok {
		return uuid.Nil, apikey.ErrDuplicateHash
	}

	stored := *key
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.keys[stored.KeyHash] = &stored

	return stored.ID, nil
}

func (r *APIKeyRepository) ExistsByHash(ctx context.Context, keyHash string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.keys[keyHash]
	return ok, nil
}

// StoredHashes exposes the persisted digests so tests can assert the raw key
// never lands in storage.
func (r *APIKeyRepository) StoredHashes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hashes := make([]string, 0, len(r.keys))
	for h := range r.keys {
		hashes = append(hashes, h)
	}
	return hashes
}
