package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindthevirt/binge-master-api/internal/storage/memstorage"
)

func TestAPIKeyService_GenerateKey(t *testing.T) {
	repo := memstorage.NewAPIKeyRepository()
	svc := NewAPIKeyService(repo, zap.NewNop())

	rawKey, err := svc.GenerateKey(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rawKey)

	valid, err := svc.IsValid(context.Background(), rawKey)
	require.NoError(t, err)
	assert.True(t, valid, "a freshly generated key must validate")

	// Only the digest may be persisted, never the raw token.
	for _, h := range repo.StoredHashes() {
		assert.NotEqual(t, rawKey, h)
		assert.NotContains(t, h, rawKey)
	}
}

func TestAPIKeyService_IsValid_UnknownKey(t *testing.T) {
	svc := NewAPIKeyService(memstorage.NewAPIKeyRepository(), zap.NewNop())

	valid, err := svc.IsValid(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, valid)
}
