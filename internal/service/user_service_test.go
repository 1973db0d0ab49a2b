package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindthevirt/binge-master-api/internal/domain/user"
	"github.com/mindthevirt/binge-master-api/internal/storage/memstorage"
)

func TestUserService_Register(t *testing.T) {
	repo := memstorage.NewUserRepository()
	svc := NewUserService(repo, zap.NewNop())

	err := svc.Register(context.Background(), "u1", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Count())
}

func TestUserService_Register_DuplicateIdentifier(t *testing.T) {
	repo := memstorage.NewUserRepository()
	svc := NewUserService(repo, zap.NewNop())

	require.NoError(t, svc.Register(context.Background(), "u1", "a@b.com"))

	err := svc.Register(context.Background(), "u1", "other@b.com")
	require.ErrorIs(t, err, user.ErrAlreadyRegistered)

	assert.Equal(t, 1, repo.Count(), "rejected registration must leave the registry unchanged")
}
