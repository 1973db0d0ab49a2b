package service

import (
	"context"
	"fmt"

	"github.com/mindthevirt/binge-master-api/internal/domain/apikey"
	"github.com/mindthevirt/binge-master-api/internal/util"
	"go.uber.org/zap"
)

type APIKeyService struct {
	repo   apikey.Repository
	logger *zap.Logger
}

func NewAPIKeyService(repo apikey.Repository, logger *zap.Logger) *APIKeyService {
	return &APIKeyService{
		repo:   repo,
		logger: logger.Named("APIKeyService"),
	}
}

// GenerateKey mints a new bearer token and persists its digest. The raw token
// is returned exactly once and is not retrievable afterwards. A digest
// collision is a generation failure; the caller may retry the whole call.
func (s *APIKeyService) GenerateKey(ctx context.Context) (string, error) {
	rawKey, keyHash, err := util.GenerateAPIKey()
	if err != nil {
		s.logger.Error("Failed to generate api key material", zap.Error(err))
		return "", fmt.Errorf("failed generating key: %w", err)
	}

	insertedID, err := s.repo.Create(ctx, &apikey.APIKey{KeyHash: keyHash})
	if err != nil {
		s.logger.Error("Failed to save new api key", zap.Error(err))
		return "", fmt.Errorf("repository error creating api key: %w", err)
	}

	s.logger.Info("API key created successfully", zap.String("id", insertedID.String()))
	return rawKey, nil
}

// IsValid reports whether a raw key's digest is present in the store.
func (s *APIKeyService) IsValid(ctx context.Context, rawKey string) (bool, error) {
	return s.repo.ExistsByHash(ctx, util.HashAPIKey(rawKey))
}
