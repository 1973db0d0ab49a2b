package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindthevirt/binge-master-api/internal/domain/user"
	"go.uber.org/zap"
)

type UserService struct {
	repo   user.Repository
	logger *zap.Logger
}

func NewUserService(repo user.Repository, logger *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.Named("UserService"),
	}
}

func (s *UserService) Register(ctx context.Context, uniqueIdentifier, email string) error {
	s.logger.Info("Registering user", zap.String("unique_identifier", uniqueIdentifier))

	_, err := s.repo.Create(ctx, &user.User{
		UniqueIdentifier: uniqueIdentifier,
		Email:            email,
	})
	if err != nil {
		if errors.Is(err, user.ErrAlreadyRegistered) {
			s.logger.Warn("Identifier already registered", zap.String("unique_identifier", uniqueIdentifier))
			return err
		}
		s.logger.Error("Failed to register user", zap.Error(err))
		return fmt.Errorf("repository error registering user: %w", err)
	}

	return nil
}
