package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/usercore/user-directory/internal/core/domain"
	"github.com/usercore/user-directory/internal/core/ports"
)

// usersCollection is the collection every directory operation targets.
const usersCollection = "users"

// UserService is a thin facade over the storage gateway. It performs no
// validation of incoming records; malformed documents are handed to the
// gateway as-is.
type UserService struct {
	store ports.Store
	log   zerolog.Logger
}

func NewUserService(store ports.Store, log zerolog.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// GetUser looks up a user by id. Absence surfaces as domain.ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.FindOne(ctx, usersCollection, ports.Document{"id": userID})
}

// CreateUser persists a new user record and returns the stored
// representation.
func (s *UserService) CreateUser(ctx context.Context, data ports.Document) (*domain.User, error) {
	s.log.Info().Interface("data", data).Msg("creating user")
	return s.store.Insert(ctx, usersCollection, data)
}
