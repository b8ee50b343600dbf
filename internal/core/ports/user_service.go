package ports

import (
	"context"

	"github.com/usercore/user-directory/internal/core/domain"
)

// UserService exposes directory operations to the transport layer.
type UserService interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CreateUser(ctx context.Context, data Document) (*domain.User, error)
}
