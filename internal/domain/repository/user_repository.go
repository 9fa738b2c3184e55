package repository

import (
	"context"

	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios (auth).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
