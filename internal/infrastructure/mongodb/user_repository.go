package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/tu-usuario/tapiceria-pro/internal/domain"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collUsers = "users"

// MongoUserRepository persistencia de usuarios.
type MongoUserRepository struct {
	db *mongo.Database
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{db: db}
}

var _ repository.UserRepository = (*MongoUserRepository)(nil)

// FindByEmail busca un usuario por email; devuelve nil sin error si no existe.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo usuario %s: %w", email, err)
	}
	return &u, nil
}

// Create inserta un usuario nuevo.
func (r *MongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.db.Collection(collUsers).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("usuario %s: %w", user.Email, domain.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("creando usuario: %w", err)
	}
	return nil
}
