package interfaces

import (
	"context"

	"vinspect/internal/models"
	"vinspect/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Lookups
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
}
