package interfaces

import (
	"context"

	"vinspect/internal/models"
	"vinspect/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectorRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, inspector *models.Inspector) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspector, error)
	Update(ctx context.Context, inspector *models.Inspector) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Authentication operations
	GetByEmail(ctx context.Context, email string) (*models.Inspector, error)
	GetByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Inspector, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspector, int64, error)
	GetByStatus(ctx context.Context, status models.InspectorStatus, params *utils.PaginationParams) ([]*models.Inspector, int64, error)

	// Statistics
	CountByStatus(ctx context.Context, status models.InspectorStatus) (int64, error)
}
