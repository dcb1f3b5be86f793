package interfaces

import (
	"context"

	"vinspect/internal/models"
	"vinspect/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Lookups
	GetByLicensePlate(ctx context.Context, licensePlate string) (*models.Vehicle, error)
	ExistsByLicensePlate(ctx context.Context, licensePlate string) (bool, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	GetByType(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
}
