package interfaces

import (
	"context"

	"vinspect/internal/models"
	"vinspect/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, inspection *models.Inspection) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error)
	Update(ctx context.Context, inspection *models.Inspection) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Vehicle history
	GetByLicensePlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	GetLatestCompletedByLicensePlate(ctx context.Context, licensePlate string) (*models.Inspection, error)

	// Inspector workload
	GetByInspector(ctx context.Context, inspectorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	GetDraftsByInspector(ctx context.Context, inspectorID primitive.ObjectID) ([]*models.Inspection, error)

	// Listing
	GetByStatus(ctx context.Context, status models.InspectionStatus, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	GetRecentCompleted(ctx context.Context, limit int) ([]*models.Inspection, error)

	// Statistics
	CountByInspector(ctx context.Context, inspectorID primitive.ObjectID) (int64, error)
	CountByLicensePlate(ctx context.Context, licensePlate string) (int64, error)
	CountByStatus(ctx context.Context, status models.InspectionStatus) (int64, error)
}
