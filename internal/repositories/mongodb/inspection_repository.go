package mongodb

import (
	"context"
	"fmt"
	"time"

	"vinspect/internal/models"
	"vinspect/internal/repositories/interfaces"
	"vinspect/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type inspectionRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewInspectionRepository(db *mongo.Database, cache CacheService) interfaces.InspectionRepository {
	return &inspectionRepository{
		collection: db.Collection("inspections"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *inspectionRepository) Create(ctx context.Context, inspection *models.Inspection) error {
	if inspection.ID.IsZero() {
		inspection.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, inspection)
	if err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}

	r.cacheInspection(ctx, inspection)

	return nil
}

func (r *inspectionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	// Try cache first
	if inspection := r.getInspectionFromCache(ctx, id.Hex()); inspection != nil {
		return inspection, nil
	}

	var inspection models.Inspection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inspection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("inspection not found")
		}
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}

	r.cacheInspection(ctx, &inspection)

	return &inspection, nil
}

func (r *inspectionRepository) Update(ctx context.Context, inspection *models.Inspection) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": inspection.ID}, inspection)
	if err != nil {
		return fmt.Errorf("failed to update inspection: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("inspection not found")
	}

	r.invalidateInspectionCache(ctx, inspection.ID.Hex())

	return nil
}

func (r *inspectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inspection: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("inspection not found")
	}

	r.invalidateInspectionCache(ctx, id.Hex())

	return nil
}

func (r *inspectionRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check inspection existence: %w", err)
	}
	return count > 0, nil
}

// Vehicle history
func (r *inspectionRepository) GetByLicensePlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	filter := bson.M{"license_plate": licensePlate}
	return r.findInspections(ctx, filter, params)
}

func (r *inspectionRepository) GetLatestCompletedByLicensePlate(ctx context.Context, licensePlate string) (*models.Inspection, error) {
	filter := bson.M{
		"license_plate": licensePlate,
		"status":        models.InspectionStatusCompleted,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var inspection models.Inspection
	err := r.collection.FindOne(ctx, filter, opts).Decode(&inspection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no completed inspection found for vehicle")
		}
		return nil, fmt.Errorf("failed to get latest inspection: %w", err)
	}

	return &inspection, nil
}

// Inspector workload
func (r *inspectionRepository) GetByInspector(ctx context.Context, inspectorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	filter := bson.M{"inspector_id": inspectorID}
	return r.findInspections(ctx, filter, params)
}

func (r *inspectionRepository) GetDraftsByInspector(ctx context.Context, inspectorID primitive.ObjectID) ([]*models.Inspection, error) {
	filter := bson.M{
		"inspector_id": inspectorID,
		"status":       models.InspectionStatusDraft,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft inspections: %w", err)
	}
	defer cursor.Close(ctx)

	var inspections []*models.Inspection
	for cursor.Next(ctx) {
		var inspection models.Inspection
		if err := cursor.Decode(&inspection); err != nil {
			return nil, fmt.Errorf("failed to decode inspection: %w", err)
		}
		inspections = append(inspections, &inspection)
	}

	return inspections, nil
}

// Listing
func (r *inspectionRepository) GetByStatus(ctx context.Context, status models.InspectionStatus, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	filter := bson.M{"status": status}
	return r.findInspections(ctx, filter, params)
}

func (r *inspectionRepository) GetRecentCompleted(ctx context.Context, limit int) ([]*models.Inspection, error) {
	filter := bson.M{"status": models.InspectionStatusCompleted}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed inspections: %w", err)
	}
	defer cursor.Close(ctx)

	var inspections []*models.Inspection
	for cursor.Next(ctx) {
		var inspection models.Inspection
		if err := cursor.Decode(&inspection); err != nil {
			return nil, fmt.Errorf("failed to decode inspection: %w", err)
		}
		inspections = append(inspections, &inspection)
	}

	return inspections, nil
}

// Statistics
func (r *inspectionRepository) CountByInspector(ctx context.Context, inspectorID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"inspector_id": inspectorID})
	if err != nil {
		return 0, fmt.Errorf("failed to count inspections by inspector: %w", err)
	}
	return count, nil
}

func (r *inspectionRepository) CountByLicensePlate(ctx context.Context, licensePlate string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"license_plate": licensePlate})
	if err != nil {
		return 0, fmt.Errorf("failed to count inspections by license plate: %w", err)
	}
	return count, nil
}

func (r *inspectionRepository) CountByStatus(ctx context.Context, status models.InspectionStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count inspections by status: %w", err)
	}
	return count, nil
}

// Helper methods
func (r *inspectionRepository) findInspections(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inspections: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find inspections: %w", err)
	}
	defer cursor.Close(ctx)

	var inspections []*models.Inspection
	for cursor.Next(ctx) {
		var inspection models.Inspection
		if err := cursor.Decode(&inspection); err != nil {
			return nil, 0, fmt.Errorf("failed to decode inspection: %w", err)
		}
		inspections = append(inspections, &inspection)
	}

	return inspections, total, nil
}

func (r *inspectionRepository) cacheInspection(ctx context.Context, inspection *models.Inspection) {
	// Drafts change often, only cache completed inspections
	if r.cache == nil || !inspection.IsCompleted() {
		return
	}
	key := utils.CacheInspectionPrefix + inspection.ID.Hex()
	r.cache.Set(ctx, key, inspection, 15*time.Minute)
}

func (r *inspectionRepository) getInspectionFromCache(ctx context.Context, id string) *models.Inspection {
	if r.cache == nil {
		return nil
	}
	var inspection models.Inspection
	if err := r.cache.Get(ctx, utils.CacheInspectionPrefix+id, &inspection); err != nil {
		return nil
	}
	return &inspection
}

func (r *inspectionRepository) invalidateInspectionCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheInspectionPrefix+id)
}
