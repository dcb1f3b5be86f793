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
)

type inspectorRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewInspectorRepository(db *mongo.Database, cache CacheService) interfaces.InspectorRepository {
	return &inspectorRepository{
		collection: db.Collection("inspectors"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *inspectorRepository) Create(ctx context.Context, inspector *models.Inspector) error {
	if inspector.ID.IsZero() {
		inspector.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, inspector)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("inspector with this email or license number already exists")
		}
		return fmt.Errorf("failed to create inspector: %w", err)
	}

	r.cacheInspector(ctx, inspector)

	return nil
}

func (r *inspectorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspector, error) {
	// Try cache first
	if inspector := r.getInspectorFromCache(ctx, id.Hex()); inspector != nil {
		return inspector, nil
	}

	var inspector models.Inspector
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inspector)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("inspector not found")
		}
		return nil, fmt.Errorf("failed to get inspector: %w", err)
	}

	r.cacheInspector(ctx, &inspector)

	return &inspector, nil
}

func (r *inspectorRepository) Update(ctx context.Context, inspector *models.Inspector) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": inspector.ID}, inspector)
	if err != nil {
		return fmt.Errorf("failed to update inspector: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("inspector not found")
	}

	r.invalidateInspectorCache(ctx, inspector.ID.Hex())

	return nil
}

func (r *inspectorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inspector: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("inspector not found")
	}

	r.invalidateInspectorCache(ctx, id.Hex())

	return nil
}

// Authentication operations
func (r *inspectorRepository) GetByEmail(ctx context.Context, email string) (*models.Inspector, error) {
	var inspector models.Inspector
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&inspector)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("inspector not found with email")
		}
		return nil, fmt.Errorf("failed to get inspector by email: %w", err)
	}

	return &inspector, nil
}

func (r *inspectorRepository) GetByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Inspector, error) {
	var inspector models.Inspector
	err := r.collection.FindOne(ctx, bson.M{"license_number": licenseNumber}).Decode(&inspector)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("inspector not found with license number")
		}
		return nil, fmt.Errorf("failed to get inspector by license number: %w", err)
	}

	return &inspector, nil
}

func (r *inspectorRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update inspector password: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("inspector not found")
	}

	r.invalidateInspectorCache(ctx, id.Hex())

	return nil
}

// Listing
func (r *inspectorRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspector, int64, error) {
	return r.findInspectors(ctx, bson.M{}, params)
}

func (r *inspectorRepository) GetByStatus(ctx context.Context, status models.InspectorStatus, params *utils.PaginationParams) ([]*models.Inspector, int64, error) {
	return r.findInspectors(ctx, bson.M{"status": status}, params)
}

// Statistics
func (r *inspectorRepository) CountByStatus(ctx context.Context, status models.InspectorStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count inspectors by status: %w", err)
	}
	return count, nil
}

// Helper methods
func (r *inspectorRepository) findInspectors(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Inspector, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inspectors: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find inspectors: %w", err)
	}
	defer cursor.Close(ctx)

	var inspectors []*models.Inspector
	for cursor.Next(ctx) {
		var inspector models.Inspector
		if err := cursor.Decode(&inspector); err != nil {
			return nil, 0, fmt.Errorf("failed to decode inspector: %w", err)
		}
		inspectors = append(inspectors, &inspector)
	}

	return inspectors, total, nil
}

func (r *inspectorRepository) cacheInspector(ctx context.Context, inspector *models.Inspector) {
	if r.cache == nil {
		return
	}
	key := utils.CacheInspectorPrefix + inspector.ID.Hex()
	r.cache.Set(ctx, key, inspector, 15*time.Minute)
}

func (r *inspectorRepository) getInspectorFromCache(ctx context.Context, id string) *models.Inspector {
	if r.cache == nil {
		return nil
	}
	var inspector models.Inspector
	if err := r.cache.Get(ctx, utils.CacheInspectorPrefix+id, &inspector); err != nil {
		return nil
	}
	return &inspector
}

func (r *inspectorRepository) invalidateInspectorCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheInspectorPrefix+id)
}
