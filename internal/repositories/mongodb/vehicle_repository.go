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

type vehicleRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("vehicle with this license plate already exists")
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	r.cacheVehicle(ctx, vehicle)

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": vehicle.ID}, vehicle)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}

	r.invalidateVehicleCache(ctx, vehicle.LicensePlate)

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}

	r.invalidateVehicleCache(ctx, vehicle.LicensePlate)

	return nil
}

// Lookups
func (r *vehicleRepository) GetByLicensePlate(ctx context.Context, licensePlate string) (*models.Vehicle, error) {
	// Try cache first
	if vehicle := r.getVehicleFromCache(ctx, licensePlate); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"license_plate": licensePlate}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, fmt.Errorf("failed to get vehicle by license plate: %w", err)
	}

	r.cacheVehicle(ctx, &vehicle)

	return &vehicle, nil
}

func (r *vehicleRepository) ExistsByLicensePlate(ctx context.Context, licensePlate string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"license_plate": licensePlate})
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle existence: %w", err)
	}
	return count > 0, nil
}

func (r *vehicleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return r.findVehicles(ctx, bson.M{}, params)
}

func (r *vehicleRepository) GetByType(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return r.findVehicles(ctx, bson.M{"vehicle_type": vehicleType}, params)
}

// Helper methods
func (r *vehicleRepository) findVehicles(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, 0, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil {
		return
	}
	key := utils.CacheVehiclePrefix + vehicle.LicensePlate
	r.cache.Set(ctx, key, vehicle, 30*time.Minute)
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, licensePlate string) *models.Vehicle {
	if r.cache == nil {
		return nil
	}
	var vehicle models.Vehicle
	if err := r.cache.Get(ctx, utils.CacheVehiclePrefix+licensePlate, &vehicle); err != nil {
		return nil
	}
	return &vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, licensePlate string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheVehiclePrefix+licensePlate)
}
