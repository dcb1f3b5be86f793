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

type bookingRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBookingRepository(db *mongo.Database, cache CacheService) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		// The partial unique index on {appointment_date, slot_seat} rejects
		// a second active booking for the same seat.
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.cacheBooking(ctx, booking)

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	// Try cache first
	if booking := r.getBookingFromCache(ctx, id.Hex()); booking != nil {
		return booking, nil
	}

	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	r.cacheBooking(ctx, &booking)

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking not found")
	}

	r.invalidateBookingCache(ctx, booking.ID.Hex())

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking not found")
	}

	r.invalidateBookingCache(ctx, id.Hex())

	return nil
}

// Lookups
func (r *bookingRepository) GetByLicensePlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{"license_plate": licensePlate}
	return r.findBookings(ctx, filter, params)
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{"user_id": userID}
	return r.findBookings(ctx, filter, params)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{"status": status}
	return r.findBookings(ctx, filter, params)
}

// Slot occupancy
func (r *bookingRepository) CountActiveAtSlot(ctx context.Context, slotStart time.Time) (int64, error) {
	filter := bson.M{
		"appointment_date": slotStart,
		"status":           bson.M{"$in": models.ActiveBookingStatuses()},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for slot: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) GetActiveForDate(ctx context.Context, date time.Time) ([]*models.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"appointment_date": bson.M{"$gte": dayStart, "$lt": dayEnd},
		"status":           bson.M{"$in": models.ActiveBookingStatuses()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "appointment_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings for date: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) HasActiveBookingForPlate(ctx context.Context, licensePlate string) (bool, error) {
	filter := bson.M{
		"license_plate": licensePlate,
		"status":        bson.M{"$in": models.ActiveBookingStatuses()},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check active booking for plate: %w", err)
	}
	return count > 0, nil
}

// Statistics
func (r *bookingRepository) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	return count, nil
}

// Helper methods
func (r *bookingRepository) findBookings(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, total, nil
}

// Cache operations. Bookings move through their lifecycle quickly, so the TTL
// is short and every write path invalidates.
func (r *bookingRepository) cacheBooking(ctx context.Context, booking *models.Booking) {
	if r.cache == nil {
		return
	}
	key := utils.CacheBookingPrefix + booking.ID.Hex()
	r.cache.Set(ctx, key, booking, 5*time.Minute)
}

func (r *bookingRepository) getBookingFromCache(ctx context.Context, id string) *models.Booking {
	if r.cache == nil {
		return nil
	}
	var booking models.Booking
	if err := r.cache.Get(ctx, utils.CacheBookingPrefix+id, &booking); err != nil {
		return nil
	}
	return &booking
}

func (r *bookingRepository) invalidateBookingCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheBookingPrefix+id)
}
