package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"vinspect/internal/models"
	"vinspect/internal/repositories/interfaces"
	"vinspect/internal/utils"
	"vinspect/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  "error",
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

// fakeInspectionRepo is an in-memory InspectionRepository.
type fakeInspectionRepo struct {
	mu          sync.Mutex
	inspections map[primitive.ObjectID]*models.Inspection
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{inspections: make(map[primitive.ObjectID]*models.Inspection)}
}

func (r *fakeInspectionRepo) Create(ctx context.Context, inspection *models.Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inspection.ID.IsZero() {
		inspection.ID = primitive.NewObjectID()
	}
	stored := *inspection
	r.inspections[inspection.ID] = &stored
	return nil
}

func (r *fakeInspectionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inspection, ok := r.inspections[id]
	if !ok {
		return nil, fmt.Errorf("inspection not found")
	}
	copied := *inspection
	return &copied, nil
}

func (r *fakeInspectionRepo) Update(ctx context.Context, inspection *models.Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inspections[inspection.ID]; !ok {
		return fmt.Errorf("inspection not found")
	}
	stored := *inspection
	r.inspections[inspection.ID] = &stored
	return nil
}

func (r *fakeInspectionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inspections[id]; !ok {
		return fmt.Errorf("inspection not found")
	}
	delete(r.inspections, id)
	return nil
}

func (r *fakeInspectionRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.inspections[id]
	return ok, nil
}

func (r *fakeInspectionRepo) all() []*models.Inspection {
	inspections := make([]*models.Inspection, 0, len(r.inspections))
	for _, inspection := range r.inspections {
		copied := *inspection
		inspections = append(inspections, &copied)
	}
	sort.Slice(inspections, func(a, b int) bool {
		return inspections[a].CreatedAt.After(inspections[b].CreatedAt)
	})
	return inspections
}

func (r *fakeInspectionRepo) GetByLicensePlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Inspection
	for _, inspection := range r.all() {
		if inspection.LicensePlate == licensePlate {
			matches = append(matches, inspection)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeInspectionRepo) GetLatestCompletedByLicensePlate(ctx context.Context, licensePlate string) (*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inspection := range r.all() {
		if inspection.LicensePlate == licensePlate && inspection.IsCompleted() {
			return inspection, nil
		}
	}
	return nil, fmt.Errorf("no completed inspection found for vehicle")
}

func (r *fakeInspectionRepo) GetByInspector(ctx context.Context, inspectorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Inspection
	for _, inspection := range r.all() {
		if inspection.InspectorID == inspectorID {
			matches = append(matches, inspection)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeInspectionRepo) GetDraftsByInspector(ctx context.Context, inspectorID primitive.ObjectID) ([]*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var drafts []*models.Inspection
	for _, inspection := range r.all() {
		if inspection.InspectorID == inspectorID && inspection.IsEditable() {
			drafts = append(drafts, inspection)
		}
	}
	return drafts, nil
}

func (r *fakeInspectionRepo) GetByStatus(ctx context.Context, status models.InspectionStatus, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Inspection
	for _, inspection := range r.all() {
		if inspection.Status == status {
			matches = append(matches, inspection)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeInspectionRepo) GetRecentCompleted(ctx context.Context, limit int) ([]*models.Inspection, error) {
	completed, _, err := r.GetByStatus(ctx, models.InspectionStatusCompleted, nil)
	if err != nil {
		return nil, err
	}
	if len(completed) > limit {
		completed = completed[:limit]
	}
	return completed, nil
}

func (r *fakeInspectionRepo) CountByInspector(ctx context.Context, inspectorID primitive.ObjectID) (int64, error) {
	_, total, err := r.GetByInspector(ctx, inspectorID, nil)
	return total, err
}

func (r *fakeInspectionRepo) CountByLicensePlate(ctx context.Context, licensePlate string) (int64, error) {
	_, total, err := r.GetByLicensePlate(ctx, licensePlate, nil)
	return total, err
}

func (r *fakeInspectionRepo) CountByStatus(ctx context.Context, status models.InspectionStatus) (int64, error) {
	_, total, err := r.GetByStatus(ctx, status, nil)
	return total, err
}

// fakeInspectorRepo is an in-memory InspectorRepository.
type fakeInspectorRepo struct {
	mu         sync.Mutex
	inspectors map[primitive.ObjectID]*models.Inspector
}

func newFakeInspectorRepo() *fakeInspectorRepo {
	return &fakeInspectorRepo{inspectors: make(map[primitive.ObjectID]*models.Inspector)}
}

func (r *fakeInspectorRepo) Create(ctx context.Context, inspector *models.Inspector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.inspectors {
		if existing.Email == inspector.Email || existing.LicenseNumber == inspector.LicenseNumber {
			return fmt.Errorf("inspector with this email or license number already exists")
		}
	}
	if inspector.ID.IsZero() {
		inspector.ID = primitive.NewObjectID()
	}
	stored := *inspector
	r.inspectors[inspector.ID] = &stored
	return nil
}

func (r *fakeInspectorRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inspector, ok := r.inspectors[id]
	if !ok {
		return nil, fmt.Errorf("inspector not found")
	}
	copied := *inspector
	return &copied, nil
}

func (r *fakeInspectorRepo) Update(ctx context.Context, inspector *models.Inspector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inspectors[inspector.ID]; !ok {
		return fmt.Errorf("inspector not found")
	}
	stored := *inspector
	r.inspectors[inspector.ID] = &stored
	return nil
}

func (r *fakeInspectorRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inspectors, id)
	return nil
}

func (r *fakeInspectorRepo) GetByEmail(ctx context.Context, email string) (*models.Inspector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inspector := range r.inspectors {
		if inspector.Email == email {
			copied := *inspector
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("inspector not found with email")
}

func (r *fakeInspectorRepo) GetByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Inspector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inspector := range r.inspectors {
		if inspector.LicenseNumber == licenseNumber {
			copied := *inspector
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("inspector not found with license number")
}

func (r *fakeInspectorRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inspector, ok := r.inspectors[id]
	if !ok {
		return fmt.Errorf("inspector not found")
	}
	inspector.PasswordHash = passwordHash
	return nil
}

func (r *fakeInspectorRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspector, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inspectors := make([]*models.Inspector, 0, len(r.inspectors))
	for _, inspector := range r.inspectors {
		copied := *inspector
		inspectors = append(inspectors, &copied)
	}
	return inspectors, int64(len(inspectors)), nil
}

func (r *fakeInspectorRepo) GetByStatus(ctx context.Context, status models.InspectorStatus, params *utils.PaginationParams) ([]*models.Inspector, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Inspector
	for _, inspector := range r.inspectors {
		if inspector.Status == status {
			copied := *inspector
			matches = append(matches, &copied)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeInspectorRepo) CountByStatus(ctx context.Context, status models.InspectorStatus) (int64, error) {
	_, total, err := r.GetByStatus(ctx, status, nil)
	return total, err
}

// fakeVehicleRepo is an in-memory VehicleRepository keyed by license plate.
type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[vehicle.LicensePlate]; ok {
		return fmt.Errorf("vehicle with this license plate already exists")
	}
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	stored := *vehicle
	r.vehicles[vehicle.LicensePlate] = &stored
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vehicle := range r.vehicles {
		if vehicle.ID == id {
			copied := *vehicle
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("vehicle not found")
}

func (r *fakeVehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[vehicle.LicensePlate]; !ok {
		return fmt.Errorf("vehicle not found")
	}
	stored := *vehicle
	r.vehicles[vehicle.LicensePlate] = &stored
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for plate, vehicle := range r.vehicles {
		if vehicle.ID == id {
			delete(r.vehicles, plate)
			return nil
		}
	}
	return fmt.Errorf("vehicle not found")
}

func (r *fakeVehicleRepo) GetByLicensePlate(ctx context.Context, licensePlate string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[licensePlate]
	if !ok {
		return nil, fmt.Errorf("vehicle not found")
	}
	copied := *vehicle
	return &copied, nil
}

func (r *fakeVehicleRepo) ExistsByLicensePlate(ctx context.Context, licensePlate string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.vehicles[licensePlate]
	return ok, nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicles := make([]*models.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		copied := *vehicle
		vehicles = append(vehicles, &copied)
	}
	return vehicles, int64(len(vehicles)), nil
}

func (r *fakeVehicleRepo) GetByType(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.VehicleType == vehicleType {
			copied := *vehicle
			matches = append(matches, &copied)
		}
	}
	return matches, int64(len(matches)), nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found with email")
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, int64(len(users)), nil
}

// fakeBookingRepo is an in-memory BookingRepository that mirrors the partial
// unique index: a second active booking on the same slot seat fails.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *fakeBookingRepo) activeAtSlot(slotStart time.Time) int {
	count := 0
	for _, booking := range r.bookings {
		if booking.AppointmentDate.Equal(slotStart) && booking.IsEditable() {
			count++
		}
	}
	return count
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.IsEditable() && existing.AppointmentDate.Equal(booking.AppointmentDate) && existing.SlotSeat == booking.SlotSeat {
			return interfaces.ErrSlotTaken
		}
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking not found")
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking not found")
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) GetByLicensePlate(ctx context.Context, licensePlate string, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Booking
	for _, booking := range r.bookings {
		if booking.LicensePlate == licensePlate {
			copied := *booking
			matches = append(matches, &copied)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			copied := *booking
			matches = append(matches, &copied)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeBookingRepo) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*models.Booking
	for _, booking := range r.bookings {
		if booking.Status == status {
			copied := *booking
			matches = append(matches, &copied)
		}
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeBookingRepo) CountActiveAtSlot(ctx context.Context, slotStart time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.activeAtSlot(slotStart)), nil
}

func (r *fakeBookingRepo) GetActiveForDate(ctx context.Context, date time.Time) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var matches []*models.Booking
	for _, booking := range r.bookings {
		if booking.IsEditable() && !booking.AppointmentDate.Before(dayStart) && booking.AppointmentDate.Before(dayEnd) {
			copied := *booking
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (r *fakeBookingRepo) HasActiveBookingForPlate(ctx context.Context, licensePlate string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.bookings {
		if booking.LicensePlate == licensePlate && booking.IsEditable() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	_, total, err := r.GetByStatus(ctx, status, nil)
	return total, err
}

// failingCreateBookingRepo forces Create to fail with a chosen error.
type failingCreateBookingRepo struct {
	*fakeBookingRepo
	createErr error
}

func (r *failingCreateBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	return r.createErr
}

// fakeCache is an in-memory CacheService without expiry handling.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]interface{}
	counts map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string]interface{}),
		counts: make(map[string]int64),
	}
}

// Get always misses; nothing in the services reads values back through it.
func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	return fmt.Errorf("cache miss")
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.values, key)
		delete(c.counts, key)
	}
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return true, nil
	}
	_, ok := c.counts[key]
	return ok, nil
}

func (c *fakeCache) Increment(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *fakeCache) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (c *fakeCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}
