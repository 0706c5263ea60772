package service

import (
	"context"
	"io"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
	"equipshare-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListByHost(ctx context.Context, hostID string, limit, offset int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, hostID, limit, offset)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) Search(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) AddDocument(ctx context.Context, doc *domain.EquipmentDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListDocuments(ctx context.Context, equipmentID string) ([]domain.EquipmentDocument, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.EquipmentDocument), args.Error(1)
}

// MockAvailabilityRepo
type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) Upsert(ctx context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityDay), args.Error(1)
}
func (m *MockAvailabilityRepo) SeedDays(ctx context.Context, equipmentID string, from time.Time, days int) error {
	args := m.Called(ctx, equipmentID, from, days)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) UnblockRange(ctx context.Context, equipmentID string, start, end time.Time) error {
	args := m.Called(ctx, equipmentID, start, end)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) ListRange(ctx context.Context, equipmentID string, start, end time.Time) ([]domain.AvailabilityDay, error) {
	args := m.Called(ctx, equipmentID, start, end)
	return args.Get(0).([]domain.AvailabilityDay), args.Error(1)
}
func (m *MockAvailabilityRepo) CountBlocked(ctx context.Context, equipmentID string, start, end time.Time) (int32, error) {
	args := m.Called(ctx, equipmentID, start, end)
	return args.Get(0).(int32), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByGuest(ctx context.Context, guestID string, status string) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, guestID, status)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID string, status string) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, hostID, status)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) CreateTripPhoto(ctx context.Context, photo *domain.TripPhoto) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}
func (m *MockBookingRepo) GetTripPhoto(ctx context.Context, id string) (*domain.TripPhoto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPhoto), args.Error(1)
}
func (m *MockBookingRepo) ConfirmTripPhoto(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingRepo) ListTripPhotos(ctx context.Context, bookingID string) ([]domain.TripPhoto, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.TripPhoto), args.Error(1)
}
func (m *MockBookingRepo) DeleteExpiredPendingPhotos(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockMessageRepo) ListConversation(ctx context.Context, userID, peerID string) ([]domain.Message, error) {
	args := m.Called(ctx, userID, peerID)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.Message, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) MarkRead(ctx context.Context, id, receiverID string) error {
	args := m.Called(ctx, id, receiverID)
	return args.Error(0)
}

// MockStorageBackend
type MockStorageBackend struct {
	mock.Mock
}

func (m *MockStorageBackend) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorageBackend) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorageBackend) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorageBackend) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorageBackend) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockStorageBackend) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
