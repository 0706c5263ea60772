package postgres

import (
	"database/sql"

	"equipshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.AvailabilityRepository
	repository.BookingRepository
	repository.MessageRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		EquipmentRepository:    NewEquipmentRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		BookingRepository:      NewBookingRepository(db),
		MessageRepository:      NewMessageRepository(db),
	}
}
