package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone, avatar_url, is_host, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.AvatarURL, u.IsHost, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, first_name, last_name, COALESCE(phone, ''), COALESCE(avatar_url, ''), is_host, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.AvatarURL, &u.IsHost, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, first_name, last_name, COALESCE(phone, ''), COALESCE(avatar_url, ''), is_host, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.AvatarURL, &u.IsHost, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, first_name=$2, last_name=$3, phone=$4, avatar_url=$5, is_host=$6, updated_at=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.FirstName, u.LastName, u.Phone, u.AvatarURL, u.IsHost, time.Now(), u.ID)
	return err
}
