package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (booking_id, sender_id, receiver_id, content, is_read, created_at)
	          VALUES ($1, $2, $3, $4, false, $5) RETURNING id`
	m.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, m.BookingID, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt).Scan(&m.ID)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	m := &domain.Message{}
	query := `SELECT id, booking_id, sender_id, receiver_id, content, is_read, created_at FROM messages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.BookingID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

const messageWithSenderColumns = `m.id, m.booking_id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
	       u.id, u.first_name, u.last_name, COALESCE(u.avatar_url, '')`

func (r *messageRepository) ListConversation(ctx context.Context, userID, peerID string) ([]domain.Message, error) {
	query := `SELECT ` + messageWithSenderColumns + `
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE (m.sender_id = $1 AND m.receiver_id = $2) OR (m.sender_id = $2 AND m.receiver_id = $1)
	ORDER BY m.created_at`
	return r.queryMessages(ctx, query, userID, peerID)
}

func (r *messageRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Message, error) {
	query := `SELECT ` + messageWithSenderColumns + `
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE m.booking_id = $1
	ORDER BY m.created_at`
	return r.queryMessages(ctx, query, bookingID)
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, args ...interface{}) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		sender := &domain.UserSummary{}
		if err := rows.Scan(&m.ID, &m.BookingID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt,
			&sender.ID, &sender.FirstName, &sender.LastName, &sender.AvatarURL); err != nil {
			return nil, err
		}
		m.Sender = sender
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// MarkRead only succeeds for the message's receiver.
func (r *messageRepository) MarkRead(ctx context.Context, id, receiverID string) error {
	query := `UPDATE messages SET is_read = true WHERE id = $1 AND receiver_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, receiverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
