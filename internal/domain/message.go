package domain

import "time"

// Message is one item in a conversation between two users, optionally
// anchored to a booking.
type Message struct {
	ID         string       `json:"id"`
	BookingID  *string      `json:"booking_id,omitempty"`
	SenderID   string       `json:"sender_id"`
	ReceiverID string       `json:"receiver_id"`
	Content    string       `json:"content"`
	IsRead     bool         `json:"is_read"`
	CreatedAt  time.Time    `json:"created_at"`
	Sender     *UserSummary `json:"sender,omitempty"`
}
