package service

import (
	"context"
	"strings"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
)

const maxMessageLength = 5000

type messageService struct {
	messageRepo repository.MessageRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

func (s *messageService) SendMessage(ctx context.Context, senderID, receiverID string, bookingID *string, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "is required")
	}
	if len(content) > maxMessageLength {
		return nil, domain.NewValidationError("content", "too long")
	}
	if senderID == receiverID {
		return nil, domain.NewValidationError("receiver_id", "cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	// A booking-anchored message must come from one of its two parties and
	// go to the other.
	if bookingID != nil {
		b, err := s.bookingRepo.GetByID(ctx, *bookingID)
		if err != nil {
			return nil, err
		}
		participants := map[string]bool{b.GuestID: true, b.HostID: true}
		if !participants[senderID] || !participants[receiverID] {
			return nil, domain.ErrNotAuthorized
		}
	}

	msg := &domain.Message{
		BookingID:  bookingID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) GetConversation(ctx context.Context, userID, peerID string) ([]domain.Message, error) {
	return s.messageRepo.ListConversation(ctx, userID, peerID)
}

func (s *messageService) GetBookingThread(ctx context.Context, userID, bookingID string) ([]domain.Message, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != userID && b.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}
	return s.messageRepo.ListByBooking(ctx, bookingID)
}

// MarkRead flips the read flag; the repository gates on the receiver so a
// sender cannot mark their own message.
func (s *messageService) MarkRead(ctx context.Context, userID, messageID string) error {
	return s.messageRepo.MarkRead(ctx, messageID, userID)
}
