package http

import (
	"net/http"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

type sendMessageRequest struct {
	ReceiverID string  `json:"receiver_id"`
	BookingID  *string `json:"booking_id"`
	Content    string  `json:"content"`
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.messageSvc.SendMessage(r.Context(), userID, req.ReceiverID, req.BookingID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

type messageListResponse struct {
	Items []domain.Message `json:"items"`
}

// Conversation handles GET /api/v1/messages/with/{userId}
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	items, err := h.messageSvc.GetConversation(r.Context(), userID, mux.Vars(r)["userId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageListResponse{Items: items})
}

// BookingThread handles GET /api/v1/bookings/{id}/messages
func (h *MessageHandler) BookingThread(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	items, err := h.messageSvc.GetBookingThread(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageListResponse{Items: items})
}

// MarkRead handles POST /api/v1/messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.messageSvc.MarkRead(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
