package http

import (
	"net/http"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/service"
	"equipshare-backend/internal/utils"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	EquipmentID  string `json:"equipment_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	GuestMessage string `json:"guest_message"`
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), userID, req.EquipmentID, start, end, req.GuestMessage)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

// Get handles GET /api/v1/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	booking, err := h.bookingSvc.GetBooking(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// Confirm handles POST /api/v1/bookings/{id}/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	booking, err := h.bookingSvc.ConfirmBooking(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// Cancel handles POST /api/v1/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	booking, err := h.bookingSvc.CancelBooking(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type completeBookingRequest struct {
	HostNotes string `json:"host_notes"`
}

// Complete handles POST /api/v1/bookings/{id}/complete
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req completeBookingRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	booking, err := h.bookingSvc.CompleteBooking(r.Context(), userID, mux.Vars(r)["id"], req.HostNotes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Items []domain.BookingDetail `json:"items"`
}

// ListMine handles GET /api/v1/bookings (bookings made as guest)
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	items, err := h.bookingSvc.ListMyBookings(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookingListResponse{Items: items})
}

// ListRentals handles GET /api/v1/bookings/hosting (bookings received as host)
func (h *BookingHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	items, err := h.bookingSvc.ListMyRentals(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookingListResponse{Items: items})
}
