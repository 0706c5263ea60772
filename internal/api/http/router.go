package http

import (
	"net/http"

	"equipshare-backend/internal/security"
	"equipshare-backend/internal/service"
	"equipshare-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the router needs.
type Services struct {
	Auth         service.AuthService
	Equipment    service.EquipmentService
	Search       service.SearchService
	Availability service.AvailabilityService
	Booking      service.BookingService
	Message      service.MessageService
	Upload       service.UploadService
}

// NewRouter builds the full /api/v1 route table. mockStorage is nil when a
// real object store backs uploads.
func NewRouter(svcs Services, tokenMgr security.TokenManager, mockStorage storage.Backend) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware, loggingMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	equipmentHandler := NewEquipmentHandler(svcs.Equipment, svcs.Search)
	availabilityHandler := NewAvailabilityHandler(svcs.Availability)
	bookingHandler := NewBookingHandler(svcs.Booking)
	messageHandler := NewMessageHandler(svcs.Message)
	uploadHandler := NewUploadHandler(svcs.Upload)

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/equipment", equipmentHandler.Search).Methods(http.MethodGet)

	// Mock storage endpoints answer the presigned URLs the mock backend
	// hands out; they carry their own opaque token instead of a JWT.
	if mockStorage != nil {
		mockHandler := NewMockStorageHandler(mockStorage)
		api.HandleFunc("/uploads/{token}", mockHandler.HandleUpload).Methods(http.MethodPut)
		api.HandleFunc("/downloads/file", mockHandler.HandleDownload).Methods(http.MethodGet)
	}

	// Authenticated routes
	auth := api.NewRoute().Subrouter()
	auth.Use(authMiddleware(tokenMgr))

	auth.HandleFunc("/users/me", authHandler.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/users/me", authHandler.UpdateProfile).Methods(http.MethodPatch)

	auth.HandleFunc("/equipment", equipmentHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/equipment/mine", equipmentHandler.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/equipment/{id}", equipmentHandler.Update).Methods(http.MethodPut)
	auth.HandleFunc("/equipment/{id}", equipmentHandler.Deactivate).Methods(http.MethodDelete)
	auth.HandleFunc("/equipment/{id}/documents", equipmentHandler.AddDocument).Methods(http.MethodPost)
	auth.HandleFunc("/equipment/{id}/documents", equipmentHandler.ListDocuments).Methods(http.MethodGet)
	auth.HandleFunc("/equipment/{id}/availability", availabilityHandler.SetDay).Methods(http.MethodPut)
	auth.HandleFunc("/equipment/{id}/availability/range", availabilityHandler.SetRange).Methods(http.MethodPut)
	auth.HandleFunc("/equipment/{id}/images/presign", uploadHandler.PresignEquipmentImage).Methods(http.MethodPost)

	auth.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	auth.HandleFunc("/bookings", bookingHandler.ListMine).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/hosting", bookingHandler.ListRentals).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id}/confirm", bookingHandler.Confirm).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}/complete", bookingHandler.Complete).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}/messages", messageHandler.BookingThread).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id}/photos/presign", uploadHandler.PresignTripPhoto).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}/photos", uploadHandler.ListTripPhotos).Methods(http.MethodGet)
	auth.HandleFunc("/trip-photos/{id}/confirm", uploadHandler.ConfirmTripPhoto).Methods(http.MethodPost)

	auth.HandleFunc("/messages", messageHandler.Send).Methods(http.MethodPost)
	auth.HandleFunc("/messages/with/{userId}", messageHandler.Conversation).Methods(http.MethodGet)
	auth.HandleFunc("/messages/{id}/read", messageHandler.MarkRead).Methods(http.MethodPost)

	auth.HandleFunc("/files/url", uploadHandler.DownloadURL).Methods(http.MethodGet)

	// Public read endpoints with an id segment. Registered after the
	// authenticated subrouter so /equipment/mine matches before {id}.
	api.HandleFunc("/equipment/{id}", equipmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/availability", availabilityHandler.GetCalendar).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/availability/check", availabilityHandler.CheckRange).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/quote", availabilityHandler.Quote).Methods(http.MethodGet)

	return r
}
