package http

import (
	"io"
	"net/http"
	"path/filepath"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/service"
	"equipshare-backend/internal/storage"

	"github.com/gorilla/mux"
)

type UploadHandler struct {
	uploadSvc service.UploadService
}

func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

type presignImageRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// PresignEquipmentImage handles POST /api/v1/equipment/{id}/images/presign
func (h *UploadHandler) PresignEquipmentImage(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req presignImageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	presigned, err := h.uploadSvc.PresignEquipmentImage(r.Context(), userID, mux.Vars(r)["id"], req.Filename, req.ContentType)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, presigned)
}

type presignTripPhotoRequest struct {
	PhotoType   string `json:"photo_type"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type presignTripPhotoResponse struct {
	Photo  *domain.TripPhoto        `json:"photo"`
	Upload *service.PresignedUpload `json:"upload"`
}

// PresignTripPhoto handles POST /api/v1/bookings/{id}/photos/presign
func (h *UploadHandler) PresignTripPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req presignTripPhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	photo, presigned, err := h.uploadSvc.PresignTripPhoto(
		r.Context(), userID, mux.Vars(r)["id"], domain.TripPhotoType(req.PhotoType), req.Filename, req.ContentType)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, presignTripPhotoResponse{Photo: photo, Upload: presigned})
}

// ConfirmTripPhoto handles POST /api/v1/trip-photos/{id}/confirm
func (h *UploadHandler) ConfirmTripPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.uploadSvc.ConfirmTripPhoto(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type tripPhotoListResponse struct {
	Items []domain.TripPhoto `json:"items"`
}

// ListTripPhotos handles GET /api/v1/bookings/{id}/photos
func (h *UploadHandler) ListTripPhotos(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	items, err := h.uploadSvc.ListTripPhotos(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tripPhotoListResponse{Items: items})
}

type downloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}

// DownloadURL handles GET /api/v1/files/url?key=...
func (h *UploadHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key parameter")
		return
	}

	url, err := h.uploadSvc.DownloadURL(r.Context(), key)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, downloadURLResponse{DownloadURL: url})
}

// MockStorageHandler serves the endpoints the mock backend's presigned URLs
// point at. A real bucket would receive these requests instead.
type MockStorageHandler struct {
	backend storage.Backend
}

func NewMockStorageHandler(backend storage.Backend) *MockStorageHandler {
	return &MockStorageHandler{backend: backend}
}

// HandleUpload handles PUT /api/v1/uploads/{token}
func (h *MockStorageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key parameter")
		return
	}

	if err := h.backend.SaveFile(key, r.Body); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save file")
		return
	}

	// Mimic an S3 PUT response.
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload handles GET /api/v1/downloads/file
func (h *MockStorageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key parameter")
		return
	}

	file, err := h.backend.ReadFile(key)
	if err != nil {
		respondError(w, http.StatusNotFound, "file not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
