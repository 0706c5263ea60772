package http

import (
	"net/http"
	"strconv"
	"strings"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
	searchSvc    service.SearchService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService, searchSvc service.SearchService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc, searchSvc: searchSvc}
}

type equipmentRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	EquipmentType     string   `json:"equipment_type"`
	Subtype           string   `json:"subtype"`
	Brand             string   `json:"brand"`
	Model             string   `json:"model"`
	Year              int32    `json:"year"`
	DailyPriceCents   int32    `json:"daily_price_cents"`
	WeeklyPriceCents  int32    `json:"weekly_price_cents"`
	MonthlyPriceCents int32    `json:"monthly_price_cents"`
	Location          string   `json:"location"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Features          []string `json:"features"`
	Images            []string `json:"images"`
}

func (req *equipmentRequest) toDomain() *domain.Equipment {
	eq := &domain.Equipment{
		Title:             req.Title,
		Description:       req.Description,
		EquipmentType:     domain.EquipmentType(req.EquipmentType),
		Brand:             req.Brand,
		Model:             req.Model,
		Year:              req.Year,
		DailyPriceCents:   req.DailyPriceCents,
		WeeklyPriceCents:  req.WeeklyPriceCents,
		MonthlyPriceCents: req.MonthlyPriceCents,
		Location:          req.Location,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Features:          req.Features,
		Images:            req.Images,
	}
	switch eq.EquipmentType {
	case domain.EquipmentTypeMobilityScooter:
		eq.ScooterSubtype = domain.ScooterSubtype(req.Subtype)
	case domain.EquipmentTypeBabyStroller:
		eq.StrollerSubtype = domain.StrollerSubtype(req.Subtype)
	}
	return eq
}

// Create handles POST /api/v1/equipment
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req equipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq := req.toDomain()
	eq.HostID = userID
	created, err := h.equipmentSvc.CreateEquipment(r.Context(), eq)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Get handles GET /api/v1/equipment/{id}
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	eq, err := h.equipmentSvc.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eq)
}

// Update handles PUT /api/v1/equipment/{id}
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req equipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq := req.toDomain()
	eq.ID = mux.Vars(r)["id"]
	updated, err := h.equipmentSvc.UpdateEquipment(r.Context(), userID, eq)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Deactivate handles DELETE /api/v1/equipment/{id}
func (h *EquipmentHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.equipmentSvc.DeactivateEquipment(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type equipmentListResponse struct {
	Items []domain.Equipment `json:"items"`
	Total int32              `json:"total"`
}

// ListMine handles GET /api/v1/equipment/mine
func (h *EquipmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	limit := parseInt32(r.URL.Query().Get("limit"), 20)
	offset := parseInt32(r.URL.Query().Get("offset"), 0)

	items, total, err := h.equipmentSvc.ListMyEquipment(r.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, equipmentListResponse{Items: items, Total: total})
}

// Search handles GET /api/v1/equipment
func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := service.SearchParams{
		Query:         q.Get("q"),
		EquipmentType: q.Get("type"),
		Subtype:       q.Get("subtype"),
		Location:      q.Get("location"),
		MinPriceCents: parseInt32(q.Get("min_price_cents"), 0),
		MaxPriceCents: parseInt32(q.Get("max_price_cents"), 0),
		Limit:         parseInt32(q.Get("limit"), 20),
		Offset:        parseInt32(q.Get("offset"), 0),
	}
	if features := q.Get("features"); features != "" {
		params.Features = strings.Split(features, ",")
	}
	if lat, ok := parseFloat(q.Get("lat")); ok {
		params.Lat = &lat
	}
	if lng, ok := parseFloat(q.Get("lng")); ok {
		params.Lng = &lng
	}
	if radius, ok := parseFloat(q.Get("radius_km")); ok {
		params.RadiusKm = &radius
	}

	result, err := h.searchSvc.Search(r.Context(), params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type addDocumentRequest struct {
	DocumentType string `json:"document_type"`
	DocumentURL  string `json:"document_url"`
}

// AddDocument handles POST /api/v1/equipment/{id}/documents
func (h *EquipmentHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req addDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc := &domain.EquipmentDocument{
		EquipmentID:  mux.Vars(r)["id"],
		DocumentType: req.DocumentType,
		DocumentURL:  req.DocumentURL,
	}
	created, err := h.equipmentSvc.AddDocument(r.Context(), userID, doc)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListDocuments handles GET /api/v1/equipment/{id}/documents
func (h *EquipmentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	docs, err := h.equipmentSvc.ListDocuments(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
