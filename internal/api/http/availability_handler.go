package http

import (
	"net/http"
	"time"

	"equipshare-backend/internal/service"
	"equipshare-backend/internal/utils"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

type setDayRequest struct {
	Date               string `json:"date"`
	IsAvailable        bool   `json:"is_available"`
	PriceOverrideCents *int32 `json:"price_override_cents"`
}

// SetDay handles PUT /api/v1/equipment/{id}/availability
func (h *AvailabilityHandler) SetDay(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req setDayRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	day, err := h.availabilitySvc.SetDay(r.Context(), userID, mux.Vars(r)["id"], service.DayUpdate{
		Date:               date,
		IsAvailable:        req.IsAvailable,
		PriceOverrideCents: req.PriceOverrideCents,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

type setRangeRequest struct {
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	IsAvailable        bool   `json:"is_available"`
	PriceOverrideCents *int32 `json:"price_override_cents"`
}

type setRangeResponse struct {
	Results []service.DayResult `json:"results"`
}

// SetRange handles PUT /api/v1/equipment/{id}/availability/range
func (h *AvailabilityHandler) SetRange(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req setRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	results, err := h.availabilitySvc.SetRange(r.Context(), userID, mux.Vars(r)["id"], start, end, req.IsAvailable, req.PriceOverrideCents)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, setRangeResponse{Results: results})
}

// GetCalendar handles GET /api/v1/equipment/{id}/availability
func (h *AvailabilityHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	days, err := h.availabilitySvc.GetCalendar(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, days)
}

type rangeCheckResponse struct {
	Available bool `json:"available"`
}

// CheckRange handles GET /api/v1/equipment/{id}/availability/check
func (h *AvailabilityHandler) CheckRange(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	available, err := h.availabilitySvc.IsRangeAvailable(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rangeCheckResponse{Available: available})
}

type quoteResponse struct {
	TotalPriceCents int32 `json:"total_price_cents"`
}

// Quote handles GET /api/v1/equipment/{id}/quote
func (h *AvailabilityHandler) Quote(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	total, err := h.availabilitySvc.Quote(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quoteResponse{TotalPriceCents: total})
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
