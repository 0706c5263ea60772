package domain

import "time"

// AvailabilityDay is one calendar day's bookability for one equipment item.
// At most one row exists per (equipment_id, date); days without a row are
// treated as available by default. PriceOverrideCents, when set, supersedes
// the equipment's daily price for that day.
type AvailabilityDay struct {
	ID                 string    `json:"id"`
	EquipmentID        string    `json:"equipment_id"`
	Date               time.Time `json:"date"`
	IsAvailable        bool      `json:"is_available"`
	PriceOverrideCents *int32    `json:"price_override_cents,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// AvailabilityHorizonDays is how far forward the per-day ledger is
// materialized when a listing is created. The nightly horizon job keeps
// the window rolling.
const AvailabilityHorizonDays = 365
