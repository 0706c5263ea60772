package domain

import "time"

type EquipmentType string

const (
	EquipmentTypeMobilityScooter EquipmentType = "mobility_scooter"
	EquipmentTypeBabyStroller    EquipmentType = "baby_stroller"
)

type ScooterSubtype string

const (
	ScooterSubtypeLightweight ScooterSubtype = "lightweight"
	ScooterSubtypeStandard    ScooterSubtype = "standard"
	ScooterSubtypeHeavyDuty   ScooterSubtype = "heavy_duty"
	ScooterSubtypeXL          ScooterSubtype = "xl"
)

type StrollerSubtype string

const (
	StrollerSubtypeSingle       StrollerSubtype = "single"
	StrollerSubtypeDouble       StrollerSubtype = "double"
	StrollerSubtypeSingleJogger StrollerSubtype = "single_jogger"
	StrollerSubtypeDoubleJogger StrollerSubtype = "double_jogger"
)

// Equipment is a rentable item listed by a host. Prices are stored in
// cents; weekly and monthly prices are 0 when the host has not set them.
type Equipment struct {
	ID                string          `json:"id"`
	HostID            string          `json:"host_id"`
	Host              *UserSummary    `json:"host,omitempty"` // populated on detail/search reads
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	EquipmentType     EquipmentType   `json:"equipment_type"`
	ScooterSubtype    ScooterSubtype  `json:"scooter_subtype,omitempty"`
	StrollerSubtype   StrollerSubtype `json:"stroller_subtype,omitempty"`
	Brand             string          `json:"brand"`
	Model             string          `json:"model"`
	Year              int32           `json:"year,omitempty"`
	DailyPriceCents   int32           `json:"daily_price_cents"`
	WeeklyPriceCents  int32           `json:"weekly_price_cents,omitempty"`
	MonthlyPriceCents int32           `json:"monthly_price_cents,omitempty"`
	Location          string          `json:"location"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	Features          []string        `json:"features"`
	Images            []string        `json:"images"`
	IsVerified        bool            `json:"is_verified"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// SubtypeForType returns the subtype matching the equipment's type, used
// where the two subtype columns collapse into one API field.
func (e *Equipment) SubtypeForType() string {
	switch e.EquipmentType {
	case EquipmentTypeMobilityScooter:
		return string(e.ScooterSubtype)
	case EquipmentTypeBabyStroller:
		return string(e.StrollerSubtype)
	}
	return ""
}

type EquipmentDocument struct {
	ID           string    `json:"id"`
	EquipmentID  string    `json:"equipment_id"`
	DocumentType string    `json:"document_type"` // insurance, registration, inspection, manual
	DocumentURL  string    `json:"document_url"`
	IsVerified   bool      `json:"is_verified"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
