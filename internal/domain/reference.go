package domain

import (
	"time"

	"github.com/google/uuid"
)

// Facility is reference data: shipments point at facilities by free text, not
// by enforced foreign key.
type Facility struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code,omitempty"`
	Country       string    `json:"country"`
	State         string    `json:"state,omitempty"`
	City          string    `json:"city,omitempty"`
	Address       string    `json:"address,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	IsActive      bool      `json:"is_active"`
	Capacity      float64   `json:"capacity,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	StatusCategoryPending    = "pending"
	StatusCategoryProcessing = "processing"
	StatusCategoryInTransit  = "in-transit"
	StatusCategoryDelivered  = "delivered"
	StatusCategoryFailed     = "failed"
	StatusCategoryOther      = "other"
)

// DefaultStatusColor is the badge color a catalogue entry gets when the
// request does not pick one.
const DefaultStatusColor = "#6B7280"

// ShipmentStatus is the admin-curated status catalogue. Shipments keep their
// status as free text, so the catalogue constrains nothing; it only feeds
// pickers and dashboards.
type ShipmentStatus struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code,omitempty"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidStatusCategory(category string) bool {
	switch category {
	case StatusCategoryPending, StatusCategoryProcessing, StatusCategoryInTransit,
		StatusCategoryDelivered, StatusCategoryFailed, StatusCategoryOther:
		return true
	}
	return false
}
