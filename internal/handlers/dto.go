package handlers

import (
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
)

type CreateShipmentRequest struct {
	TrackingNumber   string     `json:"tracking_number"`
	SenderID         *uuid.UUID `json:"sender_id"`
	SenderName       string     `json:"sender_name"`
	SenderPhone      string     `json:"sender_phone"`
	SenderEmail      string     `json:"sender_email"`
	SenderAddress    string     `json:"sender_address"`
	RecipientName    string     `json:"recipient_name"`
	RecipientEmail   string     `json:"recipient_email"`
	RecipientPhone   string     `json:"recipient_phone"`
	RecipientAddress string     `json:"recipient_address"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	Items            []string   `json:"items"`
	Weight           float64    `json:"weight"`
	Length           string     `json:"length"`
	Width            string     `json:"width"`
	Height           string     `json:"height"`
	Volume           float64    `json:"volume"`
	Cost             float64    `json:"cost"`
	ShipmentDate     *time.Time `json:"shipment_date"`
	DeliveryDate     *time.Time `json:"delivery_date"`
	Notes            string     `json:"notes"`
	ShipmentPieces   string     `json:"shipment_pieces"`
	ShipmentType     string     `json:"shipment_type"`
	ShipmentPurpose  string     `json:"shipment_purpose"`
	ShipmentFacility string     `json:"shipment_facility"`
}

func (r *CreateShipmentRequest) ToDraft() domain.Shipment {
	return domain.Shipment{
		TrackingNumber:   r.TrackingNumber,
		SenderID:         r.SenderID,
		SenderName:       r.SenderName,
		SenderPhone:      r.SenderPhone,
		SenderEmail:      r.SenderEmail,
		SenderAddress:    r.SenderAddress,
		RecipientName:    r.RecipientName,
		RecipientEmail:   r.RecipientEmail,
		RecipientPhone:   r.RecipientPhone,
		RecipientAddress: r.RecipientAddress,
		Origin:           r.Origin,
		Destination:      r.Destination,
		Items:            r.Items,
		Weight:           r.Weight,
		Length:           r.Length,
		Width:            r.Width,
		Height:           r.Height,
		Volume:           r.Volume,
		Cost:             r.Cost,
		ShipmentDate:     r.ShipmentDate,
		DeliveryDate:     r.DeliveryDate,
		Notes:            r.Notes,
		ShipmentPieces:   r.ShipmentPieces,
		ShipmentType:     r.ShipmentType,
		ShipmentPurpose:  r.ShipmentPurpose,
		ShipmentFacility: r.ShipmentFacility,
	}
}

type ShipmentResponse struct {
	ID               uuid.UUID               `json:"id"`
	TrackingNumber   string                  `json:"tracking_number"`
	SenderID         *uuid.UUID              `json:"sender_id,omitempty"`
	SenderName       string                  `json:"sender_name,omitempty"`
	SenderPhone      string                  `json:"sender_phone,omitempty"`
	SenderEmail      string                  `json:"sender_email,omitempty"`
	SenderAddress    string                  `json:"sender_address,omitempty"`
	RecipientName    string                  `json:"recipient_name,omitempty"`
	RecipientEmail   string                  `json:"recipient_email,omitempty"`
	RecipientPhone   string                  `json:"recipient_phone,omitempty"`
	RecipientAddress string                  `json:"recipient_address,omitempty"`
	Origin           string                  `json:"origin,omitempty"`
	Destination      string                  `json:"destination,omitempty"`
	Status           string                  `json:"status"`
	Items            []string                `json:"items,omitempty"`
	Weight           float64                 `json:"weight,omitempty"`
	Length           string                  `json:"length,omitempty"`
	Width            string                  `json:"width,omitempty"`
	Height           string                  `json:"height,omitempty"`
	Volume           float64                 `json:"volume,omitempty"`
	Cost             float64                 `json:"cost,omitempty"`
	ShipmentDate     *time.Time              `json:"shipment_date,omitempty"`
	DeliveryDate     *time.Time              `json:"delivery_date,omitempty"`
	Notes            string                  `json:"notes,omitempty"`
	ShipmentPieces   string                  `json:"shipment_pieces,omitempty"`
	ShipmentType     string                  `json:"shipment_type,omitempty"`
	ShipmentPurpose  string                  `json:"shipment_purpose,omitempty"`
	ShipmentFacility string                  `json:"shipment_facility,omitempty"`
	QRCodeURL        string                  `json:"qr_code_url,omitempty"`
	TrackingHistory  []domain.TrackingEvent  `json:"tracking_history"`
	Replies          []domain.Reply          `json:"replies"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// PublicShipmentResponse is the track-by-number projection: identical to
// ShipmentResponse except the sender reference is never present.
type PublicShipmentResponse struct {
	ID               uuid.UUID              `json:"id"`
	TrackingNumber   string                 `json:"tracking_number"`
	SenderName       string                 `json:"sender_name,omitempty"`
	SenderPhone      string                 `json:"sender_phone,omitempty"`
	SenderEmail      string                 `json:"sender_email,omitempty"`
	SenderAddress    string                 `json:"sender_address,omitempty"`
	RecipientName    string                 `json:"recipient_name,omitempty"`
	RecipientEmail   string                 `json:"recipient_email,omitempty"`
	RecipientPhone   string                 `json:"recipient_phone,omitempty"`
	RecipientAddress string                 `json:"recipient_address,omitempty"`
	Origin           string                 `json:"origin,omitempty"`
	Destination      string                 `json:"destination,omitempty"`
	Status           string                 `json:"status"`
	Items            []string               `json:"items,omitempty"`
	Weight           float64                `json:"weight,omitempty"`
	Volume           float64                `json:"volume,omitempty"`
	ShipmentDate     *time.Time             `json:"shipment_date,omitempty"`
	DeliveryDate     *time.Time             `json:"delivery_date,omitempty"`
	ShipmentPieces   string                 `json:"shipment_pieces,omitempty"`
	ShipmentType     string                 `json:"shipment_type,omitempty"`
	ShipmentFacility string                 `json:"shipment_facility,omitempty"`
	QRCodeURL        string                 `json:"qr_code_url,omitempty"`
	TrackingHistory  []domain.TrackingEvent `json:"tracking_history"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func mapShipment(shipment *domain.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:               shipment.ID,
		TrackingNumber:   shipment.TrackingNumber,
		SenderID:         shipment.SenderID,
		SenderName:       shipment.SenderName,
		SenderPhone:      shipment.SenderPhone,
		SenderEmail:      shipment.SenderEmail,
		SenderAddress:    shipment.SenderAddress,
		RecipientName:    shipment.RecipientName,
		RecipientEmail:   shipment.RecipientEmail,
		RecipientPhone:   shipment.RecipientPhone,
		RecipientAddress: shipment.RecipientAddress,
		Origin:           shipment.Origin,
		Destination:      shipment.Destination,
		Status:           shipment.Status,
		Items:            shipment.Items,
		Weight:           shipment.Weight,
		Length:           shipment.Length,
		Width:            shipment.Width,
		Height:           shipment.Height,
		Volume:           shipment.Volume,
		Cost:             shipment.Cost,
		ShipmentDate:     shipment.ShipmentDate,
		DeliveryDate:     shipment.DeliveryDate,
		Notes:            shipment.Notes,
		ShipmentPieces:   shipment.ShipmentPieces,
		ShipmentType:     shipment.ShipmentType,
		ShipmentPurpose:  shipment.ShipmentPurpose,
		ShipmentFacility: shipment.ShipmentFacility,
		QRCodeURL:        shipment.QRCodeURL,
		TrackingHistory:  shipment.TrackingHistory,
		Replies:          shipment.Replies,
		CreatedAt:        shipment.CreatedAt,
		UpdatedAt:        shipment.UpdatedAt,
	}
}

func mapShipments(shipments []*domain.Shipment) []ShipmentResponse {
	responses := make([]ShipmentResponse, len(shipments))
	for i, shipment := range shipments {
		responses[i] = mapShipment(shipment)
	}
	return responses
}

func mapPublicShipment(shipment *domain.Shipment) PublicShipmentResponse {
	return PublicShipmentResponse{
		ID:               shipment.ID,
		TrackingNumber:   shipment.TrackingNumber,
		SenderName:       shipment.SenderName,
		SenderPhone:      shipment.SenderPhone,
		SenderEmail:      shipment.SenderEmail,
		SenderAddress:    shipment.SenderAddress,
		RecipientName:    shipment.RecipientName,
		RecipientEmail:   shipment.RecipientEmail,
		RecipientPhone:   shipment.RecipientPhone,
		RecipientAddress: shipment.RecipientAddress,
		Origin:           shipment.Origin,
		Destination:      shipment.Destination,
		Status:           shipment.Status,
		Items:            shipment.Items,
		Weight:           shipment.Weight,
		Volume:           shipment.Volume,
		ShipmentDate:     shipment.ShipmentDate,
		DeliveryDate:     shipment.DeliveryDate,
		ShipmentPieces:   shipment.ShipmentPieces,
		ShipmentType:     shipment.ShipmentType,
		ShipmentFacility: shipment.ShipmentFacility,
		QRCodeURL:        shipment.QRCodeURL,
		TrackingHistory:  shipment.TrackingHistory,
		CreatedAt:        shipment.CreatedAt,
		UpdatedAt:        shipment.UpdatedAt,
	}
}

// Reference-data requests serve both create and update. Optional fields are
// pointers so an update only touches what the body actually carries, the same
// partial-edit contract domain.ShipmentPatch gives shipments.
type FacilityRequest struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Country       string   `json:"country"`
	State         *string  `json:"state"`
	City          *string  `json:"city"`
	Address       *string  `json:"address"`
	ContactPerson *string  `json:"contact_person"`
	ContactPhone  *string  `json:"contact_phone"`
	ContactEmail  *string  `json:"contact_email"`
	IsActive      *bool    `json:"is_active"`
	Capacity      *float64 `json:"capacity"`
	Notes         *string  `json:"notes"`
}

type StatusRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Description  *string `json:"description"`
	Color        string  `json:"color"`
	Category     string  `json:"category"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type MessageSlideRequest struct {
	Title           string `json:"title"`
	Message         string `json:"message"`
	IsActive        *bool  `json:"is_active"`
	DisplayOrder    *int   `json:"display_order"`
	Icon            string `json:"icon"`
	BackgroundColor string `json:"background_color"`
}

func stringValue(ptr *string) string {
	if ptr != nil {
		return *ptr
	}
	return ""
}

func floatValue(ptr *float64) float64 {
	if ptr != nil {
		return *ptr
	}
	return 0
}

func intValue(ptr *int) int {
	if ptr != nil {
		return *ptr
	}
	return 0
}

type BulkToggleRequest struct {
	IDs      []uuid.UUID `json:"ids"`
	IsActive bool        `json:"is_active"`
}
