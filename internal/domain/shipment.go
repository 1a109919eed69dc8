package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const StatusPending = "pending"

// Shipment is the central entity. Status is an open vocabulary: any free-text
// value may follow any other; the audit trail lives in TrackingHistory and the
// Status field must always mirror its latest entry.
type Shipment struct {
	ID               uuid.UUID       `json:"id"`
	TrackingNumber   string          `json:"tracking_number"`
	SenderID         *uuid.UUID      `json:"sender_id,omitempty"`
	SenderName       string          `json:"sender_name,omitempty"`
	SenderPhone      string          `json:"sender_phone,omitempty"`
	SenderEmail      string          `json:"sender_email,omitempty"`
	SenderAddress    string          `json:"sender_address,omitempty"`
	RecipientName    string          `json:"recipient_name,omitempty"`
	RecipientEmail   string          `json:"recipient_email,omitempty"`
	RecipientPhone   string          `json:"recipient_phone,omitempty"`
	RecipientAddress string          `json:"recipient_address,omitempty"`
	Origin           string          `json:"origin,omitempty"`
	Destination      string          `json:"destination,omitempty"`
	Status           string          `json:"status"`
	Items            []string        `json:"items,omitempty"`
	Weight           float64         `json:"weight,omitempty"`
	Length           string          `json:"length,omitempty"`
	Width            string          `json:"width,omitempty"`
	Height           string          `json:"height,omitempty"`
	Volume           float64         `json:"volume,omitempty"`
	Cost             float64         `json:"cost,omitempty"`
	ShipmentDate     *time.Time      `json:"shipment_date,omitempty"`
	DeliveryDate     *time.Time      `json:"delivery_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	ShipmentPieces   string          `json:"shipment_pieces,omitempty"`
	ShipmentType     string          `json:"shipment_type,omitempty"`
	ShipmentPurpose  string          `json:"shipment_purpose,omitempty"`
	ShipmentFacility string          `json:"shipment_facility,omitempty"`
	QRCodeURL        string          `json:"qr_code_url,omitempty"`
	TrackingHistory  []TrackingEvent `json:"tracking_history"`
	Replies          []Reply         `json:"replies"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type TrackingEvent struct {
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Reply struct {
	ID        uuid.UUID  `json:"id"`
	Message   string     `json:"message"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewShipment builds a shipment from a draft: identity, a tracking number if
// the draft has none, the default status and the initial history entry.
func NewShipment(draft Shipment) *Shipment {
	shipment := draft
	shipment.ID = uuid.New()

	if shipment.TrackingNumber == "" {
		shipment.TrackingNumber = GenerateTrackingNumber()
	}
	if shipment.Status == "" {
		shipment.Status = StatusPending
	}

	now := time.Now()
	shipment.CreatedAt = now
	shipment.UpdatedAt = now
	shipment.TrackingHistory = []TrackingEvent{{
		Status:    shipment.Status,
		Location:  shipment.Origin,
		Timestamp: now,
	}}
	shipment.Replies = nil

	return &shipment
}

// ApplyStatus sets the status and appends the matching history entry in one
// step so the two never diverge.
func (s *Shipment) ApplyStatus(status, location string) TrackingEvent {
	event := TrackingEvent{
		Status:    status,
		Location:  location,
		Timestamp: time.Now(),
	}
	s.Status = status
	s.TrackingHistory = append(s.TrackingHistory, event)
	s.UpdatedAt = event.Timestamp
	return event
}

func (s *Shipment) AddReply(message string, userID *uuid.UUID) Reply {
	reply := Reply{
		ID:        uuid.New(),
		Message:   message,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	s.Replies = append(s.Replies, reply)
	s.UpdatedAt = reply.Timestamp
	return reply
}

func GenerateTrackingNumber() string {
	return "TRK_" + strings.ToUpper(uuid.New().String()[:8])
}

type ChangeStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

type ReplyRequest struct {
	Message string `json:"message"`
}

type BackfillReport struct {
	GeneratedCount int             `json:"generated_count"`
	TotalChecked   int             `json:"total_checked"`
	Errors         []BackfillError `json:"errors,omitempty"`
}

type BackfillError struct {
	TrackingNumber string `json:"tracking_number"`
	Error          string `json:"error"`
}
