package domain

import "time"

// ShipmentPatch is a partial edit: only non-nil fields are applied. Status,
// history, replies and the QR code are deliberately absent; they move through
// their own operations.
type ShipmentPatch struct {
	SenderName       *string    `json:"sender_name,omitempty"`
	SenderPhone      *string    `json:"sender_phone,omitempty"`
	SenderEmail      *string    `json:"sender_email,omitempty"`
	SenderAddress    *string    `json:"sender_address,omitempty"`
	RecipientName    *string    `json:"recipient_name,omitempty"`
	RecipientEmail   *string    `json:"recipient_email,omitempty"`
	RecipientPhone   *string    `json:"recipient_phone,omitempty"`
	RecipientAddress *string    `json:"recipient_address,omitempty"`
	Origin           *string    `json:"origin,omitempty"`
	Destination      *string    `json:"destination,omitempty"`
	Items            []string   `json:"items,omitempty"`
	Weight           *float64   `json:"weight,omitempty"`
	Length           *string    `json:"length,omitempty"`
	Width            *string    `json:"width,omitempty"`
	Height           *string    `json:"height,omitempty"`
	Volume           *float64   `json:"volume,omitempty"`
	Cost             *float64   `json:"cost,omitempty"`
	ShipmentDate     *time.Time `json:"shipment_date,omitempty"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	ShipmentPieces   *string    `json:"shipment_pieces,omitempty"`
	ShipmentType     *string    `json:"shipment_type,omitempty"`
	ShipmentPurpose  *string    `json:"shipment_purpose,omitempty"`
	ShipmentFacility *string    `json:"shipment_facility,omitempty"`
}

func (p *ShipmentPatch) Apply(s *Shipment) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&s.SenderName, p.SenderName)
	setString(&s.SenderPhone, p.SenderPhone)
	setString(&s.SenderEmail, p.SenderEmail)
	setString(&s.SenderAddress, p.SenderAddress)
	setString(&s.RecipientName, p.RecipientName)
	setString(&s.RecipientEmail, p.RecipientEmail)
	setString(&s.RecipientPhone, p.RecipientPhone)
	setString(&s.RecipientAddress, p.RecipientAddress)
	setString(&s.Origin, p.Origin)
	setString(&s.Destination, p.Destination)
	if p.Items != nil {
		s.Items = p.Items
	}
	setFloat(&s.Weight, p.Weight)
	setString(&s.Length, p.Length)
	setString(&s.Width, p.Width)
	setString(&s.Height, p.Height)
	setFloat(&s.Volume, p.Volume)
	setFloat(&s.Cost, p.Cost)
	if p.ShipmentDate != nil {
		s.ShipmentDate = p.ShipmentDate
	}
	if p.DeliveryDate != nil {
		s.DeliveryDate = p.DeliveryDate
	}
	setString(&s.Notes, p.Notes)
	setString(&s.ShipmentPieces, p.ShipmentPieces)
	setString(&s.ShipmentType, p.ShipmentType)
	setString(&s.ShipmentPurpose, p.ShipmentPurpose)
	setString(&s.ShipmentFacility, p.ShipmentFacility)
	s.UpdatedAt = time.Now()
}
