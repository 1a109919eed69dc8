package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageSlide is an informational banner shown on the public tracking page.
type MessageSlide struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	IsActive        bool      `json:"is_active"`
	DisplayOrder    int       `json:"display_order"`
	Icon            string    `json:"icon,omitempty"`
	BackgroundColor string    `json:"background_color"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const DefaultSlideBackground = "#1976D2"
