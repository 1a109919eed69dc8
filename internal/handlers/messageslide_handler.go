package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	sharedHTTP "github.com/Azeezfasasi/Tofar-Logistics-Backend/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MessageSlideHandler struct {
	slides repository.MessageSlideStore
}

func NewMessageSlideHandler(slides repository.MessageSlideStore) *MessageSlideHandler {
	return &MessageSlideHandler{
		slides: slides,
	}
}

// GetActiveSlides feeds the public tracking page; it only ever returns
// active slides.
func (h *MessageSlideHandler) GetActiveSlides(c *fiber.Ctx) error {
	slides, err := h.slides.List(c.UserContext(), true)
	if err != nil {
		log.Printf("Failed to list active message slides: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Message slides retrieved successfully", slides)
}

func (h *MessageSlideHandler) GetAllSlides(c *fiber.Ctx) error {
	slides, err := h.slides.List(c.UserContext(), false)
	if err != nil {
		log.Printf("Failed to list message slides: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Message slides retrieved successfully", slides)
}

func (h *MessageSlideHandler) GetSlide(c *fiber.Ctx) error {
	slideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid slide ID", map[string]interface{}{
			"slide_id": c.Params("id"),
		})
	}

	slide, err := h.slides.GetByID(c.UserContext(), slideID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Message slide not found")
		}
		log.Printf("Failed to get message slide %s: %v", slideID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Message slide retrieved successfully", slide)
}

func (h *MessageSlideHandler) CreateSlide(c *fiber.Ctx) error {
	var request MessageSlideRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	if request.Title == "" {
		return sharedHTTP.BadRequestResponse(c, "Title is required", nil)
	}
	if request.Message == "" {
		return sharedHTTP.BadRequestResponse(c, "Message is required", nil)
	}

	now := time.Now()
	slide := &domain.MessageSlide{
		ID:              uuid.New(),
		Title:           request.Title,
		Message:         request.Message,
		IsActive:        true,
		DisplayOrder:    intValue(request.DisplayOrder),
		Icon:            request.Icon,
		BackgroundColor: request.BackgroundColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if request.IsActive != nil {
		slide.IsActive = *request.IsActive
	}
	if slide.BackgroundColor == "" {
		slide.BackgroundColor = domain.DefaultSlideBackground
	}

	if err := h.slides.Create(c.UserContext(), slide); err != nil {
		log.Printf("Failed to create message slide: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.CreatedResponse(c, "Message slide created successfully", slide)
}

func (h *MessageSlideHandler) UpdateSlide(c *fiber.Ctx) error {
	slideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid slide ID", map[string]interface{}{
			"slide_id": c.Params("id"),
		})
	}

	var request MessageSlideRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	slide, err := h.slides.GetByID(c.UserContext(), slideID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Message slide not found")
		}
		log.Printf("Failed to get message slide %s: %v", slideID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	// Only fields present in the body are applied; omitted fields keep their
	// stored values.
	if request.Title != "" {
		slide.Title = request.Title
	}
	if request.Message != "" {
		slide.Message = request.Message
	}
	if request.Icon != "" {
		slide.Icon = request.Icon
	}
	if request.BackgroundColor != "" {
		slide.BackgroundColor = request.BackgroundColor
	}
	if request.DisplayOrder != nil {
		slide.DisplayOrder = *request.DisplayOrder
	}
	if request.IsActive != nil {
		slide.IsActive = *request.IsActive
	}
	slide.UpdatedAt = time.Now()

	if err := h.slides.Update(c.UserContext(), slide); err != nil {
		log.Printf("Failed to update message slide %s: %v", slideID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Message slide updated successfully", slide)
}

func (h *MessageSlideHandler) DeleteSlide(c *fiber.Ctx) error {
	slideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid slide ID", map[string]interface{}{
			"slide_id": c.Params("id"),
		})
	}

	deleted, err := h.slides.Delete(c.UserContext(), slideID)
	if err != nil {
		log.Printf("Failed to delete message slide %s: %v", slideID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}
	if !deleted {
		return sharedHTTP.NotFoundResponse(c, "Message slide not found")
	}

	return sharedHTTP.SuccessResponse(c, "Message slide deleted successfully", nil)
}

func (h *MessageSlideHandler) BulkToggleSlides(c *fiber.Ctx) error {
	var request BulkToggleRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if len(request.IDs) == 0 {
		return sharedHTTP.BadRequestResponse(c, "At least one slide ID is required", nil)
	}

	updated, err := h.slides.BulkSetActive(c.UserContext(), request.IDs, request.IsActive)
	if err != nil {
		log.Printf("Failed to bulk toggle message slides: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Message slides updated successfully", map[string]interface{}{
		"updated_count": updated,
		"is_active":     request.IsActive,
	})
}
