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

type StatusHandler struct {
	statuses repository.StatusStore
}

func NewStatusHandler(statuses repository.StatusStore) *StatusHandler {
	return &StatusHandler{
		statuses: statuses,
	}
}

func (h *StatusHandler) GetStatuses(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"

	statuses, err := h.statuses.List(c.UserContext(), activeOnly)
	if err != nil {
		log.Printf("Failed to list shipment statuses: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment statuses retrieved successfully", statuses)
}

func (h *StatusHandler) GetActiveStatuses(c *fiber.Ctx) error {
	statuses, err := h.statuses.List(c.UserContext(), true)
	if err != nil {
		log.Printf("Failed to list active shipment statuses: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment statuses retrieved successfully", statuses)
}

func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	statusID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid status ID", map[string]interface{}{
			"status_id": c.Params("id"),
		})
	}

	status, err := h.statuses.GetByID(c.UserContext(), statusID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Shipment status not found")
		}
		log.Printf("Failed to get shipment status %s: %v", statusID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment status retrieved successfully", status)
}

func (h *StatusHandler) CreateStatus(c *fiber.Ctx) error {
	var request StatusRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	if request.Name == "" {
		return sharedHTTP.BadRequestResponse(c, "Status name is required", nil)
	}
	if request.Category != "" && !domain.ValidStatusCategory(request.Category) {
		return sharedHTTP.BadRequestResponse(c, "Invalid status category", map[string]interface{}{
			"category": request.Category,
		})
	}

	now := time.Now()
	status := &domain.ShipmentStatus{
		ID:           uuid.New(),
		Name:         request.Name,
		Code:         request.Code,
		Description:  stringValue(request.Description),
		Color:        request.Color,
		Category:     request.Category,
		DisplayOrder: intValue(request.DisplayOrder),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status.Category == "" {
		status.Category = domain.StatusCategoryOther
	}
	if status.Color == "" {
		status.Color = domain.DefaultStatusColor
	}
	if request.IsActive != nil {
		status.IsActive = *request.IsActive
	}

	if err := h.statuses.Create(c.UserContext(), status); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return sharedHTTP.ConflictResponse(c, "Shipment status already exists", map[string]interface{}{
				"name": request.Name,
			})
		}
		log.Printf("Failed to create shipment status: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.CreatedResponse(c, "Shipment status created successfully", status)
}

func (h *StatusHandler) UpdateStatus(c *fiber.Ctx) error {
	statusID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid status ID", map[string]interface{}{
			"status_id": c.Params("id"),
		})
	}

	var request StatusRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.Category != "" && !domain.ValidStatusCategory(request.Category) {
		return sharedHTTP.BadRequestResponse(c, "Invalid status category", map[string]interface{}{
			"category": request.Category,
		})
	}

	status, err := h.statuses.GetByID(c.UserContext(), statusID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Shipment status not found")
		}
		log.Printf("Failed to get shipment status %s: %v", statusID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	// Only fields present in the body are applied; omitted fields keep their
	// stored values.
	if request.Name != "" {
		status.Name = request.Name
	}
	if request.Code != "" {
		status.Code = request.Code
	}
	if request.Category != "" {
		status.Category = request.Category
	}
	if request.Color != "" {
		status.Color = request.Color
	}
	if request.Description != nil {
		status.Description = *request.Description
	}
	if request.DisplayOrder != nil {
		status.DisplayOrder = *request.DisplayOrder
	}
	if request.IsActive != nil {
		status.IsActive = *request.IsActive
	}
	status.UpdatedAt = time.Now()

	if err := h.statuses.Update(c.UserContext(), status); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return sharedHTTP.ConflictResponse(c, "Shipment status already exists", map[string]interface{}{
				"name": request.Name,
			})
		}
		log.Printf("Failed to update shipment status %s: %v", statusID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment status updated successfully", status)
}

func (h *StatusHandler) ToggleStatusActive(c *fiber.Ctx) error {
	statusID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid status ID", map[string]interface{}{
			"status_id": c.Params("id"),
		})
	}

	status, err := h.statuses.GetByID(c.UserContext(), statusID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Shipment status not found")
		}
		log.Printf("Failed to get shipment status %s: %v", statusID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	status.IsActive = !status.IsActive
	status.UpdatedAt = time.Now()

	if err := h.statuses.Update(c.UserContext(), status); err != nil {
		log.Printf("Failed to toggle shipment status %s: %v", statusID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment status updated successfully", status)
}

func (h *StatusHandler) DeleteStatus(c *fiber.Ctx) error {
	statusID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid status ID", map[string]interface{}{
			"status_id": c.Params("id"),
		})
	}

	deleted, err := h.statuses.Delete(c.UserContext(), statusID)
	if err != nil {
		log.Printf("Failed to delete shipment status %s: %v", statusID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}
	if !deleted {
		return sharedHTTP.NotFoundResponse(c, "Shipment status not found")
	}

	return sharedHTTP.SuccessResponse(c, "Shipment status deleted successfully", nil)
}
