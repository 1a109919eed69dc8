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

type FacilityHandler struct {
	facilities repository.FacilityStore
}

func NewFacilityHandler(facilities repository.FacilityStore) *FacilityHandler {
	return &FacilityHandler{
		facilities: facilities,
	}
}

func (h *FacilityHandler) GetFacilities(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"

	facilities, err := h.facilities.List(c.UserContext(), activeOnly)
	if err != nil {
		log.Printf("Failed to list facilities: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Facilities retrieved successfully", facilities)
}

func (h *FacilityHandler) GetActiveFacilities(c *fiber.Ctx) error {
	facilities, err := h.facilities.List(c.UserContext(), true)
	if err != nil {
		log.Printf("Failed to list active facilities: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Facilities retrieved successfully", facilities)
}

func (h *FacilityHandler) GetFacility(c *fiber.Ctx) error {
	facilityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid facility ID", map[string]interface{}{
			"facility_id": c.Params("id"),
		})
	}

	facility, err := h.facilities.GetByID(c.UserContext(), facilityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Facility not found")
		}
		log.Printf("Failed to get facility %s: %v", facilityID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Facility retrieved successfully", facility)
}

func (h *FacilityHandler) CreateFacility(c *fiber.Ctx) error {
	var request FacilityRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	if request.Name == "" {
		return sharedHTTP.BadRequestResponse(c, "Facility name is required", nil)
	}
	if request.Country == "" {
		return sharedHTTP.BadRequestResponse(c, "Country is required", nil)
	}

	now := time.Now()
	facility := &domain.Facility{
		ID:            uuid.New(),
		Name:          request.Name,
		Code:          request.Code,
		Country:       request.Country,
		State:         stringValue(request.State),
		City:          stringValue(request.City),
		Address:       stringValue(request.Address),
		ContactPerson: stringValue(request.ContactPerson),
		ContactPhone:  stringValue(request.ContactPhone),
		ContactEmail:  stringValue(request.ContactEmail),
		IsActive:      true,
		Capacity:      floatValue(request.Capacity),
		Notes:         stringValue(request.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if request.IsActive != nil {
		facility.IsActive = *request.IsActive
	}

	if err := h.facilities.Create(c.UserContext(), facility); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return sharedHTTP.ConflictResponse(c, "Facility already exists", map[string]interface{}{
				"name": request.Name,
			})
		}
		log.Printf("Failed to create facility: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.CreatedResponse(c, "Facility created successfully", facility)
}

func (h *FacilityHandler) UpdateFacility(c *fiber.Ctx) error {
	facilityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid facility ID", map[string]interface{}{
			"facility_id": c.Params("id"),
		})
	}

	var request FacilityRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	facility, err := h.facilities.GetByID(c.UserContext(), facilityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Facility not found")
		}
		log.Printf("Failed to get facility %s: %v", facilityID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	// Only fields present in the body are applied; omitted fields keep their
	// stored values.
	if request.Name != "" {
		facility.Name = request.Name
	}
	if request.Code != "" {
		facility.Code = request.Code
	}
	if request.Country != "" {
		facility.Country = request.Country
	}
	if request.State != nil {
		facility.State = *request.State
	}
	if request.City != nil {
		facility.City = *request.City
	}
	if request.Address != nil {
		facility.Address = *request.Address
	}
	if request.ContactPerson != nil {
		facility.ContactPerson = *request.ContactPerson
	}
	if request.ContactPhone != nil {
		facility.ContactPhone = *request.ContactPhone
	}
	if request.ContactEmail != nil {
		facility.ContactEmail = *request.ContactEmail
	}
	if request.Notes != nil {
		facility.Notes = *request.Notes
	}
	if request.Capacity != nil {
		facility.Capacity = *request.Capacity
	}
	if request.IsActive != nil {
		facility.IsActive = *request.IsActive
	}
	facility.UpdatedAt = time.Now()

	if err := h.facilities.Update(c.UserContext(), facility); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return sharedHTTP.ConflictResponse(c, "Facility already exists", map[string]interface{}{
				"name": request.Name,
			})
		}
		log.Printf("Failed to update facility %s: %v", facilityID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Facility updated successfully", facility)
}

func (h *FacilityHandler) ToggleFacilityStatus(c *fiber.Ctx) error {
	facilityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid facility ID", map[string]interface{}{
			"facility_id": c.Params("id"),
		})
	}

	facility, err := h.facilities.GetByID(c.UserContext(), facilityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Facility not found")
		}
		log.Printf("Failed to get facility %s: %v", facilityID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	facility.IsActive = !facility.IsActive
	facility.UpdatedAt = time.Now()

	if err := h.facilities.Update(c.UserContext(), facility); err != nil {
		log.Printf("Failed to toggle facility %s: %v", facilityID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}

	return sharedHTTP.SuccessResponse(c, "Facility status updated successfully", facility)
}

func (h *FacilityHandler) DeleteFacility(c *fiber.Ctx) error {
	facilityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid facility ID", map[string]interface{}{
			"facility_id": c.Params("id"),
		})
	}

	deleted, err := h.facilities.Delete(c.UserContext(), facilityID)
	if err != nil {
		log.Printf("Failed to delete facility %s: %v", facilityID, err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}
	if !deleted {
		return sharedHTTP.NotFoundResponse(c, "Facility not found")
	}

	return sharedHTTP.SuccessResponse(c, "Facility deleted successfully", nil)
}
