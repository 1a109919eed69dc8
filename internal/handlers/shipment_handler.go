package handlers

import (
	"errors"
	"log"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/middleware"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/service"
	sharedHTTP "github.com/Azeezfasasi/Tofar-Logistics-Backend/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ShipmentHandler struct {
	shipmentService *service.ShipmentService
}

func NewShipmentHandler(shipmentService *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
	}
}

func (h *ShipmentHandler) GetAllShipments(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)

	shipments, err := h.shipmentService.ListAll(c.UserContext(), caller)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return sharedHTTP.SuccessResponse(c, "Shipments retrieved successfully", mapShipments(shipments))
}

func (h *ShipmentHandler) GetMyShipments(c *fiber.Ctx) error {
	caller := middleware.CallerFromContext(c)

	shipments, err := h.shipmentService.ListMine(c.UserContext(), caller)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return sharedHTTP.SuccessResponse(c, "Shipments retrieved successfully", mapShipments(shipments))
}

// TrackShipment is the public lookup. The response never carries the sender
// reference.
func (h *ShipmentHandler) TrackShipment(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")
	if trackingNumber == "" {
		return sharedHTTP.BadRequestResponse(c, "Tracking number is required", nil)
	}

	shipment, err := h.shipmentService.TrackByNumber(c.UserContext(), trackingNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sharedHTTP.NotFoundResponse(c, "Shipment not found")
		}
		return h.mapServiceError(c, err)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment retrieved successfully", mapPublicShipment(shipment))
}

func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var request CreateShipmentRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	caller := middleware.CallerFromContext(c)

	shipment, err := h.shipmentService.Create(c.UserContext(), caller, request.ToDraft())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return sharedHTTP.ConflictResponse(c, "Tracking number already exists", map[string]interface{}{
				"tracking_number": request.TrackingNumber,
			})
		}
		return h.mapServiceError(c, err)
	}

	log.Printf("Shipment created: %s (%s)", shipment.TrackingNumber, shipment.ID)
	return sharedHTTP.CreatedResponse(c, "Shipment created successfully", mapShipment(shipment))
}

func (h *ShipmentHandler) EditShipment(c *fiber.Ctx) error {
	shipmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid shipment ID", map[string]interface{}{
			"shipment_id": c.Params("id"),
		})
	}

	var patch domain.ShipmentPatch
	if err := c.BodyParser(&patch); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	caller := middleware.CallerFromContext(c)

	shipment, err := h.shipmentService.Edit(c.UserContext(), caller, shipmentID, patch)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment updated successfully", mapShipment(shipment))
}

func (h *ShipmentHandler) DeleteShipment(c *fiber.Ctx) error {
	shipmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid shipment ID", map[string]interface{}{
			"shipment_id": c.Params("id"),
		})
	}

	deleted, err := h.shipmentService.Delete(c.UserContext(), shipmentID)
	if err != nil {
		return h.mapServiceError(c, err)
	}
	if !deleted {
		return sharedHTTP.NotFoundResponse(c, "Shipment not found")
	}

	return sharedHTTP.SuccessResponse(c, "Shipment deleted successfully", nil)
}

func (h *ShipmentHandler) ChangeShipmentStatus(c *fiber.Ctx) error {
	shipmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid shipment ID", map[string]interface{}{
			"shipment_id": c.Params("id"),
		})
	}

	var request domain.ChangeStatusRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.Status == "" {
		return sharedHTTP.BadRequestResponse(c, "Status is required", nil)
	}

	caller := middleware.CallerFromContext(c)

	shipment, err := h.shipmentService.ChangeStatus(c.UserContext(), caller, shipmentID, request)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return sharedHTTP.SuccessResponse(c, "Shipment status updated successfully", mapShipment(shipment))
}

func (h *ShipmentHandler) ReplyToShipment(c *fiber.Ctx) error {
	shipmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid shipment ID", map[string]interface{}{
			"shipment_id": c.Params("id"),
		})
	}

	var request domain.ReplyRequest
	if err := c.BodyParser(&request); err != nil {
		return sharedHTTP.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.Message == "" {
		return sharedHTTP.BadRequestResponse(c, "Message is required", nil)
	}

	caller := middleware.CallerFromContext(c)

	shipment, err := h.shipmentService.Reply(c.UserContext(), caller, shipmentID, request.Message)
	if err != nil {
		return h.mapServiceError(c, err)
	}

	return sharedHTTP.SuccessResponse(c, "Reply added successfully", mapShipment(shipment))
}

func (h *ShipmentHandler) GenerateMissingQRCodes(c *fiber.Ctx) error {
	report, err := h.shipmentService.BackfillQRCodes(c.UserContext())
	if err != nil {
		return h.mapServiceError(c, err)
	}

	log.Printf("QR backfill finished: %d generated out of %d checked (%d errors)",
		report.GeneratedCount, report.TotalChecked, len(report.Errors))
	return sharedHTTP.SuccessResponse(c, "QR code generation completed", report)
}

func (h *ShipmentHandler) mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return sharedHTTP.NotFoundResponse(c, "Shipment not found")
	case errors.Is(err, domain.ErrForbidden):
		return sharedHTTP.ForbiddenResponse(c, "You do not have permission to perform this action")
	case errors.Is(err, domain.ErrConflict):
		return sharedHTTP.ConflictResponse(c, "Shipment conflicts with an existing record", nil)
	default:
		log.Printf("Shipment operation failed: %v", err)
		return sharedHTTP.InternalServerErrorResponse(c, "Internal server error", nil)
	}
}
