package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacilityTestApp(t *testing.T, store *repository.MemoryFacilityStore) *fiber.App {
	t.Helper()

	handler := NewFacilityHandler(store)
	app := fiber.New()
	app.Post("/api/facilities", handler.CreateFacility)
	app.Put("/api/facilities/:id", handler.UpdateFacility)
	app.Patch("/api/facilities/:id/toggle", handler.ToggleFacilityStatus)
	return app
}

func newStatusTestApp(t *testing.T, store *repository.MemoryStatusStore) *fiber.App {
	t.Helper()

	handler := NewStatusHandler(store)
	app := fiber.New()
	app.Post("/api/statuses", handler.CreateStatus)
	app.Put("/api/statuses/:id", handler.UpdateStatus)
	app.Patch("/api/statuses/:id/toggle", handler.ToggleStatusActive)
	return app
}

func newSlideTestApp(t *testing.T, store *repository.MemoryMessageSlideStore) *fiber.App {
	t.Helper()

	handler := NewMessageSlideHandler(store)
	app := fiber.New()
	app.Post("/api/messageslides", handler.CreateSlide)
	app.Put("/api/messageslides/:id", handler.UpdateSlide)
	return app
}

func TestCreateFacility_RequiresNameAndCountry(t *testing.T) {
	app := newFacilityTestApp(t, repository.NewMemoryFacilityStore())

	req := httptest.NewRequest("POST", "/api/facilities", strings.NewReader(`{"country":"Nigeria"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/facilities", strings.NewReader(`{"name":"Lagos Hub"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateFacility_DuplicateNameConflicts(t *testing.T) {
	store := repository.NewMemoryFacilityStore()
	app := newFacilityTestApp(t, store)

	body := `{"name":"Lagos Hub","country":"Nigeria"}`
	req := httptest.NewRequest("POST", "/api/facilities", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/facilities", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdateFacility_KeepsOmittedFields(t *testing.T) {
	store := repository.NewMemoryFacilityStore()
	facility := &domain.Facility{
		ID:           uuid.New(),
		Name:         "Lagos Hub",
		Code:         "LAG-01",
		Country:      "Nigeria",
		City:         "Lagos",
		ContactPhone: "+2348012345678",
		Capacity:     500,
		IsActive:     true,
	}
	require.NoError(t, store.Create(context.Background(), facility))

	app := newFacilityTestApp(t, store)
	req := httptest.NewRequest("PUT", "/api/facilities/"+facility.ID.String(),
		strings.NewReader(`{"city":"Ikeja"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := store.GetByID(context.Background(), facility.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ikeja", stored.City)
	assert.Equal(t, "Lagos Hub", stored.Name)
	assert.Equal(t, "LAG-01", stored.Code)
	assert.Equal(t, "+2348012345678", stored.ContactPhone)
	assert.Equal(t, 500.0, stored.Capacity)
	assert.True(t, stored.IsActive)
}

func TestToggleFacilityStatus_FlipsActiveFlag(t *testing.T) {
	store := repository.NewMemoryFacilityStore()
	facility := &domain.Facility{
		ID:       uuid.New(),
		Name:     "Abuja Hub",
		Country:  "Nigeria",
		IsActive: true,
	}
	require.NoError(t, store.Create(context.Background(), facility))

	app := newFacilityTestApp(t, store)
	target := "/api/facilities/" + facility.ID.String() + "/toggle"

	resp, err := app.Test(httptest.NewRequest("PATCH", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := store.GetByID(context.Background(), facility.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	resp, err = app.Test(httptest.NewRequest("PATCH", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err = store.GetByID(context.Background(), facility.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestCreateStatus_DefaultsCategoryAndColor(t *testing.T) {
	store := repository.NewMemoryStatusStore()
	app := newStatusTestApp(t, store)

	req := httptest.NewRequest("POST", "/api/statuses", strings.NewReader(`{"name":"Awaiting Pickup"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data domain.ShipmentStatus `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, domain.StatusCategoryOther, envelope.Data.Category)
	assert.Equal(t, domain.DefaultStatusColor, envelope.Data.Color)
	assert.True(t, envelope.Data.IsActive)

	stored, err := store.GetByID(context.Background(), envelope.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCategoryOther, stored.Category)
	assert.Equal(t, domain.DefaultStatusColor, stored.Color)
}

func TestCreateStatus_RejectsUnknownCategory(t *testing.T) {
	app := newStatusTestApp(t, repository.NewMemoryStatusStore())

	req := httptest.NewRequest("POST", "/api/statuses",
		strings.NewReader(`{"name":"Awaiting Pickup","category":"bogus"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatus_KeepsOmittedFields(t *testing.T) {
	store := repository.NewMemoryStatusStore()
	status := &domain.ShipmentStatus{
		ID:           uuid.New(),
		Name:         "In Transit",
		Color:        "#2196F3",
		Category:     domain.StatusCategoryInTransit,
		DisplayOrder: 3,
		IsActive:     true,
	}
	require.NoError(t, store.Create(context.Background(), status))

	app := newStatusTestApp(t, store)
	req := httptest.NewRequest("PUT", "/api/statuses/"+status.ID.String(),
		strings.NewReader(`{"description":"Parcel is on the road"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := store.GetByID(context.Background(), status.ID)
	require.NoError(t, err)
	assert.Equal(t, "Parcel is on the road", stored.Description)
	assert.Equal(t, "In Transit", stored.Name)
	assert.Equal(t, "#2196F3", stored.Color)
	assert.Equal(t, domain.StatusCategoryInTransit, stored.Category)
	assert.Equal(t, 3, stored.DisplayOrder)
	assert.True(t, stored.IsActive)
}

func TestUpdateSlide_TitleOnlyKeepsDisplayOrder(t *testing.T) {
	store := repository.NewMemoryMessageSlideStore()
	slide := &domain.MessageSlide{
		ID:              uuid.New(),
		Title:           "Holiday schedule",
		Message:         "Deliveries pause on public holidays",
		DisplayOrder:    5,
		IsActive:        true,
		BackgroundColor: domain.DefaultSlideBackground,
	}
	require.NoError(t, store.Create(context.Background(), slide))

	app := newSlideTestApp(t, store)
	req := httptest.NewRequest("PUT", "/api/messageslides/"+slide.ID.String(),
		strings.NewReader(`{"title":"Updated holiday schedule"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := store.GetByID(context.Background(), slide.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated holiday schedule", stored.Title)
	assert.Equal(t, 5, stored.DisplayOrder)
	assert.Equal(t, "Deliveries pause on public holidays", stored.Message)
	assert.True(t, stored.IsActive)
}

func TestUpdateSlide_ExplicitZeroDisplayOrderApplies(t *testing.T) {
	store := repository.NewMemoryMessageSlideStore()
	slide := &domain.MessageSlide{
		ID:           uuid.New(),
		Title:        "Holiday schedule",
		Message:      "Deliveries pause on public holidays",
		DisplayOrder: 5,
		IsActive:     true,
	}
	require.NoError(t, store.Create(context.Background(), slide))

	app := newSlideTestApp(t, store)
	req := httptest.NewRequest("PUT", "/api/messageslides/"+slide.ID.String(),
		strings.NewReader(`{"display_order":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := store.GetByID(context.Background(), slide.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.DisplayOrder)
}
