package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment_Defaults(t *testing.T) {
	shipment := NewShipment(Shipment{
		SenderName: "Ada Obi",
		Origin:     "Lagos",
	})

	assert.NotEqual(t, uuid.Nil, shipment.ID)
	assert.Equal(t, StatusPending, shipment.Status)
	assert.True(t, strings.HasPrefix(shipment.TrackingNumber, "TRK_"))

	require.Len(t, shipment.TrackingHistory, 1)
	assert.Equal(t, StatusPending, shipment.TrackingHistory[0].Status)
	assert.Equal(t, "Lagos", shipment.TrackingHistory[0].Location)
	assert.Empty(t, shipment.Replies)
}

func TestNewShipment_KeepsProvidedTrackingNumber(t *testing.T) {
	shipment := NewShipment(Shipment{TrackingNumber: "TRK001"})

	assert.Equal(t, "TRK001", shipment.TrackingNumber)
}

func TestNewShipment_InitialHistoryMatchesStatus(t *testing.T) {
	shipment := NewShipment(Shipment{Status: "processing"})

	require.Len(t, shipment.TrackingHistory, 1)
	assert.Equal(t, shipment.Status, shipment.TrackingHistory[0].Status)
}

func TestShipment_ApplyStatus(t *testing.T) {
	shipment := NewShipment(Shipment{Origin: "Lagos"})

	event := shipment.ApplyStatus("in-transit", "Lagos Hub")

	assert.Equal(t, "in-transit", shipment.Status)
	require.Len(t, shipment.TrackingHistory, 2)
	assert.Equal(t, event, shipment.TrackingHistory[1])
	// Status always mirrors the newest history entry.
	assert.Equal(t, shipment.Status, shipment.TrackingHistory[len(shipment.TrackingHistory)-1].Status)
}

func TestShipment_AddReply(t *testing.T) {
	shipment := NewShipment(Shipment{})
	userID := uuid.New()

	reply := shipment.AddReply("Package is on its way", &userID)

	require.Len(t, shipment.Replies, 1)
	assert.Equal(t, "Package is on its way", reply.Message)
	require.NotNil(t, reply.UserID)
	assert.Equal(t, userID, *reply.UserID)
	assert.NotEqual(t, uuid.Nil, reply.ID)
}

func TestGenerateTrackingNumber_Format(t *testing.T) {
	number := GenerateTrackingNumber()

	assert.True(t, strings.HasPrefix(number, "TRK_"))
	assert.Len(t, number, 12)
	assert.Equal(t, strings.ToUpper(number), number)
}

func TestCaller_HasRole(t *testing.T) {
	caller := &Caller{ID: uuid.New(), Role: RoleAgent}

	assert.True(t, caller.HasRole(RoleAdmin, RoleAgent))
	assert.False(t, caller.HasRole(RoleAdmin))

	var nobody *Caller
	assert.False(t, nobody.HasRole(RoleAdmin))
}

func TestShipmentPatch_Apply(t *testing.T) {
	shipment := NewShipment(Shipment{
		RecipientName: "John",
		Origin:        "Lagos",
		Weight:        2.5,
	})
	before := shipment.Status

	newName := "Jane"
	newWeight := 4.0
	patch := ShipmentPatch{
		RecipientName: &newName,
		Weight:        &newWeight,
	}
	patch.Apply(shipment)

	assert.Equal(t, "Jane", shipment.RecipientName)
	assert.Equal(t, 4.0, shipment.Weight)
	assert.Equal(t, "Lagos", shipment.Origin)
	assert.Equal(t, before, shipment.Status)
	assert.Len(t, shipment.TrackingHistory, 1)
}
