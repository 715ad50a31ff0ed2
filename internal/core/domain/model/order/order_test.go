package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) *order.Order {
	t.Helper()

	location, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.PlatformTrendyol,
		"TY-4821",
		order.Customer{Name: "Ahmet Yilmaz", Phone: "+905551112233", Address: "Ataturk Cd. No:1"},
		location,
		[]string{"Burger Menu", "Cola"},
		"150 TL",
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order enters pool", func(t *testing.T) {
		o := validOrder(t)

		assert.Equal(t, order.StatusActive, o.Status())
		assert.Nil(t, o.Courier())
		assert.Nil(t, o.ClaimedAt())
		assert.True(t, o.IsInPool())
	})

	t.Run("requires order number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.PlatformManual, "",
			order.Customer{Name: "x"}, kernel.GeoPoint{}, nil, "0 TL", time.Now(),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderNumber")
	})

	t.Run("requires customer name", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.PlatformManual, "MN-1",
			order.Customer{}, kernel.GeoPoint{}, nil, "0 TL", time.Now(),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customerName")
	})

	t.Run("requires business id", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.UUID{}, order.PlatformManual, "MN-1",
			order.Customer{Name: "x"}, kernel.GeoPoint{}, nil, "0 TL", time.Now(),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "businessId")
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.Platform("DoorDash"), "DD-1",
			order.Customer{Name: "x"}, kernel.GeoPoint{}, nil, "0 TL", time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("zero location is allowed", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.PlatformManual, "MN-1",
			order.Customer{Name: "x"}, kernel.GeoPoint{}, nil, "0 TL", time.Now(),
		)
		require.NoError(t, err)
		assert.True(t, o.Location().IsZero())
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("first claim wins and sets claimedAt", func(t *testing.T) {
		o := validOrder(t)
		courierID := kernel.NewUUID()
		at := time.Now()

		require.NoError(t, o.Claim(courierID, at))
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))
		require.NotNil(t, o.ClaimedAt())
		assert.Equal(t, at, *o.ClaimedAt())
		assert.False(t, o.IsInPool())
	})

	t.Run("re-claim by owner is a no-op and keeps claimedAt", func(t *testing.T) {
		o := validOrder(t)
		courierID := kernel.NewUUID()
		first := time.Now()

		require.NoError(t, o.Claim(courierID, first))
		require.NoError(t, o.Claim(courierID, first.Add(time.Minute)))

		assert.Equal(t, first, *o.ClaimedAt())
	})

	t.Run("claim by another courier conflicts", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID(), time.Now()))

		err := o.Claim(kernel.NewUUID(), time.Now())
		assert.ErrorIs(t, err, order.ErrClaimedByAnotherCourier)
	})

	t.Run("completed order cannot be claimed", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.Complete(time.Now()))

		err := o.Claim(kernel.NewUUID(), time.Now())
		require.Error(t, err)
	})

	t.Run("invalid courier id is rejected", func(t *testing.T) {
		o := validOrder(t)
		require.Error(t, o.Claim(kernel.UUID{}, time.Now()))
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("active to completed sets delivery time", func(t *testing.T) {
		o := validOrder(t)
		at := time.Now()

		require.NoError(t, o.Complete(at))
		assert.Equal(t, order.StatusCompleted, o.Status())
		require.NotNil(t, o.DeliveryTime())
		assert.Equal(t, at, *o.DeliveryTime())
	})

	t.Run("completing twice fails", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.Complete(time.Now()))
		require.Error(t, o.Complete(time.Now()))
	})

	t.Run("cancelled order cannot complete", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.Cancel())
		require.Error(t, o.Complete(time.Now()))
	})
}

func TestOrder_Cancel(t *testing.T) {
	o := validOrder(t)

	require.NoError(t, o.Cancel())
	assert.Equal(t, order.StatusCancelled, o.Status())
	assert.Nil(t, o.DeliveryTime())

	require.Error(t, o.Cancel())
}

func TestOrder_Rate(t *testing.T) {
	t.Run("valid rating with comment", func(t *testing.T) {
		o := validOrder(t)

		require.NoError(t, o.Rate(5, "fast delivery"))
		require.NotNil(t, o.Rating())
		assert.Equal(t, 5, *o.Rating())
		require.NotNil(t, o.RatingNote())
		assert.Equal(t, "fast delivery", *o.RatingNote())
	})

	t.Run("empty comment stays nil", func(t *testing.T) {
		o := validOrder(t)
		require.NoError(t, o.Rate(3, ""))
		assert.Nil(t, o.RatingNote())
	})

	t.Run("out of range ratings rejected", func(t *testing.T) {
		o := validOrder(t)
		require.Error(t, o.Rate(0, ""))
		require.Error(t, o.Rate(6, ""))
		assert.Nil(t, o.Rating())
	})
}

func TestOrder_AttachPhoto(t *testing.T) {
	o := validOrder(t)

	require.Error(t, o.AttachPhoto(""))
	require.NoError(t, o.AttachPhoto("base64data"))
	require.NotNil(t, o.Photo())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trip keeps claimed state", func(t *testing.T) {
		courierID := kernel.NewUUID()
		claimedAt := time.Now().Add(-time.Hour)
		location, err := kernel.NewGeoPoint(41, 29)
		require.NoError(t, err)

		o, err := order.RestoreOrder(order.RestoreParams{
			ID:          kernel.NewUUID(),
			BusinessID:  kernel.NewUUID(),
			Platform:    order.PlatformGetir,
			OrderNumber: "GY-1001",
			Customer:    order.Customer{Name: "Ayse Kaya"},
			Location:    location,
			Items:       []string{"Doner"},
			TotalPrice:  "85 TL",
			OrderTime:   time.Now().Add(-2 * time.Hour),
			Status:      order.StatusActive,
			CourierID:   &courierID,
			ClaimedAt:   &claimedAt,
		})
		require.NoError(t, err)

		assert.True(t, o.Courier().IsEqual(courierID))
		assert.Equal(t, claimedAt, *o.ClaimedAt())
		assert.False(t, o.IsInPool())
	})

	t.Run("invalid persisted status rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{
			ID:          kernel.NewUUID(),
			BusinessID:  kernel.NewUUID(),
			Platform:    order.PlatformManual,
			OrderNumber: "MN-1",
			Customer:    order.Customer{Name: "x"},
			OrderTime:   time.Now(),
			Status:      order.StatusUnknown,
		})
		require.Error(t, err)
	})

	t.Run("invalid persisted rating rejected", func(t *testing.T) {
		rating := 9
		_, err := order.RestoreOrder(order.RestoreParams{
			ID:          kernel.NewUUID(),
			BusinessID:  kernel.NewUUID(),
			Platform:    order.PlatformManual,
			OrderNumber: "MN-1",
			Customer:    order.Customer{Name: "x"},
			OrderTime:   time.Now(),
			Status:      order.StatusCompleted,
			Rating:      &rating,
		})
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	var notConstructed order.Order
	assert.ErrorIs(t, notConstructed.Validate(), order.ErrOrderIsNotConstructed)

	o := validOrder(t)
	require.NoError(t, o.Validate())
}
