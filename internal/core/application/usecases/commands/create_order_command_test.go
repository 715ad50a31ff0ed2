package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	businessID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID:  businessID,
		Platform:    order.PlatformYemeksepeti,
		OrderNumber: "YS-7731",
		Customer:    order.Customer{Name: "Ayşe Yılmaz", Phone: "+905551112233"},
		Location:    point,
		Items:       []string{"İskender"},
		TotalPrice:  "180 TL",
	})

	require.NoError(t, err)
	assert.Equal(t, businessID, cmd.BusinessID())
	assert.Equal(t, order.PlatformYemeksepeti, cmd.Platform())
	assert.Equal(t, "YS-7731", cmd.OrderNumber())
	assert.Equal(t, "Ayşe Yılmaz", cmd.Customer().Name)
	assert.Equal(t, point, cmd.Location())
	assert.Equal(t, []string{"İskender"}, cmd.Items())
	assert.Equal(t, "180 TL", cmd.TotalPrice())
}

func TestNewCreateOrderCommand_RequiresCustomerName(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID: kernel.NewUUID(),
		Platform:   order.PlatformGetir,
		Customer:   order.Customer{Phone: "+905551112233"},
	})

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_InvalidBusinessID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		Platform: order.PlatformGetir,
		Customer: order.Customer{Name: "Ayşe Yılmaz"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidPlatform(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID: kernel.NewUUID(),
		Platform:   order.Platform("Fax Orders"),
		Customer:   order.Customer{Name: "Ayşe Yılmaz"},
	})

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_DefaultsEmptyPrice(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID: kernel.NewUUID(),
		Platform:   order.PlatformManual,
		Customer:   order.Customer{Name: "Ayşe Yılmaz"},
	})

	require.NoError(t, err)
	assert.Equal(t, "0 TL", cmd.TotalPrice())
}

func TestNewCreateOrderCommand_AcceptsZeroLocation(t *testing.T) {
	// Payloads without usable coordinates still become orders.
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		BusinessID: kernel.NewUUID(),
		Platform:   order.PlatformTrendyol,
		Customer:   order.Customer{Name: "Ayşe Yılmaz"},
	})

	require.NoError(t, err)
	assert.True(t, cmd.Location().IsZero())
}
