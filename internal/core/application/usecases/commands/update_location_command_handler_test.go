package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateLocationCommandHandler_Handle_PersistsAndCaches(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	testCourier := newTestCourier(t, businessID, "Mehmet Demir")
	point := istanbulPoint(t)

	cmd, err := commands.NewUpdateLocationCommand(testCourier.ID(), point)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockCourierUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, testCourier.ID()).Return(testCourier, nil).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := locations.NewCache()
	handler := commands.NewUpdateLocationCommandHandler(factory, cache)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	updated := courierRepo.Calls[1].Arguments[1].(*courier.Courier)
	assert.Equal(t, point, updated.Location())
	require.NotNil(t, updated.LastLocationUpdate())

	snapshot := cache.Snapshot(businessID, time.Now().UTC())
	require.Len(t, snapshot, 1)
	assert.Equal(t, testCourier.ID(), snapshot[0].CourierID)
	assert.Equal(t, point, snapshot[0].Position)
	assert.False(t, snapshot[0].IsStale)
}

func TestUpdateLocationCommandHandler_Handle_CourierNotFound(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewUpdateLocationCommand(courierID, istanbulPoint(t))
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockCourierUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, courierID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := locations.NewCache()
	handler := commands.NewUpdateLocationCommandHandler(factory, cache)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, cache.Snapshot(kernel.NewUUID(), time.Now().UTC()))
}

func TestUpdateLocationCommandHandler_Handle_UpdateErrorSkipsCache(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	testCourier := newTestCourier(t, businessID, "Mehmet Demir")

	cmd, err := commands.NewUpdateLocationCommand(testCourier.ID(), istanbulPoint(t))
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockCourierUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, testCourier.ID()).Return(testCourier, nil).Once(),
		courierRepo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).
			Return(errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := locations.NewCache()
	handler := commands.NewUpdateLocationCommandHandler(factory, cache)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	assert.Empty(t, cache.Snapshot(businessID, time.Now().UTC()))
}

func TestNewUpdateLocationCommand_RejectsZeroPoint(t *testing.T) {
	_, err := commands.NewUpdateLocationCommand(kernel.NewUUID(), kernel.GeoPoint{})

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUpdateLocationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateLocationCommand{} // not constructed properly

	factory := new(MockCourierUoWFactory)
	handler := commands.NewUpdateLocationCommandHandler(factory, locations.NewCache())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateLocationCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
