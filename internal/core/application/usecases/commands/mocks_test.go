package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/background"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ClaimIfUnassigned(
	ctx context.Context, orderID, courierID kernel.UUID, at time.Time,
) (bool, error) {
	args := m.Called(ctx, orderID, courierID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CompleteIfActive(
	ctx context.Context, orderID kernel.UUID, at time.Time,
) (bool, error) {
	args := m.Called(ctx, orderID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CancelIfActive(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetActiveByBusiness(
	ctx context.Context, businessID kernel.UUID,
) ([]*courier.Courier, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllActive(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockBusinessRepository struct{ mock.Mock }

func (m *MockBusinessRepository) Add(ctx context.Context, b *business.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepository) Update(ctx context.Context, b *business.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*business.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetByCode(ctx context.Context, code string) (*business.Business, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*business.Business), args.Error(1)
}

// mockTx implements the transaction lifecycle shared by every unit of
// work mock.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierUoW struct{ mockTx }

func (m *MockCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockOrderCourierUoW struct{ mockTx }

func (m *MockOrderCourierUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockOrderCourierUoWFactory struct{ mock.Mock }

func (m *MockOrderCourierUoWFactory) Create() commands.OrderCourierUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderCourierUoW)
}

type MockOrderBusinessUoW struct{ mockTx }

func (m *MockOrderBusinessUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderBusinessUoW) BusinessRepository() ports.BusinessRepository {
	args := m.Called()
	return args.Get(0).(ports.BusinessRepository)
}

type MockOrderBusinessUoWFactory struct{ mock.Mock }

func (m *MockOrderBusinessUoWFactory) Create() commands.OrderBusinessUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderBusinessUoW)
}

type MockPlatformGateway struct{ mock.Mock }

func (m *MockPlatformGateway) ReportDelivered(
	ctx context.Context, aggregate *order.Order, cred business.APICredential,
) error {
	args := m.Called(ctx, aggregate, cred)
	return args.Error(0)
}

// recordingPushGateway captures push batches so handler tests can assert
// which notifications went out.
type recordingPushGateway struct {
	mu      sync.Mutex
	batches [][]ports.PushMessage
}

func (g *recordingPushGateway) Send(_ context.Context, messages []ports.PushMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.batches = append(g.batches, messages)
	return nil
}

func (g *recordingPushGateway) ValidToken(token string) bool {
	return token != ""
}

func (g *recordingPushGateway) sent() []ports.PushMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	var all []ports.PushMessage
	for _, batch := range g.batches {
		all = append(all, batch...)
	}
	return all
}

func newTestFanout(gateway ports.PushGateway) *notifications.Fanout {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notifications.NewFanout(gateway, background.NewSyncRunner(), logger)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func istanbulPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)
	return point
}

func newActiveOrder(t *testing.T, businessID kernel.UUID) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), businessID, order.PlatformTrendyol, "TY-4821",
		order.Customer{Name: "Ayşe Yılmaz", Phone: "+905551112233", Address: "Kadıköy"},
		istanbulPoint(t), []string{"Adana Dürüm"}, "245.50 TL", time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func newOrderWithStatus(
	t *testing.T, businessID kernel.UUID, status order.Status, courierID *kernel.UUID,
) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	var claimedAt *time.Time
	if courierID != nil {
		claimedAt = &now
	}
	aggregate, err := order.RestoreOrder(order.RestoreParams{
		ID:          kernel.NewUUID(),
		BusinessID:  businessID,
		Platform:    order.PlatformTrendyol,
		OrderNumber: "TY-4821",
		Customer:    order.Customer{Name: "Ayşe Yılmaz"},
		Location:    istanbulPoint(t),
		Items:       []string{"Adana Dürüm"},
		TotalPrice:  "245.50 TL",
		OrderTime:   now,
		Status:      status,
		CourierID:   courierID,
		ClaimedAt:   claimedAt,
	})
	require.NoError(t, err)
	return aggregate
}

func newTestCourier(t *testing.T, businessID kernel.UUID, name string) *courier.Courier {
	t.Helper()
	aggregate, err := courier.NewCourier(
		kernel.NewUUID(), businessID, "mehmet.d", "$2a$10$hash", name,
		"+905554445566", courier.RoleCourier,
	)
	require.NoError(t, err)
	return aggregate
}
