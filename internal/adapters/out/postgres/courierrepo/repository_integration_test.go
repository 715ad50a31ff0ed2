package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite exercises CourierRepository
// against a real PostgreSQL container.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testCourier := suite.createTestCourier(kernel.NewUUID(), "mehmet", "Mehmet Demir")
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	retrieved, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)

	suite.Equal(testCourier.ID(), retrieved.ID())
	suite.Equal("mehmet", retrieved.Username())
	suite.Equal("Mehmet Demir", retrieved.Name())
	suite.Equal(courier.RoleCourier, retrieved.Role())
	suite.True(retrieved.IsActive())
	suite.True(retrieved.Location().IsZero())
	suite.Nil(retrieved.LastLocationUpdate())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsPositionReport() {
	ctx := context.Background()

	testCourier := suite.createTestCourier(kernel.NewUUID(), "ali", "Ali Kaya")
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	position, err := kernel.NewGeoPoint(41.0351, 28.9833)
	suite.Require().NoError(err)
	reportedAt := time.Now().UTC().Truncate(time.Millisecond)
	suite.Require().NoError(testCourier.MoveTo(position, reportedAt))

	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	retrieved, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.InDelta(41.0351, retrieved.Location().Latitude(), 1e-9)
	suite.InDelta(28.9833, retrieved.Location().Longitude(), 1e-9)
	suite.Require().NotNil(retrieved.LastLocationUpdate())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()

	testCourier := suite.createTestCourier(kernel.NewUUID(), "veli", "Veli Şahin")
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	testCourier.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	retrieved, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsActive())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetActiveByBusiness_FiltersBusinessAndActivity() {
	ctx := context.Background()

	businessID := kernel.NewUUID()
	otherBusinessID := kernel.NewUUID()

	active := suite.createTestCourier(businessID, "aktif", "Aktif Kurye")
	inactive := suite.createTestCourier(businessID, "pasif", "Pasif Kurye")
	inactive.Deactivate()
	elsewhere := suite.createTestCourier(otherBusinessID, "baska", "Başka İşletme")

	for _, c := range []*courier.Courier{active, inactive, elsewhere} {
		suite.tracker.On("TrackAggregate", c.ID(), c).Once()
		suite.Require().NoError(suite.repository.Add(ctx, c))
	}

	couriers, err := suite.repository.GetActiveByBusiness(ctx, businessID)
	suite.Require().NoError(err)
	suite.Require().Len(couriers, 1)
	suite.Equal(active.ID(), couriers[0].ID())

	all, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(
	businessID kernel.UUID, username, name string,
) *courier.Courier {
	c, err := courier.NewCourier(
		kernel.NewUUID(), businessID, username, "$2a$10$hash", name, "+905550000000",
		courier.RoleCourier,
	)
	suite.Require().NoError(err)
	return c
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
