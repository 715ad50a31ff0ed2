package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// nopTracker satisfies the repositories' aggregate tracking; the suite
// asserts through responses and re-reads instead.
type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type orderCourierUoWFactory struct{ factory *postgres.GormUnitOfWorkFactory }

func (f orderCourierUoWFactory) Create() commands.OrderCourierUoW { return f.factory.Create() }

type courierUoWFactory struct{ factory *postgres.GormUnitOfWorkFactory }

func (f courierUoWFactory) Create() commands.CourierUoW { return f.factory.Create() }

// ServerIntegrationTestSuite drives the claim and courier endpoints
// against a real PostgreSQL container, with the full handler chain wired
// the way the composition root wires it.
type ServerIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB

	server   *Server
	cache    *locations.Cache
	orders   *orderrepo.GormOrderRepository
	couriers *courierrepo.GormCourierRepository
}

func (suite *ServerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierDTO{}))
}

func (suite *ServerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, couriers").Error)

	suite.orders = orderrepo.NewGormOrderRepository(suite.db, nopTracker{})
	suite.couriers = courierrepo.NewGormCourierRepository(suite.db, nopTracker{})
	suite.cache = locations.NewCache()

	uowFactory := postgres.NewGormUnitOfWorkFactory(suite.db)
	suite.server = NewServer(ServerParams{
		ClaimOrderHandler:        commands.NewClaimOrderCommandHandler(orderCourierUoWFactory{uowFactory}),
		DeactivateCourierHandler: commands.NewDeactivateCourierCommandHandler(courierUoWFactory{uowFactory}, suite.cache),
		GetOrderHandler:          queries.NewGetOrderQueryHandler(suite.db),
		LocationCache:            suite.cache,
		Couriers:                 suite.couriers,
		Timezone:                 time.UTC,
	})
}

func (suite *ServerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ServerIntegrationTestSuite) TestClaimOrder_ReturnsClaimedOrderWithOwner() {
	businessID := kernel.NewUUID()
	claimer := suite.addCourier(businessID, "mehmet.d", "Mehmet Demir")
	testOrder := suite.addOrder(businessID)

	rec, c := suite.newRequest(http.MethodPatch, claimsFor(claimer))
	c.SetParamNames("id")
	c.SetParamValues(testOrder.ID().String())

	suite.Require().NoError(suite.server.ClaimOrder(c))
	suite.Equal(http.StatusOK, rec.Code)

	var body orderResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))

	suite.Equal(testOrder.ID().String(), body.ID)
	suite.Equal("TY-4821", body.OrderNumber)
	suite.Equal("active", body.Status)
	suite.Require().NotNil(body.CourierID)
	suite.Equal(claimer.ID().String(), *body.CourierID)
	suite.Require().NotNil(body.CourierName)
	suite.Equal("Mehmet Demir", *body.CourierName)
	suite.Require().NotNil(body.ClaimedAt)
}

func (suite *ServerIntegrationTestSuite) TestClaimOrder_AlreadyOwned_Returns400WithOwner() {
	businessID := kernel.NewUUID()
	owner := suite.addCourier(businessID, "mehmet.d", "Mehmet Demir")
	challenger := suite.addCourier(businessID, "ali.k", "Ali Kaya")
	testOrder := suite.addOrder(businessID)

	won, err := suite.orders.ClaimIfUnassigned(
		context.Background(), testOrder.ID(), owner.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().True(won)

	rec, c := suite.newRequest(http.MethodPatch, claimsFor(challenger))
	c.SetParamNames("id")
	c.SetParamValues(testOrder.ID().String())

	suite.Require().NoError(suite.server.ClaimOrder(c))
	suite.Equal(http.StatusBadRequest, rec.Code)

	var body errorResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("Mehmet Demir", body.ClaimedBy)
}

func (suite *ServerIntegrationTestSuite) TestDeactivateCourier_RemovesFromDutyAndMap() {
	businessID := kernel.NewUUID()
	member := suite.addCourier(businessID, "mehmet.d", "Mehmet Demir")

	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	suite.Require().NoError(err)
	suite.Require().NoError(member.MoveTo(point, time.Now().UTC()))
	suite.Require().NoError(suite.couriers.Update(context.Background(), member))
	suite.cache.Put(member)
	suite.Require().Len(suite.cache.Snapshot(businessID, time.Now().UTC()), 1)

	manager := &Claims{CallerID: kernel.NewUUID().String(), BusinessID: businessID.String(), Role: "manager"}
	rec, c := suite.newRequest(http.MethodDelete, manager)
	c.SetParamNames("id")
	c.SetParamValues(member.ID().String())

	suite.Require().NoError(suite.server.DeactivateCourier(c))
	suite.Equal(http.StatusNoContent, rec.Code)

	stored, err := suite.couriers.Get(context.Background(), member.ID())
	suite.Require().NoError(err)
	suite.False(stored.IsActive())
	suite.Empty(suite.cache.Snapshot(businessID, time.Now().UTC()))
}

func (suite *ServerIntegrationTestSuite) TestGetBusinessCouriers_ListsActiveOnly() {
	businessID := kernel.NewUUID()
	active := suite.addCourier(businessID, "ali.k", "Ali Kaya")

	former := suite.addCourier(businessID, "mehmet.d", "Mehmet Demir")
	former.Deactivate()
	suite.Require().NoError(suite.couriers.Update(context.Background(), former))

	manager := &Claims{CallerID: kernel.NewUUID().String(), BusinessID: businessID.String(), Role: "manager"}
	rec, c := suite.newRequest(http.MethodGet, manager)
	c.SetParamNames("businessId")
	c.SetParamValues(businessID.String())

	suite.Require().NoError(suite.server.GetBusinessCouriers(c))
	suite.Equal(http.StatusOK, rec.Code)

	var body []businessCourierResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal(active.ID().String(), body[0].ID)
	suite.Equal("Ali Kaya", body[0].Name)
	suite.Equal("courier", body[0].Role)
}

func (suite *ServerIntegrationTestSuite) TestGetBusinessCouriers_OtherBusiness_Forbidden() {
	businessID := kernel.NewUUID()
	suite.addCourier(businessID, "ali.k", "Ali Kaya")

	outsider := &Claims{CallerID: kernel.NewUUID().String(), BusinessID: kernel.NewUUID().String(), Role: "manager"}
	_, c := suite.newRequest(http.MethodGet, outsider)
	c.SetParamNames("businessId")
	c.SetParamValues(businessID.String())

	err := suite.server.GetBusinessCouriers(c)
	suite.Require().Error(err)

	var httpErr *echo.HTTPError
	suite.Require().ErrorAs(err, &httpErr)
	suite.Equal(http.StatusForbidden, httpErr.Code)
}

// newRequest builds an echo context carrying the given auth claims, the
// way AuthMiddleware leaves them for the handlers.
func (suite *ServerIntegrationTestSuite) newRequest(method string, claims *Claims) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(claimsContextKey, claims)
	return rec, c
}

func claimsFor(aggregate *courier.Courier) *Claims {
	return &Claims{
		CallerID:   aggregate.ID().String(),
		BusinessID: aggregate.BusinessID().String(),
		Role:       aggregate.Role().String(),
	}
}

func (suite *ServerIntegrationTestSuite) addCourier(
	businessID kernel.UUID, username, name string,
) *courier.Courier {
	aggregate, err := courier.NewCourier(
		kernel.NewUUID(), businessID, username, "$2a$10$hash", name,
		"+905554445566", courier.RoleCourier,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.couriers.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *ServerIntegrationTestSuite) addOrder(businessID kernel.UUID) *order.Order {
	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), businessID, order.PlatformTrendyol, "TY-4821",
		order.Customer{Name: "Ayşe Yılmaz", Phone: "+905551112233", Address: "Kadıköy"},
		point, []string{"Adana Dürüm"}, "245.50 TL", time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), aggregate))
	return aggregate
}

func TestServerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServerIntegrationTestSuite))
}
