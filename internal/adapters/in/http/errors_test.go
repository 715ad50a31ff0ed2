package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, err))
	return rec
}

func TestRespondError_ClaimConflictNamesTheOwner(t *testing.T) {
	orderID := kernel.NewUUID()
	rec := recordError(t, errs.NewConflictError("order", orderID, "Mehmet Demir"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Mehmet Demir", body.ClaimedBy)
	assert.NotEmpty(t, body.Error)
}

func TestRespondError_NotFound(t *testing.T) {
	rec := recordError(t, errs.NewObjectNotFoundError("order", kernel.NewUUID()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRespondError_ValidationErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest,
		recordError(t, errs.NewValueIsRequiredError("customerName")).Code)
	assert.Equal(t, http.StatusBadRequest,
		recordError(t, errs.NewValueIsInvalidError("status")).Code)
}

func TestRespondError_Forbidden(t *testing.T) {
	rec := recordError(t, errs.NewForbiddenError("couriers cannot view the team"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRespondError_UnknownErrorHidesDetails(t *testing.T) {
	rec := recordError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestGetCourierLocations_ServesFromCache(t *testing.T) {
	businessID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
	require.NoError(t, err)

	reportedAt := time.Now().UTC().Add(-time.Minute)
	aggregate, err := courier.RestoreCourier(
		kernel.NewUUID(), businessID, "mehmet.d", "$2a$10$hash",
		"Mehmet Demir", "+905554445566", courier.RoleCourier, true, point, &reportedAt,
	)
	require.NoError(t, err)

	cache := locations.NewCache()
	cache.Put(aggregate)

	server := &Server{locationCache: cache}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/couriers/locations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(claimsContextKey, &Claims{
		CallerID:   kernel.NewUUID().String(),
		BusinessID: businessID.String(),
		Role:       "chief",
	})

	require.NoError(t, server.GetCourierLocations(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body []courierLocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Mehmet Demir", body[0].Name)
	assert.InDelta(t, 41.0082, body[0].Latitude, 1e-9)
	assert.False(t, body[0].IsStale)
}

func TestStatWindows(t *testing.T) {
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	server := &Server{timezone: istanbul}

	now := time.Date(2025, time.March, 6, 15, 30, 0, 0, istanbul)

	assert.Equal(t, time.Date(2025, time.March, 6, 0, 0, 0, 0, istanbul), server.startOfDay(now))
	assert.Equal(t, now.AddDate(0, 0, -7), server.startOfWeek(now))
}
