package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/vehicle-api/internal/config"
	"github.com/deppfellow/vehicle-api/internal/controller"
	"github.com/deppfellow/vehicle-api/internal/errs"
	"github.com/deppfellow/vehicle-api/internal/middleware"
	"github.com/deppfellow/vehicle-api/internal/model"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *fakeStore) CreateVehicle(_ context.Context, input model.CreateVehicleInput) (model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return model.Vehicle{}, s.err
	}
	return model.NewVehicle(12, input.Shortcode, input.Battery, input.Position), nil
}

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newVehicleEcho(store controller.VehicleStore) *echo.Echo {
	s := testServer()
	h := NewVehicleHandler(s, controller.NewCreateVehicleController(store))

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/vehicles", Handle(h.Handler, h.CreateVehicle, http.StatusOK, controller.MsgInvalidCreateVehicle))
	return e
}

func postVehicle(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/vehicles", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateVehicleSuccess(t *testing.T) {
	store := &fakeStore{}
	rec := postVehicle(newVehicleEcho(store), `{"shortcode":"abac","battery":17,"longitude":45,"latitude":45}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"vehicle":{"id":12,"shortcode":"abac","battery":17,"position":{"longitude":45,"latitude":45}}}`, rec.Body.String())
	assert.Equal(t, 1, store.calls)
}

func TestCreateVehicleAcceptsNumericStrings(t *testing.T) {
	store := &fakeStore{}
	rec := postVehicle(newVehicleEcho(store), `{"shortcode":"abac","battery":"17","longitude":"45.5","latitude":"-3"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"vehicle":{"id":12,"shortcode":"abac","battery":17,"position":{"longitude":45.5,"latitude":-3}}}`, rec.Body.String())
}

func TestCreateVehicleValidationFailure(t *testing.T) {
	store := &fakeStore{}
	rec := postVehicle(newVehicleEcho(store), `{"shortcode":"abacd","battery":101,"longitude":181,"latitude":45}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"code": "BAD_REQUEST",
		"message": "Invalid create vehicle request",
		"details": {"violations": [
			"Shortcode must be only 4 characters long",
			"Battery must be between 0 and 100",
			"Position must be a valid coordinate"
		]}
	}`, rec.Body.String())
	assert.Zero(t, store.calls)
}

func TestCreateVehicleMalformedBody(t *testing.T) {
	store := &fakeStore{}
	rec := postVehicle(newVehicleEcho(store), `[1,2,3]`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"code": "BAD_REQUEST",
		"message": "Invalid create vehicle request",
		"details": {"violations": ["Request body must be a JSON object"]}
	}`, rec.Body.String())
	assert.Zero(t, store.calls)
}

func TestCreateVehicleStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	rec := postVehicle(newVehicleEcho(store), `{"shortcode":"abac","battery":17,"longitude":45,"latitude":45}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"INTERNAL","message":"Internal Server Error"}`, rec.Body.String())
	assert.Equal(t, 1, store.calls)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func checkHealth(t *testing.T, h *HealthHandler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))
	return rec
}

func TestCheckHealthy(t *testing.T) {
	h := &HealthHandler{Handler: NewHandler(testServer()), db: fakePinger{}}

	rec := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestCheckUnhealthyDatabase(t *testing.T) {
	h := &HealthHandler{Handler: NewHandler(testServer()), db: fakePinger{err: errors.New("refused")}}

	rec := checkHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), "refused")
}

func TestCheckHealthWithoutDatabase(t *testing.T) {
	rec := checkHealth(t, NewHealthHandler(testServer()))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), errDatabaseNotConfigured.Error())
}

func TestCheckHealthDisabled(t *testing.T) {
	s := testServer()
	s.Config.Observability.HealthChecks.Enabled = false
	h := &HealthHandler{Handler: NewHandler(s), db: fakePinger{err: errors.New("refused")}}

	rec := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database")
}

func TestCheckHealthAppliesTimeout(t *testing.T) {
	s := testServer()
	s.Config.Observability.HealthChecks.Timeout = 10 * time.Millisecond

	var deadline time.Time
	h := &HealthHandler{Handler: NewHandler(s), db: pingFunc(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	})}

	checkHealth(t, h)

	assert.WithinDuration(t, time.Now(), deadline, time.Second)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	h := &OpenAPIHandler{Handler: NewHandler(testServer()), dir: dir}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)

	require.NoError(t, h.ServeOpenAPIUI(c))
	assert.Equal(t, "<html>docs</html>", rec.Body.String())
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestServeOpenAPIUIMissingFile(t *testing.T) {
	h := &OpenAPIHandler{Handler: NewHandler(testServer()), dir: t.TempDir()}
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())

	assert.Error(t, h.ServeOpenAPIUI(c))
}

func TestJSONResponseHandlerUsesResultStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	res := &controller.Response{Status: http.StatusAccepted, Body: controller.Envelope{Vehicle: model.NewVehicle(1, "abcd", 0, model.Position{})}}
	require.NoError(t, JSONResponseHandler{status: http.StatusOK}.Handle(c, res))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte(`{"vehicle":`)))
}

func TestNoticeableOnlyServerErrors(t *testing.T) {
	assert.False(t, noticeable(errs.NewBadRequestError(controller.MsgInvalidCreateVehicle, []string{"Battery level must be between 0 and 100"})))
	assert.False(t, noticeable(errs.NewConflictError("A Vehicle with this Shortcode already exists")))
	assert.False(t, noticeable(echo.NewHTTPError(http.StatusRequestEntityTooLarge)))
	assert.True(t, noticeable(errs.NewInternalServerError()))
	assert.True(t, noticeable(errors.New("connection reset by peer")))
}
