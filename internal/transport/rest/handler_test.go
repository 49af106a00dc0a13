package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agenda/internal/repository"
	"agenda/internal/scheduling"
	"agenda/internal/service"
)

func newTestRouter(t *testing.T, limiter *RedisRateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policy := scheduling.MustPolicy(scheduling.DefaultPolicyConfig())
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, policy.Location())

	repos := repository.NewMemoryRepositories()
	services := service.NewServices(service.Deps{
		Repos:  repos,
		Logger: zap.NewNop(),
		Policy: policy,
		Clock:  func() time.Time { return now },
	})

	router := gin.New()
	NewHandler(services, zap.NewNop(), repos.Health, limiter).InitRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createTestService(t *testing.T, router *gin.Engine, name string, duration int) float64 {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/v1/admin/services", gin.H{"name": name, "duration": duration, "price": 50})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["data"].(map[string]interface{})["id"].(float64)
}

func appointmentBody(serviceID float64, start string) gin.H {
	return gin.H{
		"service_id":       serviceID,
		"appointment_time": start,
		"client_name":      "Ana Maria",
		"client_phone":     "11999990000",
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doRequest(router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServiceEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)
	id := createTestService(t, router, "Corte", 30)

	w := doRequest(router, http.MethodPost, "/api/v1/admin/services", gin.H{"name": "Corte", "duration": 45, "price": 10})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/admin/services", gin.H{"name": "Barba"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = doRequest(router, http.MethodPut, "/api/v1/admin/services/1", gin.H{"price": 65.5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 65.5, decode(t, w)["data"].(map[string]interface{})["price"])

	w = doRequest(router, http.MethodGet, "/api/v1/admin/services/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/admin/services/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/appointments", appointmentBody(id, "2026-10-19T09:00:00-03:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/admin/services/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	id := createTestService(t, router, "Corte", 30)

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/available_slots?service_id=%d&date=2026-10-19", int64(id)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "2026-10-19", data["date"])
	slots := data["available_slots"].([]interface{})
	require.Len(t, slots, 33)
	assert.Equal(t, "2026-10-19T08:00:00-03:00", slots[0])
	assert.Equal(t, "2026-10-19T16:30:00-03:00", slots[32])

	w = doRequest(router, http.MethodGet, "/api/v1/available_slots?service_id=1&date=2026-10-25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"].(map[string]interface{})["available_slots"])

	w = doRequest(router, http.MethodGet, "/api/v1/available_slots?date=2026-10-19", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/available_slots?service_id=1&date=19-10-2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/available_slots?service_id=7&date=2026-10-19", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	id := createTestService(t, router, "Corte", 30)

	w := doRequest(router, http.MethodPost, "/api/v1/appointments", appointmentBody(id, "2026-10-19T09:00:00-03:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Ana Maria", data["client_name"])
	assert.Equal(t, "Corte", data["service_name"])
	assert.Equal(t, "2026-10-19T09:00:00-03:00", data["appointment_time"])

	w = doRequest(router, http.MethodPost, "/api/v1/appointments", appointmentBody(id, "2026-10-19T09:15:00-03:00"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/appointments", appointmentBody(id, "2026-10-19T11:45:00-03:00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "appointment time conflicts with lunch break", decode(t, w)["message"])

	w = doRequest(router, http.MethodPost, "/api/v1/appointments", appointmentBody(99, "2026-10-19T13:00:00-03:00"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/appointments", gin.H{"service_id": id})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/admin/appointments?date=2026-10-19", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)
}

func TestExportAgendaWithoutStorage(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/admin/reports/agenda?date=2026-10-19", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/admin/reports/agenda", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingRateLimitWithoutRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })

	closed := newTestRouter(t, NewRedisRateLimiter(rdb, 5, time.Minute, "test", false))
	id := createTestService(t, closed, "Corte", 30)
	w := doRequest(closed, http.MethodPost, "/api/v1/appointments", appointmentBody(id, "2026-10-19T09:00:00-03:00"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	open := newTestRouter(t, NewRedisRateLimiter(rdb, 5, time.Minute, "test", true))
	id = createTestService(t, open, "Corte", 30)
	w = doRequest(open, http.MethodPost, "/api/v1/appointments", appointmentBody(id, "2026-10-19T09:00:00-03:00"))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusOf("bad_request"))
	assert.Equal(t, http.StatusNotFound, statusOf("not_found"))
	assert.Equal(t, http.StatusConflict, statusOf("conflict"))
	assert.Equal(t, http.StatusServiceUnavailable, statusOf("unavailable"))
}
