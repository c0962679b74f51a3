package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"torgi-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestJSON_AllDependenciesUp(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	h := &Handlers{Rdb: rdb, DB: db}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "torgi-api", out["service"])
	assert.Equal(t, "ok", out["status"])
	deps, _ := out["dependencies"].(map[string]interface{})
	require.NotNil(t, deps)
	assert.Equal(t, "ok", deps["postgres"])
	assert.Equal(t, "ok", deps["redis"])
}

func TestJSON_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	h := &Handlers{Rdb: rdb, DB: db}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "degraded", out["status"])
}

func TestReset_RequiresAdminKey(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set(middleware.KeyReqTotal, "42"))

	h := &Handlers{Rdb: rdb, AdminKey: "test-admin-key"}
	app := fiber.New()
	app.Post("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("POST", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	assert.True(t, mr.Exists(middleware.KeyReqTotal))

	resp, err = app.Test(httptest.NewRequest("POST", "/health/reset?key=test-admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.False(t, mr.Exists(middleware.KeyReqTotal))
}

func TestJSON_TrafficCounters(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set(middleware.KeyReqTotal, "10"))
	require.NoError(t, mr.Set(middleware.KeyReqErrors, "2"))
	require.NoError(t, mr.Set(middleware.KeyResCount, "10"))
	require.NoError(t, mr.Set(middleware.KeyResTime, "150"))

	h := &Handlers{Rdb: rdb}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	traffic, _ := out["traffic"].(map[string]interface{})
	require.NotNil(t, traffic)
	assert.Equal(t, 10.0, traffic["totalRequests"])
	assert.Equal(t, 2.0, traffic["failedCount"])
	assert.Equal(t, "15.0ms", traffic["avgResponseTime"])
}

func TestJSON_NotConfigured(t *testing.T) {
	h := &Handlers{}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "degraded", out["status"])
	deps, _ := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "not configured", deps["postgres"])
	assert.Equal(t, "not configured", deps["redis"])
}
