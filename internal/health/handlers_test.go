package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func getStatus(t *testing.T, h *Handlers) map[string]interface{} {
	t.Helper()
	app := fiber.New()
	app.Get("/api/health", h.Status)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestStatus_AllConnected(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	body := getStatus(t, &Handlers{DB: db, Rdb: rdb})
	assert.Equal(t, "ok", body["status"])

	deps, _ := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["database"])
	assert.Equal(t, "connected", deps["redis"])
}

func TestStatus_DegradedWithoutDatabase(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	body := getStatus(t, &Handlers{DB: nil, Rdb: rdb})
	assert.Equal(t, "degraded", body["status"])

	deps, _ := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "disconnected", deps["database"])
	assert.Equal(t, "connected", deps["redis"])
}

func TestStatus_DegradedWithoutRedis(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	body := getStatus(t, &Handlers{DB: db, Rdb: nil})
	assert.Equal(t, "degraded", body["status"])

	deps, _ := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "connected", deps["database"])
	assert.Equal(t, "disconnected", deps["redis"])
}
