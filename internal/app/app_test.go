package app

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"homestead-backend/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateApp_HealthWithoutDatabase(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Env:           "test",
		RedisURL:      "redis://" + mr.Addr(),
		SessionSecret: "test-secret",
		UploadDir:     t.TempDir(),
	}

	app, db, rdb, err := CreateApp(cfg)
	require.NoError(t, err)
	assert.Nil(t, db)
	require.NotNil(t, rdb)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "degraded", body["status"])

	deps, _ := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "disconnected", deps["database"])
	assert.Equal(t, "connected", deps["redis"])
}

func TestCreateApp_MutationsRequireSession(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Env:           "test",
		RedisURL:      "redis://" + mr.Addr(),
		SessionSecret: "test-secret",
		UploadDir:     t.TempDir(),
	}

	app, _, _, err := CreateApp(cfg)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/upload-json", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
