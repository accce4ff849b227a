package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homestead-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccountHandlers(t *testing.T) (*fiber.App, *Handlers) {
	svc, _ := setupAccountsTest(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := middleware.SessionConfig{RedisURL: "redis://" + mr.Addr()}
	sessionHandler, rdb, err := middleware.Session(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	h := &Handlers{Service: svc, Rdb: rdb, Config: cfg}

	app := fiber.New()
	app.Use(sessionHandler)
	app.Post("/connect", h.Connect)
	app.Delete("/disconnect", h.Disconnect)
	app.Get("/me", h.Me)
	app.Get("/balance/:address", h.Balance)
	app.Post("/fund", h.Fund)
	return app, h
}

func connect(t *testing.T, app *fiber.App, address, passphrase string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"address": address, "passphrase": passphrase})
	req := httptest.NewRequest("POST", "/connect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestConnectHandler_SetsSessionCookie(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	resp := connect(t, app, "0xalice", "hunter2")
	assert.Equal(t, 200, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.NotEmpty(t, cookie.Value)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])
}

func TestConnectHandler_MissingFields(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	body, _ := json.Marshal(map[string]string{"address": "0xalice"})
	req := httptest.NewRequest("POST", "/connect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestConnectHandler_WrongPassphrase(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	connect(t, app, "0xalice", "hunter2")
	resp := connect(t, app, "0xalice", "nope")
	assert.Equal(t, 401, resp.StatusCode)
}

func TestMeHandler_WithSession(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	resp := connect(t, app, "0xalice", "hunter2")
	cookie := sessionCookie(t, resp)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, meResp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&result))
	data, _ := result["data"].(map[string]interface{})
	acct, _ := data["account"].(map[string]interface{})
	assert.Equal(t, "0xalice", acct["address"])
}

func TestMeHandler_NoSession(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestDisconnectHandler_ClearsSession(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	resp := connect(t, app, "0xalice", "hunter2")
	cookie := sessionCookie(t, resp)

	req := httptest.NewRequest("DELETE", "/disconnect", nil)
	req.AddCookie(cookie)
	dResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, dResp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, meResp.StatusCode)
}

func TestBalanceHandler(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	connect(t, app, "0xalice", "hunter2")

	req := httptest.NewRequest("GET", "/balance/0xalice", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/balance/0xghost", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestFundHandler_PlatformOwnerOnly(t *testing.T) {
	app, _ := setupAccountHandlers(t)

	aliceResp := connect(t, app, "0xalice", "hunter2")
	aliceCookie := sessionCookie(t, aliceResp)

	deployerResp := connect(t, app, deployer, "genesis")
	deployerCookie := sessionCookie(t, deployerResp)

	body, _ := json.Marshal(map[string]interface{}{"address": "0xalice", "amount": 100})

	req := httptest.NewRequest("POST", "/fund", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(aliceCookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("POST", "/fund", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(deployerCookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data, _ := result["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["balance"])
}
