package propertyevents

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"homestead-backend/internal/domain"
	"homestead-backend/internal/registry"
	"homestead-backend/internal/settlement"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const deployer = "0xdeployer"

func setupEventsApp(t *testing.T) (*fiber.App, *registry.Ledger, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Property{}, &domain.PlatformOwner{}, &domain.Account{},
		&domain.Transaction{}, &domain.PropertyEvent{},
	))

	ledger := &registry.Ledger{DB: db, Settler: settlement.AccountSettler{}}
	require.NoError(t, ledger.Bootstrap(context.Background(), deployer))

	h := &Handlers{Service: &Service{DB: db}, Ledger: ledger}
	app := fiber.New()
	app.Get("/property-events/:id", h.GetPropertyEvents)
	return app, ledger, db
}

func fundAccount(t *testing.T, db *gorm.DB, address string, balance int64) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Account{Address: address, Balance: balance}).Error)
}

func TestGetPropertyEvents_InvalidID(t *testing.T) {
	app, _, _ := setupEventsApp(t)

	req := httptest.NewRequest("GET", "/property-events/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetPropertyEvents_UnknownProperty(t *testing.T) {
	app, _, _ := setupEventsApp(t)

	req := httptest.NewRequest("GET", "/property-events/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetPropertyEvents_TrailAfterSale(t *testing.T) {
	app, ledger, db := setupEventsApp(t)

	fundAccount(t, db, deployer, 0)
	fundAccount(t, db, "0xbuyer", 500)

	ctx := context.Background()
	id, err := ledger.AddProperty(ctx, deployer, registry.AddPropertyInput{
		Price:       200,
		Location:    "Budapest",
		MetadataURI: "ipfs://qm1",
	})
	require.NoError(t, err)
	require.NoError(t, ledger.BuyProperty(ctx, "0xbuyer", id, 200))

	req := httptest.NewRequest("GET", "/property-events/0", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data, _ := result["data"].([]interface{})
	require.Len(t, data, 2)

	first, _ := data[0].(map[string]interface{})
	second, _ := data[1].(map[string]interface{})
	assert.Equal(t, "REGISTERED", first["event_type"])
	assert.Equal(t, "SOLD", second["event_type"])
	assert.Equal(t, "0xbuyer", second["actor_account"])
}
