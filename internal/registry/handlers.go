package registry

import (
	"errors"
	"strconv"

	"homestead-backend/internal/middleware"
	"homestead-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Ledger *Ledger
}

// statusFor maps ledger failure classes to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotPlatformOwner):
		return fiber.StatusForbidden
	case errors.Is(err, ErrPropertyNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAlreadySold), errors.Is(err, ErrReentrantCall):
		return fiber.StatusConflict
	case errors.Is(err, ErrIncorrectPrice), errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrTransferFailed):
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handlers) fail(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		return response.Error(c, "Internal Server Error", code, nil)
	}
	return response.Error(c, err.Error(), code, nil)
}

// AddProperty POST /api/v1/registry/add-property
func (h *Handlers) AddProperty(c *fiber.Ctx) error {
	caller := middleware.GetAccountAddress(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		Price       int64  `json:"price"`
		Location    string `json:"location"`
		MetadataURI string `json:"metadata_uri"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.Price <= 0 {
		return response.Error(c, "Price must be a positive amount", 400, nil)
	}
	if body.Location == "" || body.MetadataURI == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	id, err := h.Ledger.AddProperty(c.Context(), caller, AddPropertyInput{
		Price:       body.Price,
		Location:    body.Location,
		MetadataURI: body.MetadataURI,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return response.SuccessCreated(c, "Property registered", fiber.Map{
		"property_id": id,
	})
}

// BuyProperty POST /api/v1/registry/buy-property
func (h *Handlers) BuyProperty(c *fiber.Ctx) error {
	buyer := middleware.GetAccountAddress(c)
	if buyer == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		PropertyID *int64 `json:"property_id"`
		Payment    int64  `json:"payment"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.PropertyID == nil {
		return response.Error(c, "Missing required field: property_id", 400, nil)
	}
	if body.Payment <= 0 {
		return response.Error(c, "Payment must be a positive amount", 400, nil)
	}

	if err := h.Ledger.BuyProperty(c.Context(), buyer, *body.PropertyID, body.Payment); err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Property purchased", fiber.Map{
		"property_id": *body.PropertyID,
		"owner":       buyer,
	})
}

// AddPlatformOwner POST /api/v1/registry/add-platform-owner
func (h *Handlers) AddPlatformOwner(c *fiber.Ctx) error {
	caller := middleware.GetAccountAddress(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		Account string `json:"account"`
	}
	if err := c.BodyParser(&body); err != nil || body.Account == "" {
		return response.Error(c, "Missing required field: account", 400, nil)
	}

	if err := h.Ledger.AddPlatformOwner(c.Context(), caller, body.Account); err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Platform owner added", fiber.Map{
		"account": body.Account,
	})
}

// IsPlatformOwner GET /api/v1/registry/platform-owners/:account
func (h *Handlers) IsPlatformOwner(c *fiber.Ctx) error {
	account := c.Params("account")
	ok, err := h.Ledger.IsPlatformOwner(c.Context(), account)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Platform owner checked", fiber.Map{
		"account":           account,
		"is_platform_owner": ok,
	})
}

// GetProperty GET /api/v1/registry/properties/:id
func (h *Handlers) GetProperty(c *fiber.Ctx) error {
	id, err := parsePropertyID(c)
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	prop, err := h.Ledger.GetProperty(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Property fetched", prop)
}

// GetProperties GET /api/v1/registry/properties
func (h *Handlers) GetProperties(c *fiber.Ctx) error {
	props, err := h.Ledger.GetProperties(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Properties fetched", props)
}

// TotalProperties GET /api/v1/registry/total-properties
func (h *Handlers) TotalProperties(c *fiber.Ctx) error {
	count, err := h.Ledger.TotalProperties(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Total properties fetched", fiber.Map{
		"total": count,
	})
}

// OwnerOf GET /api/v1/registry/properties/:id/owner
func (h *Handlers) OwnerOf(c *fiber.Ctx) error {
	id, err := parsePropertyID(c)
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}
	owner, err := h.Ledger.OwnerOf(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Success(c, "Owner fetched", fiber.Map{
		"property_id": id,
		"owner":       owner,
	})
}

func parsePropertyID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
