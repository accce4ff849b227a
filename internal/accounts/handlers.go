package accounts

import (
	"context"
	"errors"
	"time"

	"homestead-backend/internal/middleware"
	"homestead-backend/internal/pkg/response"
	"homestead-backend/internal/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for account endpoints.
type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// ConnectRequest body.
type ConnectRequest struct {
	Address    string `json:"address"`
	Passphrase string `json:"passphrase"`
}

// Connect POST /api/v1/accounts/connect — create or verify the account,
// establish a fresh session, set the session cookie.
func (h *Handlers) Connect(c *fiber.Ctx) error {
	var req ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Address and passphrase are required", fiber.StatusBadRequest, nil)
	}
	if req.Address == "" || req.Passphrase == "" {
		return response.Error(c, "Address and passphrase are required", fiber.StatusBadRequest, nil)
	}

	acct, err := h.Service.Connect(c.Context(), req.Address, req.Passphrase)
	if err != nil {
		switch {
		case errors.Is(err, ErrAddressRequired), errors.Is(err, ErrPassphraseRequired):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, ErrWrongPassphrase):
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionAccount(c, middleware.SessionAccount{
		Address:     acct.Address,
		ConnectedAt: time.Now().UTC().Format(time.RFC3339),
	})

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Account connected", fiber.Map{
		"account": fiber.Map{
			"address": acct.Address,
			"balance": acct.Balance,
		},
	})
}

// Disconnect DELETE /api/v1/accounts/disconnect — destroy the session.
func (h *Handlers) Disconnect(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" && h.Rdb != nil {
		h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sessionID)
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Account disconnected", fiber.Map{})
}

// Me GET /api/v1/accounts/me — echo the session account.
func (h *Handlers) Me(c *fiber.Ctx) error {
	address := middleware.GetAccountAddress(c)
	if address == "" {
		return response.Error(c, "Not connected", fiber.StatusUnauthorized, nil)
	}
	balance, err := h.Service.Balance(c.Context(), address)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Connected", fiber.Map{
		"account": fiber.Map{
			"address": address,
			"balance": balance,
		},
	})
}

// Balance GET /api/v1/accounts/balance/:address
func (h *Handlers) Balance(c *fiber.Ctx) error {
	address := c.Params("address")
	balance, err := h.Service.Balance(c.Context(), address)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Balance fetched", fiber.Map{
		"address": address,
		"balance": balance,
	})
}

// Fund POST /api/v1/accounts/fund — platform-owner faucet.
func (h *Handlers) Fund(c *fiber.Ctx) error {
	caller := middleware.GetAccountAddress(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		Address string `json:"address"`
		Amount  int64  `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil || body.Address == "" {
		return response.Error(c, "Address and amount are required", fiber.StatusBadRequest, nil)
	}

	balance, err := h.Service.Fund(c.Context(), caller, body.Address, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, registry.ErrNotPlatformOwner):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case errors.Is(err, ErrAccountNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Account funded", fiber.Map{
		"address": body.Address,
		"balance": balance,
	})
}
