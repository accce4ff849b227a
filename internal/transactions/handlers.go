package transactions

import (
	"homestead-backend/internal/middleware"
	"homestead-backend/internal/pkg/response"
	"homestead-backend/internal/registry"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
	Ledger  *registry.Ledger
}

// GetTransactions GET /api/v1/transactions/get-transactions
// Connected accounts see their own history; platform owners may pass
// ?account= to inspect another account's settlements.
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	caller := middleware.GetAccountAddress(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	account := caller
	if q := c.Query("account"); q != "" && q != caller {
		ok, err := h.Ledger.IsPlatformOwner(c.Context(), caller)
		if err != nil {
			return response.Error(c, "Internal Server Error", 500, nil)
		}
		if !ok {
			return response.Error(c, registry.ErrNotPlatformOwner.Error(), 403, nil)
		}
		account = q
	}

	txs, err := h.Service.ViewTransactions(c.Context(), account)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Transactions fetched", txs)
}
