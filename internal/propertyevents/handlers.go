package propertyevents

import (
	"errors"
	"strconv"

	"homestead-backend/internal/pkg/response"
	"homestead-backend/internal/registry"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
	Ledger  *registry.Ledger
}

// GetPropertyEvents GET /api/v1/property-events/:id
func (h *Handlers) GetPropertyEvents(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid property id", 400, nil)
	}

	// Existence check keeps the error taxonomy consistent with the ledger reads.
	if _, err := h.Ledger.GetProperty(c.Context(), id); err != nil {
		if errors.Is(err, registry.ErrPropertyNotFound) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	events, err := h.Service.ViewEvents(c.Context(), id)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Property events fetched", events)
}
