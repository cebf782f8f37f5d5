package handlers

import (
	"net/http"

	"lexbook/internal/common"
	"lexbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ServiceHandlers serves the public services catalog.
type ServiceHandlers struct {
	catalog services.CatalogService
}

func NewServiceHandlers(catalog services.CatalogService) *ServiceHandlers {
	return &ServiceHandlers{catalog: catalog}
}

// ListServices returns the full catalog.
func (h *ServiceHandlers) ListServices(c echo.Context) error {
	services, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list services")
	}
	return c.JSON(http.StatusOK, services)
}

// GetService returns a single catalog entry.
func (h *ServiceHandlers) GetService(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "id must be a valid UUID")
	}

	svc, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		if err == services.ErrServiceNotFound {
			return common.SendNotFoundError(c, "Service")
		}
		return common.SendServerError(c, "Failed to get service")
	}
	return c.JSON(http.StatusOK, svc)
}
