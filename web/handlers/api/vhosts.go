package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/gateway"
	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/internal/core/models"
)

// ListVhosts godoc
// @Summary List virtual hosts
// @Tags vhosts
// @Produce json
// @Success 200 {object} models.VHostListResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 502 {object} models.ErrorResponse "Broker rejected the configured credentials"
// @Router /vhosts [get]
// @Security BearerAuth
func ListVhosts(c *fiber.Ctx, svc *manager.Service) error {
	vhosts, err := svc.ListVhosts(c.Context())
	if err != nil {
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to list vhosts: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(models.VHostListResponse{VHosts: vhosts})
}

// brokerErrorStatus maps gateway failures onto response codes: broker auth
// problems surface as 502 so they are not confused with the API's own 401.
func brokerErrorStatus(err error) int {
	var unauthorized *gateway.UnauthorizedError
	if errors.As(err, &unauthorized) || errors.Is(err, gateway.ErrUnauthenticated) {
		return fiber.StatusBadGateway
	}
	if gateway.IsNotFound(err) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
