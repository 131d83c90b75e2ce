package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/internal/core/models"
)

// ListSystemCredentials godoc
// @Summary List credentials attached to a system
// @Tags credentials
// @Produce json
// @Param vhost path string true "VHost name (use %2F for /)"
// @Param system path string true "System id"
// @Success 200 {object} models.CredentialListResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /systems/{vhost}/{system}/credentials [get]
// @Security BearerAuth
func ListSystemCredentials(c *fiber.Ctx, svc *manager.Service) error {
	vhost := vhostParam(c)
	systemID := systemParam(c)
	credentials, err := svc.ListSystemCredentials(c.Context(), vhost, systemID)
	if err != nil {
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to list credentials: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(models.CredentialListResponse{Credentials: credentials})
}

// AttachCredential godoc
// @Summary Attach a credential record to a system
// @Tags credentials
// @Accept json
// @Produce json
// @Param request body models.AttachCredentialRequest true "Credential to attach"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /credentials [post]
// @Security BearerAuth
func AttachCredential(c *fiber.Ctx, svc *manager.Service) error {
	var request models.AttachCredentialRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if !validateRequest(c, &request) {
		return nil
	}
	vhost := vhostOrDefault(request.VHost)

	err := svc.AttachCredential(c.Context(), vhost, request.SystemID, request.Username, request.Password, request.Kind)
	if err != nil {
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to attach credential: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse{
		Message: "Credential attached successfully",
	})
}
