package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/internal/core/models"
)

// ListSystems godoc
// @Summary List managed systems
// @Description Reconstruct the managed systems of a vhost from resource metadata
// @Tags systems
// @Produce json
// @Param vhost query string false "VHost name" default(/)
// @Success 200 {object} models.SystemListResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /systems [get]
// @Security BearerAuth
func ListSystems(c *fiber.Ctx, svc *manager.Service) error {
	vhost := vhostOrDefault(c.Query("vhost"))
	systems, err := svc.ListManagedSystems(c.Context(), vhost)
	if err != nil {
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to list systems: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(models.SystemListResponse{Systems: systems})
}

// CreateSystem godoc
// @Summary Provision a system from a template
// @Description Validate parameters, render the template, and create its resources idempotently
// @Tags systems
// @Accept json
// @Produce json
// @Param request body models.CreateSystemRequest true "System to provision"
// @Success 201 {object} models.CreateSystemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 404 {object} models.ErrorResponse "Unknown template"
// @Failure 409 {object} models.ErrorResponse "Existing resource conflicts with the template"
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /systems [post]
// @Security BearerAuth
func CreateSystem(c *fiber.Ctx, svc *manager.Service) error {
	var request models.CreateSystemRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if !validateRequest(c, &request) {
		return nil
	}
	vhost := vhostOrDefault(request.VHost)

	if svc.Templates().Get(request.Template) == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "template '" + request.Template + "' not found",
		})
	}

	resp, validationErrs, err := svc.ProvisionFromTemplate(c.Context(), vhost, request.Template, request.Parameters)
	if len(validationErrs) > 0 {
		fields := make([]models.FieldError, 0, len(validationErrs))
		for _, ve := range validationErrs {
			fields = append(fields, models.FieldError{Field: ve.Field, Message: ve.Message})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationErrorResponse{Errors: fields})
	}
	if err != nil {
		var conflict *manager.ConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
				Error: conflict.Error(),
			})
		}
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to provision system: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(*resp)
}

// GetSystemResources godoc
// @Summary List a system's resources
// @Tags systems
// @Produce json
// @Param vhost path string true "VHost name (use %2F for /)"
// @Param system path string true "System id"
// @Success 200 {object} models.SystemResourcesDTO
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /systems/{vhost}/{system}/resources [get]
// @Security BearerAuth
func GetSystemResources(c *fiber.Ctx, svc *manager.Service) error {
	vhost := vhostParam(c)
	systemID := systemParam(c)
	resources, err := svc.GetSystemResources(c.Context(), vhost, systemID)
	if err != nil {
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to get system resources: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(*resources)
}

// DeleteSystem godoc
// @Summary Tear down a managed system
// @Description Delete the system's queues, then iteratively delete exchanges left without bindings
// @Tags systems
// @Produce json
// @Param vhost path string true "VHost name (use %2F for /)"
// @Param system path string true "System id"
// @Success 200 {object} models.DeletionReport
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /systems/{vhost}/{system} [delete]
// @Security BearerAuth
func DeleteSystem(c *fiber.Ctx, svc *manager.Service) error {
	vhost := vhostParam(c)
	systemID := systemParam(c)
	report, err := svc.DeleteSystem(c.Context(), vhost, systemID)
	if err != nil {
		return c.Status(brokerErrorStatus(err)).JSON(models.ErrorResponse{
			Error: "failed to delete system: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(*report)
}

// ForceDeleteExchanges godoc
// @Summary Force delete exchanges
// @Description Best-effort deletion of explicitly named exchanges, regardless of bindings or ownership
// @Tags systems
// @Accept json
// @Produce json
// @Param request body models.ForceDeleteRequest true "Exchanges to delete"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 422 {object} models.ValidationErrorResponse
// @Router /exchanges/force-delete [post]
// @Security BearerAuth
func ForceDeleteExchanges(c *fiber.Ctx, svc *manager.Service) error {
	var request models.ForceDeleteRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if !validateRequest(c, &request) {
		return nil
	}
	vhost := vhostOrDefault(request.VHost)

	deleted := svc.ForceDeleteExchanges(c.Context(), vhost, request.Exchanges)
	message := "No exchanges deleted"
	if len(deleted) > 0 {
		message = "Deleted " + strings.Join(deleted, ", ")
	}
	return c.Status(fiber.StatusOK).JSON(models.SuccessResponse{Message: message})
}
