package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/manager"
	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/internal/core/template"
)

func templateInfo(tpl *template.Template) models.TemplateInfoDTO {
	return models.TemplateInfoDTO{
		Name:        tpl.Metadata.Name,
		Version:     tpl.Metadata.Version,
		Description: tpl.Metadata.Description,
		Parameters:  len(tpl.Parameters),
		Queues:      len(tpl.Queues),
		Exchanges:   len(tpl.Exchanges),
		Bindings:    len(tpl.Bindings),
	}
}

// ListTemplates godoc
// @Summary List loaded templates
// @Tags templates
// @Produce json
// @Success 200 {object} models.TemplateListResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Router /templates [get]
// @Security BearerAuth
func ListTemplates(c *fiber.Ctx, svc *manager.Service) error {
	templates := svc.Templates().List()
	infos := make([]models.TemplateInfoDTO, 0, len(templates))
	for _, tpl := range templates {
		infos = append(infos, templateInfo(tpl))
	}
	return c.Status(fiber.StatusOK).JSON(models.TemplateListResponse{Templates: infos})
}

// GetTemplate godoc
// @Summary Get a template summary
// @Tags templates
// @Produce json
// @Param name path string true "Template name"
// @Success 200 {object} models.TemplateInfoDTO
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 404 {object} models.ErrorResponse
// @Router /templates/{name} [get]
// @Security BearerAuth
func GetTemplate(c *fiber.Ctx, svc *manager.Service) error {
	name := c.Params("name")
	tpl := svc.Templates().Get(name)
	if tpl == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "template '" + name + "' not found",
		})
	}
	return c.Status(fiber.StatusOK).JSON(templateInfo(tpl))
}

// RenderTemplate godoc
// @Summary Preview a rendered template
// @Description Validate parameter values and return the rendered resource set without creating anything
// @Tags templates
// @Accept json
// @Produce json
// @Param name path string true "Template name"
// @Param request body models.RenderRequest true "Parameter values"
// @Success 200 {object} models.RenderPreviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ValidationErrorResponse
// @Router /templates/{name}/render [post]
// @Security BearerAuth
func RenderTemplate(c *fiber.Ctx, svc *manager.Service) error {
	name := c.Params("name")
	tpl := svc.Templates().Get(name)
	if tpl == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "template '" + name + "' not found",
		})
	}

	var request models.RenderRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}

	cfg, validationErrs := template.ValidateAndRender(tpl, request.Parameters)
	if len(validationErrs) > 0 {
		fields := make([]models.FieldError, 0, len(validationErrs))
		for _, ve := range validationErrs {
			fields = append(fields, models.FieldError{Field: ve.Field, Message: ve.Message})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationErrorResponse{Errors: fields})
	}

	preview := models.RenderPreviewResponse{
		Exchanges: make([]models.ExchangeDTO, 0, len(cfg.Exchanges)),
		Queues:    make([]models.QueueDTO, 0, len(cfg.Queues)),
		Bindings:  make([]models.BindingDTO, 0, len(cfg.Bindings)),
	}
	for _, ex := range cfg.Exchanges {
		preview.Exchanges = append(preview.Exchanges, models.ExchangeDTO{
			Name:       ex.Name,
			Type:       ex.Type,
			Durable:    ex.Durable,
			AutoDelete: ex.AutoDelete,
			Internal:   ex.Internal,
			Arguments:  ex.Arguments,
		})
	}
	for _, q := range cfg.Queues {
		preview.Queues = append(preview.Queues, models.QueueDTO{
			Name:       q.Name,
			Durable:    q.Durable,
			AutoDelete: q.AutoDelete,
			Arguments:  q.Arguments,
		})
	}
	for _, b := range cfg.Bindings {
		kind := b.DestinationKind
		if kind == "" {
			kind = "queue"
		}
		preview.Bindings = append(preview.Bindings, models.BindingDTO{
			Source:          b.Source,
			Destination:     b.Destination,
			DestinationType: kind,
			RoutingKey:      b.RoutingKey,
			Arguments:       b.Arguments,
		})
	}
	return c.Status(fiber.StatusOK).JSON(preview)
}
