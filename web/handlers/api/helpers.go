package api

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/models"
)

var validate = validator.New()

// validateRequest runs struct tag validation and renders failures as a 422
// response. Returns true when the request is valid.
func validateRequest(c *fiber.Ctx, request any) bool {
	err := validate.Struct(request)
	if err == nil {
		return true
	}
	var fields []models.FieldError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, models.FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed '%s' validation", fe.Tag()),
			})
		}
	} else {
		fields = append(fields, models.FieldError{Field: "request", Message: err.Error()})
	}
	_ = c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationErrorResponse{Errors: fields})
	return false
}

// vhostParam decodes the :vhost path segment, defaulting to "/". The root
// vhost travels as %2F.
func vhostParam(c *fiber.Ctx) string {
	vhost := c.Params("vhost")
	if vhost == "" {
		return "/"
	}
	decoded, err := url.PathUnescape(vhost)
	if err == nil {
		vhost = decoded
	}
	return vhost
}

// systemParam decodes the :system path segment. System ids embed the vhost,
// so "/" travels escaped.
func systemParam(c *fiber.Ctx) string {
	systemID := c.Params("system")
	decoded, err := url.PathUnescape(systemID)
	if err == nil {
		return decoded
	}
	return systemID
}

func vhostOrDefault(vhost string) string {
	if vhost == "" {
		return "/"
	}
	return vhost
}
