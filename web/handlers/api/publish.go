package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rabbitmq/amqp091-go"

	"github.com/mqforge/mqforge/internal/core/models"
)

// BrokerDialer opens an AMQP connection to the broker for a given vhost.
type BrokerDialer func(vhost string) (*amqp091.Connection, error)

// PublishTestMessage godoc
// @Summary Publish a test message
// @Description Publish a message over AMQP to verify a provisioned topology end to end
// @Tags publish
// @Accept json
// @Produce json
// @Param request body models.PublishTestRequest true "Message to publish"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 502 {object} models.ErrorResponse "Broker unreachable"
// @Router /publish [post]
// @Security BearerAuth
func PublishTestMessage(c *fiber.Ctx, dial BrokerDialer) error {
	var request models.PublishTestRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if !validateRequest(c, &request) {
		return nil
	}
	vhost := vhostOrDefault(request.VHost)

	conn, err := dial(vhost)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error: "failed to connect to broker: " + err.Error(),
		})
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error: "failed to open channel: " + err.Error(),
		})
	}
	defer ch.Close()

	err = ch.PublishWithContext(c.Context(), request.Exchange, request.RoutingKey, false, false,
		amqp091.Publishing{
			ContentType: "text/plain",
			Body:        []byte(request.Payload),
		})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error: "failed to publish message: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.SuccessResponse{
		Message: "Message published successfully",
	})
}
