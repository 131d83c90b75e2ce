package api_admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/internal/persistdb"
)

// GetUsers godoc
// @Summary List operator accounts
// @Tags admin
// @Produce json
// @Success 200 {array} persistdb.User
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/users [get]
// @Security BearerAuth
func GetUsers(c *fiber.Ctx) error {
	users, err := persistdb.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to list users: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// AddUser godoc
// @Summary Create an operator account
// @Tags admin
// @Accept json
// @Produce json
// @Param user body models.AddUserRequest true "User to create"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/users [post]
// @Security BearerAuth
func AddUser(c *fiber.Ctx) error {
	var request models.AddUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if request.Username == "" || len(request.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "username is required and password must be at least 6 characters",
		})
	}

	err := persistdb.AddUser(persistdb.UserCreateDTO{
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse{
		Message: "User created successfully",
	})
}

// GetOperations godoc
// @Summary List recent lifecycle operations
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum number of records" default(50)
// @Success 200 {array} manager.Operation
// @Failure 401 {object} models.UnauthorizedErrorResponse "Missing or invalid JWT token"
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/operations [get]
// @Security BearerAuth
func GetOperations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	ops, err := persistdb.ListOperations(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to list operations: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(ops)
}
