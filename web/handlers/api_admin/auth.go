package api_admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mqforge/mqforge/internal/core/models"
	"github.com/mqforge/mqforge/internal/persistdb"
)

var jwtKey []byte

// SetJwtKey configures the signing key used for issued tokens. Called once
// during server setup.
func SetJwtKey(key string) {
	jwtKey = []byte(key)
}

// Login godoc
// @Summary Authenticate an operator
// @Description Verify username and password and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Operator credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Invalid username or password"
// @Router /login [post]
func Login(c *fiber.Ctx) error {
	var request models.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if request.Username == "" || request.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "username and password are required",
		})
	}

	ok, err := persistdb.VerifyCredentials(request.Username, request.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to verify credentials: " + err.Error(),
		})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
			Error: "invalid username or password",
		})
	}

	claims := jwt.MapClaims{
		"username": request.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "failed to sign token: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginResponse{Token: signed})
}
