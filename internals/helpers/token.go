package helper

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"schooldesk_backend/internals/configs"
)

var ErrNoToken = errors.New("missing or invalid token")

// SignAccessToken issues the bearer token carried by every authenticated
// request. school_id scopes the caller to its own tenant.
func SignAccessToken(userID, schoolID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":       userID.String(),
		"school_id": schoolID.String(),
		"role":      role,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "user_id")
}

// GetSchoolIDFromToken resolves the acting tenant. Writes always scope on
// this value; list reads may take an explicit ?school= instead.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "school_id")
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("role").(string)
	if !ok || role == "" {
		return "", ErrNoToken
	}
	return role, nil
}

func localsUUID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	raw, ok := c.Locals(key).(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoToken
	}
	return id, nil
}
