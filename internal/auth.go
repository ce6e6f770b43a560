package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	roleClaim = "role"
	roleAdmin = "admin"
)

// NewAdminToken signs an HS256 token that passes AdminOnly for the given secret.
func NewAdminToken(secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		roleClaim: roleAdmin,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AdminOnly rejects requests without a valid bearer token carrying role=admin.
// An empty secret locks the admin API entirely.
func AdminOnly(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := checkAdminToken(c.Get(fiber.HeaderAuthorization), secret); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized", "data": err.Error()})
		}
		return c.Next()
	}
}

func checkAdminToken(header, secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: admin api is disabled", ErrUnauthorized)
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" || tokenString == header {
		return fmt.Errorf("%w: bearer token required", ErrUnauthorized)
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnauthorized, err.Error())
	}

	if role, _ := claims[roleClaim].(string); role != roleAdmin {
		return fmt.Errorf("%w: admin role required", ErrUnauthorized)
	}
	return nil
}
