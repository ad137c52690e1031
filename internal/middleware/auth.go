// Package middleware provides HTTP middleware components for the application.
// It includes identity-provider session validation and other request
// processing middleware used with the fiber web framework.
package middleware

import (
	"log"
	"strings"

	"veridian/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ClerkIDKey is the locals key under which the verified clerk ID is stored.
const ClerkIDKey = "clerkID"

// SessionMiddleware validates the identity provider's session token.
// The token subject is the opaque clerk ID; this service never interprets it.
type SessionMiddleware struct {
	secret []byte
}

func NewSessionMiddleware(secret string) *SessionMiddleware {
	return &SessionMiddleware{secret: []byte(secret)}
}

// Handler verifies the Bearer token and stores the clerk ID in the request
// context.
func (m *SessionMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		log.Printf("session token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || claims.ClerkID() == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}

	c.Locals(ClerkIDKey, claims.ClerkID())
	return c.Next()
}

// ClerkID returns the verified clerk ID for the request, or "" when the
// request did not pass through the session middleware.
func ClerkID(c *fiber.Ctx) string {
	if id, ok := c.Locals(ClerkIDKey).(string); ok {
		return id
	}
	return ""
}
