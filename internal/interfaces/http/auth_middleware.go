package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/jwt"
)

// Chiavi Locals per UserID e Plan in Fiber.
const (
	LocalUserID = "user_id"
	LocalPlan   = "plan"
)

// AuthMiddleware valida il Bearer Token JWT ed estrae UserID e Plan in c.Locals.
// Senza utente autenticato la richiesta si ferma qui: i consumer a valle
// non devono mai vedere uno user id vuoto.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization richiesto"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vuoto"})
		}
		userID, plan, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token invalido o scaduto"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalPlan, plan)
		return c.Next()
	}
}

// GetUserID restituisce lo UserID dal contesto (dopo il middleware di auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetPlan restituisce il piano dell'utente dal contesto (dopo il middleware di auth).
func GetPlan(c *fiber.Ctx) string {
	v := c.Locals(LocalPlan)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
