package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils"
)

const (
	ContextClaimsKey = "jwtClaims"
	ContextUserIDKey = "userID"
	ContextOrgIDKey  = "organizationID"
	ContextRoleKey   = "userRole"
)

func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.Unauthorized(c, "missing Authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.Unauthorized(c, "invalid Authorization header")
		}

		claims, err := utils.VerifyAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return utils.Unauthorized(c, "invalid or expired token")
		}

		c.Locals(ContextClaimsKey, claims)
		c.Locals(ContextUserIDKey, claims.UserID)
		c.Locals(ContextOrgIDKey, claims.OrganizationID)
		c.Locals(ContextRoleKey, claims.Role)

		return c.Next()
	}
}

func GetJWTClaims(c *fiber.Ctx) (*utils.JWTClaims, bool) {
	claims, ok := c.Locals(ContextClaimsKey).(*utils.JWTClaims)
	return claims, ok
}
