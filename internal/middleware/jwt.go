package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/thesis-api/internal/models"
	"github.com/noah-isme/thesis-api/internal/utils"
)

// principalClaims is the token payload the identity provider mints for this
// API: the registered subject carries the user id as a decimal string, Role
// one of the four account roles.
type principalClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var knownRoles = map[string]struct{}{
	models.RoleAdmin:    {},
	models.RoleMinistry: {},
	models.RoleLecturer: {},
	models.RoleStudent:  {},
}

// JWTProtected validates HMAC bearer tokens and resolves the caller's user
// id and role into request locals for the role gates and handlers.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims := &principalClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if _, ok := knownRoles[role]; !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "unrecognized account role")
		}

		c.Locals("user_id", uint(userID))
		c.Locals("user_role", role)

		return c.Next()
	}
}
