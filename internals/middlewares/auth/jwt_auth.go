// file: internals/middlewares/auth/jwt_auth.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Locals keys hydrated by AuthJWT.
const (
	LocStaffID = "staff_id"
	LocStoreID = "store_id"
	LocRoles   = "roles"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // use cookie access_token when there is no Bearer header
}

// AuthJWT verifies an HMAC bearer token and hydrates staff identity into
// Locals. Token issuance/refresh lives outside this service.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		// 1) Grab token: Authorization: Bearer xxx (or cookie if allowed)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verify algorithm
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		// staff_id is mandatory for every task surface
		sid := strClaim(claims, "staff_id")
		if sid == "" {
			sid = strClaim(claims, "sub")
		}
		staffID, er := uuid.Parse(sid)
		if er != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid staff_id claim")
		}
		c.Locals(LocStaffID, staffID)

		if v := strClaim(claims, "store_id"); v != "" {
			if storeID, er := uuid.Parse(v); er == nil {
				c.Locals(LocStoreID, storeID)
			}
		}

		if v, ok := claims["roles"]; ok {
			c.Locals(LocRoles, v)
		}

		return c.Next()
	}
}

// StaffIDFromLocals reads the staff UUID hydrated by AuthJWT.
func StaffIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals(LocStaffID).(uuid.UUID); ok && v != uuid.Nil {
		return v, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
