package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route group on one of the JWT roles hydrated by
// AuthJWT ("admin", "manager", ...).
func RequireRole(wanted ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := rolesFromLocals(c)
		for _, w := range wanted {
			for _, r := range roles {
				if strings.EqualFold(r, w) {
					return c.Next()
				}
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: insufficient role")
	}
}

func rolesFromLocals(c *fiber.Ctx) []string {
	switch v := c.Locals(LocRoles).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Split(v, ",")
	default:
		return nil
	}
}
