package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Identity headers set by the auth gateway in front of this service.
// The gateway verifies the session with the identity provider and strips
// any client-supplied values, so these can be trusted as verified claims.
const (
	HeaderAuthEmail = "X-Auth-Email"
	HeaderAuthUser  = "X-Auth-User"
)

// AuthedEmail returns the verified email claim of the caller, or "" for
// anonymous requests.
func AuthedEmail(c fiber.Ctx) string {
	return strings.ToLower(strings.TrimSpace(c.Get(HeaderAuthEmail)))
}

// AuthedUserID returns the identity provider's user id for the caller, or
// "" for anonymous requests. Guest submissions are allowed, so handlers
// treat an empty value as a null owner.
func AuthedUserID(c fiber.Ctx) string {
	return strings.TrimSpace(c.Get(HeaderAuthUser))
}

// RequireAdmin returns a middleware that gates a route group behind the
// configured admin email allow-list. Exact-match only; no roles, no
// hierarchy. Non-admins get a 403 with no further detail.
func RequireAdmin(adminEmails []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		email := AuthedEmail(c)
		if email == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Admin access required")
		}
		if _, ok := allowed[email]; !ok {
			return ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Admin access required")
		}
		return c.Next()
	}
}
