package authz

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/domain"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

const usernameKey = "identity_username"

// Identity resolves the caller's username from the trusted proxy header
// or, when configured, from an externally issued bearer token. It never
// rejects: routes without a RequirePage guard stay public, and guarded
// routes deny unauthenticated callers themselves.
func Identity(cfg config.IdentityConfig, verifier *TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if username := strings.TrimSpace(c.Get(cfg.UsernameHeader)); username != "" {
			c.Locals(usernameKey, username)
			return c.Next()
		}
		if verifier.Enabled() {
			if header := c.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					if username, err := verifier.Verify(parts[1]); err == nil {
						c.Locals(usernameKey, username)
					}
				}
			}
		}
		return c.Next()
	}
}

// UsernameFromContext retrieves the resolved caller username.
func UsernameFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(usernameKey)
	if val == nil {
		return "", false
	}
	username, ok := val.(string)
	return username, ok && username != ""
}

// RequirePage guards a route group with a page permission check.
func RequirePage(engine *Engine, page string, allowed ...domain.PermissionLevel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := UsernameFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("identity required")
		}
		if !engine.CanAccess(c.UserContext(), username, page, allowed...) {
			return apperrors.NewPermissionDenied("insufficient permissions for " + page)
		}
		return c.Next()
	}
}
