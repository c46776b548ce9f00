package web

import (
	"crypto/subtle"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// BearerToken rejects requests whose Authorization header does not carry token. Paths in
// skip are served without a token. An empty token disables the check.
func BearerToken(token string, skip ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token == "" || slices.Contains(skip, c.Path()) {
			return c.Next()
		}

		got, ok := ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return unauthorized(c)
		}

		return c.Next()
	}
}

// ExtractBearerToken returns the credentials of a "Bearer <token>" header. The scheme is
// matched case-insensitively.
func ExtractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
