package serverutils

import (
	"strings"

	"github.com/mbernahr/simple-eri-test-server/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LocalsSubjectKey is where the security middleware stores the verified
// token subject for downstream handlers.
const LocalsSubjectKey = "subject"

// Paths outside the security gateway: authentication endpoints,
// administrative endpoints and fixed health/info paths.
var exemptPrefixes = []string{"/api/auth", "/api/admin"}
var exemptPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// SecurityMiddleware is the request-level policy gate applied to every
// protected route: a session-proof header is required, static pre-shared
// secrets are rejected as session proof, oversize requests are refused
// before further processing, and the session token is verified.
func SecurityMiddleware(authService service.IAuthService, tokenService service.ITokenService, maxRequestBytes int) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// Preflight OPTIONS pass without a token check
		if ctx.Method() == fiber.MethodOptions {
			return ctx.Next()
		}

		if isExempt(ctx.Path()) {
			return ctx.Next()
		}

		token := ctx.Get("token")
		if token == "" {
			return unauthorized(ctx, "No token provided")
		}

		// Pre-shared secrets are single-use for authentication only and must
		// never double as standing session proof.
		if authService.IsStaticToken(token) {
			return unauthorized(ctx, "Invalid token type")
		}

		if ctx.Request().Header.ContentLength() > maxRequestBytes {
			return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusRequestEntityTooLarge,
				"message": "Request too large",
			})
		}

		// Rate limiting: reserved extension point, fails open.

		subject, err := tokenService.Verify(token)
		if err != nil {
			return unauthorized(ctx, "Invalid authentication credentials")
		}

		ctx.Locals(LocalsSubjectKey, subject)
		return ctx.Next()
	}
}

func isExempt(path string) bool {
	if exemptPaths[path] {
		return true
	}
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	ctx.Set("WWW-Authenticate", "Bearer")
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"code":    fiber.StatusUnauthorized,
		"message": message,
	})
}
