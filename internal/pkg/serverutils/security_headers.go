package serverutils

import "github.com/gofiber/fiber/v2"

// Hardening headers attached to every response, success or failure.
var securityHeaders = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   "default-src 'self'; img-src 'self' data:; script-src 'self'; style-src 'self'; font-src 'self' data:;",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
}

func SecurityHeadersMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		for name, value := range securityHeaders {
			ctx.Set(name, value)
		}
		return err
	}
}
