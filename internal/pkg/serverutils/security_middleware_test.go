package serverutils

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mbernahr/simple-eri-test-server/internal/repository/credential"
	"github.com/mbernahr/simple-eri-test-server/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret      = "unit-test-signing-secret"
	testStaticToken = "pre-shared-secret-value"
	testMaxBytes    = 1024
)

func newSecuredApp(t *testing.T) (*fiber.App, service.ITokenService) {
	t.Helper()

	tokenService := service.NewTokenService(testSecret, 15*time.Minute)
	store, err := credential.NewFileStore(t.TempDir() + "/users.json")
	require.NoError(t, err)
	authService := service.NewAuthService(
		map[string]string{"eri-client": testStaticToken}, store, tokenService)

	app := fiber.New()
	app.Use(SecurityHeadersMiddleware())
	app.Use(SecurityMiddleware(authService, tokenService, testMaxBytes))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "healthy"})
	})
	app.Post("/api/auth", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"success": true})
	})
	app.Post("/api/retrieval", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"subject": ctx.Locals(LocalsSubjectKey),
		})
	})

	return app, tokenService
}

func TestSecurityMiddlewareRequiresToken(t *testing.T) {
	app, _ := newSecuredApp(t)

	req := httptest.NewRequest("POST", "/api/retrieval", nil)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Bearer", res.Header.Get("WWW-Authenticate"))
}

func TestSecurityMiddlewareRejectsStaticTokenAsSession(t *testing.T) {
	app, _ := newSecuredApp(t)

	req := httptest.NewRequest("POST", "/api/retrieval", nil)
	req.Header.Set("token", testStaticToken)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestSecurityMiddlewareRejectsGarbageToken(t *testing.T) {
	app, _ := newSecuredApp(t)

	req := httptest.NewRequest("POST", "/api/retrieval", nil)
	req.Header.Set("token", "not-a-jwt")
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestSecurityMiddlewareAcceptsValidToken(t *testing.T) {
	app, tokenService := newSecuredApp(t)

	token, err := tokenService.Issue("eri-client")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/retrieval", nil)
	req.Header.Set("token", token)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestSecurityMiddlewareRejectsOversizeRequest(t *testing.T) {
	app, tokenService := newSecuredApp(t)

	token, err := tokenService.Issue("eri-client")
	require.NoError(t, err)

	body := strings.NewReader(strings.Repeat("x", testMaxBytes*2))
	req := httptest.NewRequest("POST", "/api/retrieval", body)
	req.Header.Set("token", token)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusRequestEntityTooLarge, res.StatusCode)
}

func TestSecurityMiddlewareExemptPaths(t *testing.T) {
	app, _ := newSecuredApp(t)

	for _, path := range []string{"/health", "/api/auth"} {
		method := "GET"
		if path == "/api/auth" {
			method = "POST"
		}
		res, err := app.Test(httptest.NewRequest(method, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode, "path %s must bypass the gateway", path)
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	app, _ := newSecuredApp(t)

	// Both a passing and a rejected request carry the hardening headers.
	okRes, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	deniedRes, err := app.Test(httptest.NewRequest("POST", "/api/retrieval", nil))
	require.NoError(t, err)

	for name, value := range securityHeaders {
		assert.Equal(t, value, okRes.Header.Get(name), "header %s on success", name)
		assert.Equal(t, value, deniedRes.Header.Get(name), "header %s on denial", name)
	}
}
