package controller

import (
	"strings"

	"github.com/mbernahr/simple-eri-test-server/internal/dto"
	"github.com/mbernahr/simple-eri-test-server/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Authenticate(ctx *fiber.Ctx) error
	GetAuthMethods(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("", c.Authenticate)
	h.Get("/methods", c.GetAuthMethods)
}

// Authenticate handles both variants; the caller selects one explicitly via
// the authMethod query parameter. The schemes are an independent union, not
// a fallback chain.
func (c *authController) Authenticate(ctx *fiber.Ctx) error {
	method := dto.AuthMethod(ctx.Query("authMethod"))

	switch method {
	case dto.AuthMethodToken:
		token := bearerToken(ctx.Get("Authorization"))
		if token == "" {
			ctx.Set("WWW-Authenticate", "Bearer")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusUnauthorized,
				"message": "No token provided",
			})
		}
		res, err := c.service.AuthenticateToken(token)
		if err != nil {
			return err
		}
		return ctx.JSON(res)

	case dto.AuthMethodUsernamePassword:
		username := ctx.Get("user")
		password := ctx.Get("password")
		if username == "" || password == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusBadRequest,
				"message": "Header 'user' and 'password' required",
			})
		}
		res, err := c.service.AuthenticatePassword(username, password)
		if err != nil {
			return err
		}
		return ctx.JSON(res)

	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusBadRequest,
			"message": "Unsupported authentication method",
		})
	}
}

func (c *authController) GetAuthMethods(ctx *fiber.Ctx) error {
	schemes := []dto.AuthScheme{
		{
			AuthMethod: dto.AuthMethodToken,
			AuthFieldMappings: []dto.AuthFieldMapping{
				{AuthField: dto.AuthFieldToken, FieldName: "token"},
			},
		},
		{
			AuthMethod: dto.AuthMethodUsernamePassword,
			AuthFieldMappings: []dto.AuthFieldMapping{
				{AuthField: dto.AuthFieldUsername, FieldName: "user"},
				{AuthField: dto.AuthFieldPassword, FieldName: "password"},
			},
		},
	}
	return ctx.JSON(schemes)
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}
