package controller

import (
	"errors"

	"github.com/mbernahr/simple-eri-test-server/internal/config"
	"github.com/mbernahr/simple-eri-test-server/internal/dto"
	"github.com/mbernahr/simple-eri-test-server/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRetrievalController interface {
	RegisterRoutes(r fiber.Router)
	Retrieve(ctx *fiber.Ctx) error
	GetRetrievalInfo(ctx *fiber.Ctx) error
}

type retrievalController struct {
	service service.IRetrievalService
	cfg     *config.Config
}

func NewRetrievalController(service service.IRetrievalService, cfg *config.Config) IRetrievalController {
	return &retrievalController{service: service, cfg: cfg}
}

func (c *retrievalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/retrieval")
	h.Post("", c.Retrieve)
	h.Get("/info", c.GetRetrievalInfo)
}

func (c *retrievalController) Retrieve(ctx *fiber.Ctx) error {
	var req dto.RetrievalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}

	contexts, err := c.service.Retrieve(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusBadRequest,
				"message": "User prompt is required",
			})
		}
		// Anything else is a server fault; the error handler logs the cause
		// and the client sees an opaque message.
		return err
	}

	return ctx.JSON(contexts)
}

func (c *retrievalController) GetRetrievalInfo(ctx *fiber.Ctx) error {
	info := []dto.RetrievalInfo{
		{
			Id:          "similarity-retrieval-1",
			Name:        "Similarity Retrieval",
			Description: "Similarity-based nearest neighbor search over embedded document chunks",
			ParametersDescription: map[string]string{
				"maxMatches": "Integer > 0, default: 3",
			},
			Embeddings: []dto.EmbeddingInfo{embeddingInfoFor(c.cfg)},
		},
	}
	return ctx.JSON(info)
}
