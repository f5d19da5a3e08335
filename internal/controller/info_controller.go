package controller

import (
	"github.com/mbernahr/simple-eri-test-server/internal/config"
	"github.com/mbernahr/simple-eri-test-server/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IInfoController interface {
	RegisterRoutes(r fiber.Router)
	GetDataSourceInfo(ctx *fiber.Ctx) error
	GetEmbeddingInfo(ctx *fiber.Ctx) error
	GetSecurityRequirements(ctx *fiber.Ctx) error
}

type infoController struct {
	cfg *config.Config
}

func NewInfoController(cfg *config.Config) IInfoController {
	return &infoController{cfg: cfg}
}

func (c *infoController) RegisterRoutes(r fiber.Router) {
	r.Get("/dataSource", c.GetDataSourceInfo)
	r.Get("/embedding/info", c.GetEmbeddingInfo)
	r.Get("/security/requirements", c.GetSecurityRequirements)
}

func (c *infoController) GetDataSourceInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.DataSourceInfo{
		Name:        "ERI Test Server",
		Description: "External Retrieval Interface over a pgvector-backed document corpus",
	})
}

func (c *infoController) GetEmbeddingInfo(ctx *fiber.Ctx) error {
	return ctx.JSON([]dto.EmbeddingInfo{embeddingInfoFor(c.cfg)})
}

func (c *infoController) GetSecurityRequirements(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.SecurityRequirements{
		AllowedProviderType: dto.ProviderTypeAny,
	})
}

// embeddingInfoFor describes the configured embedding provider in the ERI
// descriptor format. Shared with the retrieval info endpoint.
func embeddingInfoFor(cfg *config.Config) dto.EmbeddingInfo {
	if cfg.Embedding.Provider == "gemini" {
		return dto.EmbeddingInfo{
			EmbeddingType: "Transformer embedding",
			EmbeddingName: "text-embedding-004",
			Description:   "Google Gemini text-embedding-004 model",
			UsedWhen:      "anytime",
			Link:          "https://ai.google.dev/gemini-api/docs/embeddings",
		}
	}
	return dto.EmbeddingInfo{
		EmbeddingType: "Transformer embedding",
		EmbeddingName: cfg.Embedding.OllamaModel,
		Description:   "Local Ollama embedding model",
		UsedWhen:      "anytime",
		Link:          "https://ollama.com/library/" + cfg.Embedding.OllamaModel,
	}
}
