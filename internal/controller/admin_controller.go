package controller

import (
	"errors"
	"io"

	"github.com/mbernahr/simple-eri-test-server/internal/dto"
	"github.com/mbernahr/simple-eri-test-server/internal/pkg/logger"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/contract"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/credential"
	"github.com/mbernahr/simple-eri-test-server/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	UpsertCredential(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type adminController struct {
	credentials credential.Store
	ingestion   service.IIngestionService
	chunkRepo   contract.ChunkRepository
	validate    *validator.Validate
	log         logger.ILogger
}

func NewAdminController(
	credentials credential.Store,
	ingestion service.IIngestionService,
	chunkRepo contract.ChunkRepository,
	log logger.ILogger,
) IAdminController {
	return &adminController{
		credentials: credentials,
		ingestion:   ingestion,
		chunkRepo:   chunkRepo,
		validate:    validator.New(),
		log:         log,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/user", c.UpsertCredential)
	h.Post("/upload", c.Upload)
	h.Post("/clear", c.Clear)
}

// UpsertCredential creates a user or overwrites the stored password for an
// existing one.
func (c *adminController) UpsertCredential(ctx *fiber.Ctx) error {
	var req dto.UpsertCredentialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusBadRequest,
			"message": "Invalid request body",
		})
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusBadRequest,
			"message": "Fields 'username' and 'password' are required",
		})
	}

	if err := c.credentials.Upsert(req.Username, req.Password); err != nil {
		return err
	}

	c.log.Info("admin", "credential upserted", map[string]interface{}{
		"username": req.Username,
	})
	return ctx.JSON(dto.UpsertCredentialResponse{Success: true, Username: req.Username})
}

// Upload ingests a document into the vector index.
func (c *adminController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusBadRequest,
			"message": "Multipart field 'file' is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	chunkCount, err := c.ingestion.Ingest(ctx.Context(), content, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, service.ErrUnreadableDocument) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusBadRequest,
				"message": err.Error(),
			})
		}
		return err
	}

	c.log.Info("admin", "document ingested", map[string]interface{}{
		"filename": fileHeader.Filename,
		"chunks":   chunkCount,
	})
	return ctx.JSON(dto.UploadResponse{
		Success:    true,
		Filename:   fileHeader.Filename,
		ChunkCount: chunkCount,
	})
}

// Clear removes every chunk from the vector index. Idempotent.
func (c *adminController) Clear(ctx *fiber.Ctx) error {
	removed, err := c.chunkRepo.Clear(ctx.Context())
	if err != nil {
		return err
	}

	c.log.Info("admin", "vector index cleared", map[string]interface{}{
		"removed": removed,
	})
	return ctx.JSON(dto.ClearResponse{Success: true})
}
