package bootstrap

import (
	"log"
	"time"

	"github.com/mbernahr/simple-eri-test-server/internal/config"
	"github.com/mbernahr/simple-eri-test-server/internal/controller"
	"github.com/mbernahr/simple-eri-test-server/internal/pkg/logger"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/contract"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/credential"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/implementation"
	"github.com/mbernahr/simple-eri-test-server/internal/service"
	"github.com/mbernahr/simple-eri-test-server/pkg/embedding"
	"github.com/mbernahr/simple-eri-test-server/pkg/splitter"

	"gorm.io/gorm"
)

// Container wires every service instance explicitly at startup. Backing
// resources (index, credential file) are opened eagerly so misconfiguration
// fails fast instead of on first use.
type Container struct {
	Logger logger.ILogger

	TokenService service.ITokenService
	AuthService  service.IAuthService

	ChunkRepository contract.ChunkRepository

	AuthController      controller.IAuthController
	RetrievalController controller.IRetrievalController
	InfoController      controller.IInfoController
	AdminController     controller.IAdminController
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Credential store (durable JSON file, loaded eagerly)
	credStore, err := credential.NewFileStore(cfg.Auth.CredentialFilePath)
	if err != nil {
		return nil, err
	}

	// Embedding provider selected by config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Embedding.Provider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Embedding.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Embedding.OllamaBaseURL, cfg.Embedding.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Embedding.OllamaModel)
	}

	textSplitter, err := splitter.New(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	// Repositories
	chunkRepo := implementation.NewChunkRepository(db)

	// Services
	tokenService := service.NewTokenService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMins)*time.Minute,
	)
	authService := service.NewAuthService(cfg.Auth.StaticTokens, credStore, tokenService)
	ingestionService := service.NewIngestionService(chunkRepo, embeddingProvider, textSplitter, cfg.Embedding.Dimension)
	retrievalService := service.NewRetrievalService(chunkRepo, embeddingProvider, cfg.Retrieval.DefaultMatches)

	return &Container{
		Logger:          sysLogger,
		TokenService:    tokenService,
		AuthService:     authService,
		ChunkRepository: chunkRepo,

		AuthController:      controller.NewAuthController(authService),
		RetrievalController: controller.NewRetrievalController(retrievalService, cfg),
		InfoController:      controller.NewInfoController(cfg),
		AdminController:     controller.NewAdminController(credStore, ingestionService, chunkRepo, sysLogger),
	}, nil
}
