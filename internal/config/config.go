package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Embedding EmbeddingConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	MaxRequestBytes    int
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret          string
	TokenLifetimeMins  int
	StaticTokens       map[string]string // subject -> pre-shared secret
	CredentialFilePath string
}

type EmbeddingConfig struct {
	Provider      string // "ollama" or "gemini"
	OllamaBaseURL string
	OllamaModel   string
	GeminiApiKey  string
	Dimension     int
}

type RetrievalConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	DefaultMatches int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "40304"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "eri.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			MaxRequestBytes:    getEnvAsInt("MAX_REQUEST_BYTES", 10_000_000),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			TokenLifetimeMins:  getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 180),
			CredentialFilePath: getEnv("CREDENTIAL_FILE_PATH", "users.json"),
		},
		Embedding: EmbeddingConfig{
			Provider:      getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiApiKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Dimension:     getEnvAsInt("EMBEDDING_DIMENSION", 768),
		},
		Retrieval: RetrievalConfig{
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 100),
			DefaultMatches: getEnvAsInt("DEFAULT_MAX_MATCHES", 3),
		},
	}

	staticTokens, err := parseStaticTokens(getEnv("STATIC_TOKENS", ""))
	if err != nil {
		return nil, err
	}
	cfg.Auth.StaticTokens = staticTokens

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseStaticTokens parses the STATIC_TOKENS format "subject:secret,subject2:secret2".
// An empty value yields an empty allow-list, which disables the static-token scheme.
func parseStaticTokens(raw string) (map[string]string, error) {
	tokens := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return tokens, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		subject, secret, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || subject == "" || secret == "" {
			return nil, fmt.Errorf("config: invalid STATIC_TOKENS entry %q, expected subject:secret", pair)
		}
		tokens[subject] = secret
	}
	return tokens, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Auth.TokenLifetimeMins <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.Auth.TokenLifetimeMins)
	}
	if c.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("config: CHUNK_SIZE must be positive, got %d", c.Retrieval.ChunkSize)
	}
	if c.Retrieval.ChunkOverlap < 0 || c.Retrieval.ChunkOverlap >= c.Retrieval.ChunkSize {
		return fmt.Errorf("config: CHUNK_OVERLAP must satisfy 0 <= overlap < chunk size, got %d", c.Retrieval.ChunkOverlap)
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("config: EMBEDDING_DIMENSION must be positive, got %d", c.Embedding.Dimension)
	}
	switch c.Embedding.Provider {
	case "ollama", "gemini":
	default:
		return fmt.Errorf("config: unknown EMBEDDING_PROVIDER %q", c.Embedding.Provider)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
