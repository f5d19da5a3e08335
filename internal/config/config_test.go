package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStaticTokens(t *testing.T) {
	t.Run("empty disables the scheme", func(t *testing.T) {
		tokens, err := parseStaticTokens("")
		require.NoError(t, err)
		assert.Empty(t, tokens)

		tokens, err = parseStaticTokens("   ")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("single and multiple pairs", func(t *testing.T) {
		tokens, err := parseStaticTokens("eri-client:secret-one")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"eri-client": "secret-one"}, tokens)

		tokens, err = parseStaticTokens("a:1, b:2")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, tokens)
	})

	t.Run("secret may contain colons", func(t *testing.T) {
		tokens, err := parseStaticTokens("svc:sec:ret")
		require.NoError(t, err)
		assert.Equal(t, "sec:ret", tokens["svc"])
	})

	t.Run("malformed entries rejected", func(t *testing.T) {
		for _, raw := range []string{"no-colon", "subject:", ":secret", "a:1,bad"} {
			_, err := parseStaticTokens(raw)
			assert.Error(t, err, "input %q", raw)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Auth:      AuthConfig{JWTSecret: "s", TokenLifetimeMins: 180},
			Embedding: EmbeddingConfig{Provider: "ollama", Dimension: 768},
			Retrieval: RetrievalConfig{ChunkSize: 1000, ChunkOverlap: 100, DefaultMatches: 3},
		}
	}

	assert.NoError(t, valid().validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"non-positive token lifetime", func(c *Config) { c.Auth.TokenLifetimeMins = 0 }},
		{"non-positive chunk size", func(c *Config) { c.Retrieval.ChunkSize = 0 }},
		{"negative overlap", func(c *Config) { c.Retrieval.ChunkOverlap = -1 }},
		{"overlap not below chunk size", func(c *Config) { c.Retrieval.ChunkOverlap = 1000 }},
		{"non-positive dimension", func(c *Config) { c.Embedding.Dimension = 0 }},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "openai" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
