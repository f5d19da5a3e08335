package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mbernahr/simple-eri-test-server/internal/dto"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/contract"
	"github.com/mbernahr/simple-eri-test-server/pkg/embedding"
)

// ErrEmptyPrompt rejects retrieval requests without a usable prompt. It is a
// client error, not a server fault.
var ErrEmptyPrompt = errors.New("user prompt is required")

// Structurally dangerous characters stripped from prompts before any
// downstream use (logs, embedding, rendered surfaces). A blunt denylist, not
// a parser.
const dangerousChars = `<>{}();&|'"`

// SanitizePrompt deletes every denylisted character from the input.
// Sanitizing an already-clean string is a no-op.
func SanitizePrompt(input string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(dangerousChars, r) {
			return -1
		}
		return r
	}, input)
}

type IRetrievalService interface {
	// Retrieve validates and sanitizes the request, runs a similarity query
	// against the vector index and maps the hits into the external Context
	// contract, ranked by descending similarity.
	Retrieve(ctx context.Context, req *dto.RetrievalRequest) ([]dto.Context, error)
}

type retrievalService struct {
	chunkRepo         contract.ChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	defaultMatches    int
}

func NewRetrievalService(
	chunkRepo contract.ChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	defaultMatches int,
) IRetrievalService {
	return &retrievalService{
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		defaultMatches:    defaultMatches,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, req *dto.RetrievalRequest) ([]dto.Context, error) {
	prompt := SanitizePrompt(req.LatestUserPrompt)
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	maxMatches := req.MaxMatches
	if maxMatches <= 0 {
		maxMatches = s.defaultMatches
	}

	res, err := s.embeddingProvider.Generate(prompt, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed prompt: %w", err)
	}

	hits, err := s.chunkRepo.SearchSimilarWithScore(ctx, res.Embedding.Values, maxMatches)
	if err != nil {
		return nil, err
	}

	contexts := make([]dto.Context, len(hits))
	for i, hit := range hits {
		contexts[i] = dto.Context{
			Name:               hit.Chunk.Source,
			Category:           "Document",
			Path:               hit.Chunk.Source,
			Type:               dto.ContentTypeText,
			MatchedContent:     hit.Chunk.Content,
			SurroundingContent: []string{},
			Links:              []string{},
		}
	}
	return contexts, nil
}
