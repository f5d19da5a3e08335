package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mbernahr/simple-eri-test-server/internal/entity"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/contract"
	"github.com/mbernahr/simple-eri-test-server/pkg/embedding"
	"github.com/mbernahr/simple-eri-test-server/pkg/splitter"

	"github.com/google/uuid"
)

// ErrUnreadableDocument marks documents the pipeline cannot turn into text:
// unsupported file types or content that is not valid UTF-8.
var ErrUnreadableDocument = errors.New("document could not be read")

var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

type IIngestionService interface {
	// Ingest decomposes a document into overlapping chunks, embeds each and
	// commits them to the vector index as one atomic batch. Any failure
	// aborts the whole batch; the caller observes a single pass/fail
	// outcome, never a partial commit.
	Ingest(ctx context.Context, content []byte, filename string) (int, error)
}

type ingestionService struct {
	chunkRepo         contract.ChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	splitter          *splitter.Splitter
	dimension         int
}

func NewIngestionService(
	chunkRepo contract.ChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	textSplitter *splitter.Splitter,
	dimension int,
) IIngestionService {
	return &ingestionService{
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		splitter:          textSplitter,
		dimension:         dimension,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, content []byte, filename string) (int, error) {
	pages, err := extractPages(content, filename)
	if err != nil {
		return 0, err
	}

	var chunks []*entity.DocumentChunk
	chunkIndex := 0

	for _, page := range pages {
		for _, text := range s.splitter.Split(page) {
			if strings.TrimSpace(text) == "" {
				continue
			}

			res, err := s.embeddingProvider.Generate(text, embedding.TaskTypeDocument)
			if err != nil {
				return 0, fmt.Errorf("embed chunk %d of %s: %w", chunkIndex, filename, err)
			}
			values := res.Embedding.Values
			if len(values) != s.dimension {
				return 0, fmt.Errorf("embedding for chunk %d of %s has dimension %d, expected %d",
					chunkIndex, filename, len(values), s.dimension)
			}

			chunks = append(chunks, &entity.DocumentChunk{
				Id:             uuid.New(),
				Source:         filename,
				ChunkIndex:     chunkIndex,
				Content:        text,
				EmbeddingValue: values,
				CreatedAt:      time.Now(),
			})
			chunkIndex++
		}
	}

	if err := s.chunkRepo.CreateBulk(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// extractPages parses document bytes into ordered page-level text units.
// Pages are form-feed separated; a document without form feeds is a single
// page.
func extractPages(content []byte, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrUnreadableDocument, ext)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrUnreadableDocument)
	}
	return strings.Split(string(content), "\f"), nil
}
