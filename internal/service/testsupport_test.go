package service

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/mbernahr/simple-eri-test-server/internal/entity"
	"github.com/mbernahr/simple-eri-test-server/internal/repository/contract"
	"github.com/mbernahr/simple-eri-test-server/pkg/embedding"
	"github.com/mbernahr/simple-eri-test-server/pkg/splitter"
)

// fakeEmbedder produces deterministic bag-of-words vectors so texts sharing
// words end up close in cosine space. failAfter > 0 makes the N+1th call fail.
type fakeEmbedder struct {
	dim        int
	failAfter  int
	failAlways bool
	calls      int
	badDim     bool
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.failAlways || (f.failAfter > 0 && f.calls > f.failAfter) {
		return nil, errors.New("embedding backend down")
	}

	dim := f.dim
	if f.badDim {
		dim++
	}

	vec := make([]float32, dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%uint32(dim)]++
	}

	var mag float64
	for _, v := range vec {
		mag += float64(v) * float64(v)
	}
	if mag > 0 {
		mag = math.Sqrt(mag)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / mag)
		}
	}

	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

// fakeChunkRepo is an in-memory stand-in for the pgvector repository with
// the same ordering semantics: similarity descending, insertion order on ties.
type fakeChunkRepo struct {
	chunks    []*entity.DocumentChunk
	lastLimit int
	failAdd   bool
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if r.failAdd {
		return contract.ErrStoreUnavailable
	}
	r.chunks = append(r.chunks, chunks...)
	return nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, vec []float32, limit int) ([]*contract.ScoredChunk, error) {
	r.lastLimit = limit
	if limit <= 0 {
		limit = 3
	}

	scored := make([]*contract.ScoredChunk, len(r.chunks))
	for i, c := range r.chunks {
		scored[i] = &contract.ScoredChunk{Chunk: c, Similarity: cosine(vec, c.EmbeddingValue)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (r *fakeChunkRepo) Clear(ctx context.Context) (int64, error) {
	n := int64(len(r.chunks))
	r.chunks = nil
	return n, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.chunks)), nil
}

// ingestDocument runs the real ingestion pipeline against the fakes with the
// standard geometry (chunk size 1000, overlap 100).
func ingestDocument(t testing.TB, repo *fakeChunkRepo, embedder *fakeEmbedder, filename, content string) int {
	t.Helper()

	textSplitter, err := splitter.New(1000, 100)
	if err != nil {
		t.Fatalf("splitter: %v", err)
	}

	svc := NewIngestionService(repo, embedder, textSplitter, embedder.dim)
	count, err := svc.Ingest(context.Background(), []byte(content), filename)
	if err != nil {
		t.Fatalf("ingest %s: %v", filename, err)
	}
	return count
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
