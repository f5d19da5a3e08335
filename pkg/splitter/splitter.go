package splitter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Separator preference order: paragraph break, line break, sentence end,
// word boundary, raw characters as the last resort.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter divides long text into chunks of at most chunkSize runes with an
// overlap carried between consecutive chunks. Splits prefer structural
// boundaries (paragraphs before sentences before raw characters), and
// separators stay attached to the preceding piece so no text is lost.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func New(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("splitter: chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("splitter: overlap must satisfy 0 <= overlap < chunk size, got %d", overlap)
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}, nil
}

// Split chunks the given text. Every returned chunk is at most chunkSize
// runes long.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}

	sep, rest := pickSeparator(text, separators)
	if sep == "" {
		return s.splitRunes(text)
	}

	pieces := splitAfter(text, sep)

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, ""))
		}
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)

		// A piece that alone exceeds the budget is split again on the
		// next-finer separator.
		if pieceLen > s.chunkSize {
			flush()
			current, currentLen = nil, 0
			chunks = append(chunks, s.split(piece, rest)...)
			continue
		}

		if currentLen+pieceLen > s.chunkSize {
			flush()
			current, currentLen = s.carryOverlap(current, pieceLen)
		}
		current = append(current, piece)
		currentLen += pieceLen
	}
	flush()

	return chunks
}

// carryOverlap selects trailing pieces of the just-emitted chunk to seed the
// next one, bounded by the overlap budget and by the invariant that the new
// chunk (overlap + incoming piece) still fits in chunkSize.
func (s *Splitter) carryOverlap(pieces []string, nextLen int) ([]string, int) {
	var carried []string
	carriedLen := 0
	for i := len(pieces) - 1; i >= 0; i-- {
		l := utf8.RuneCountInString(pieces[i])
		if carriedLen+l > s.overlap || carriedLen+l+nextLen > s.chunkSize {
			break
		}
		carried = append([]string{pieces[i]}, carried...)
		carriedLen += l
	}
	return carried, carriedLen
}

// splitRunes is the raw character fallback: fixed-size rune windows advanced
// by (chunkSize - overlap).
func (s *Splitter) splitRunes(text string) []string {
	runes := []rune(text)
	totalLen := len(runes)

	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + s.chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}
	return chunks
}

// pickSeparator returns the first separator present in the text along with
// the finer-grained separators left to recurse on.
func pickSeparator(text string, separators []string) (string, []string) {
	for i, sep := range separators {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, separators[i+1:]
		}
	}
	return "", nil
}

// splitAfter splits keeping the separator attached to the preceding piece
// and drops the empty trailing piece SplitAfter produces when the text ends
// with the separator.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
