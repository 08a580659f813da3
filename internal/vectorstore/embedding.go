package vectorstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDimensions matches the dimensionality of text-embedding-ada-002 so
// stored vectors stay interchangeable with a real embedding backend.
const DefaultDimensions = 1536

// ErrDegenerateEmbedding indicates the raw hash vector had zero norm. That
// can only happen through a logic bug in the expansion, so it is surfaced
// instead of swallowed.
var ErrDegenerateEmbedding = errors.New("degenerate embedding: zero-norm vector")

var whitespaceRe = regexp.MustCompile(`\s+`)

// Embedder maps arbitrary text to a fixed-length unit vector without any
// network calls. Identical normalized inputs always produce bit-identical
// vectors; callers rely on that determinism.
type Embedder struct {
	dimensions int
}

func NewEmbedder(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Embed expands the SHA-256 digest of the normalized text into the target
// dimensionality and L2-normalizes the result.
func (e *Embedder) Embed(text string) ([]float64, error) {
	digest := sha256.Sum256([]byte(normalizeText(text)))
	hexDigest := hex.EncodeToString(digest[:])

	vec := make([]float64, e.dimensions)
	var sumSquares float64
	for i := 0; i < e.dimensions; i++ {
		pos := (i * 2) % len(hexDigest)
		v, err := strconv.ParseUint(hexDigest[pos:pos+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parse digest window at %d: %w", pos, err)
		}
		vec[i] = (float64(v)/255)*2 - 1
		sumSquares += vec[i] * vec[i]
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return nil, ErrDegenerateEmbedding
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

// normalizeText lower-cases, collapses whitespace runs and trims, so that
// texts differing only in case or spacing embed identically.
func normalizeText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(text), " "))
}
