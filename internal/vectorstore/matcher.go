package vectorstore

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/careerbloom/backend/internal/model"
)

// ScoredResult pairs a stored job with its relevance score. Score semantics
// depend on the strategy: cosine similarity in [-1,1] or keyword overlap in
// [0,1]. MatchPercentage is the score rounded to a percent and clamped to
// [0,100].
type ScoredResult struct {
	Job             model.Job `json:"job"`
	Score           float64   `json:"score"`
	MatchPercentage int       `json:"match_percentage"`
}

// Strategy ranks stored entries against a query. Implementations return the
// full scored list sorted non-increasing by score, ties broken by insertion
// order; the caller truncates with TopK.
type Strategy interface {
	Name() string
	Rank(entries []Entry, query string) ([]ScoredResult, error)
}

// CosineStrategy embeds the query and scores each entry by the dot product of
// the two unit vectors. Negative similarities are preserved, not clamped.
type CosineStrategy struct {
	embedder *Embedder
}

func NewCosineStrategy(embedder *Embedder) *CosineStrategy {
	if embedder == nil {
		embedder = NewEmbedder(DefaultDimensions)
	}
	return &CosineStrategy{embedder: embedder}
}

func (s *CosineStrategy) Name() string { return "cosine" }

func (s *CosineStrategy) Rank(entries []Entry, query string) ([]ScoredResult, error) {
	queryVec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	results := make([]ScoredResult, len(entries))
	for i, e := range entries {
		results[i] = newScored(e.Job, dot(queryVec, e.Embedding))
	}
	sortByScore(results)
	return results, nil
}

// KeywordStrategy scores each entry by the fraction of query keywords also
// present in the entry's search text.
type KeywordStrategy struct{}

func (KeywordStrategy) Name() string { return "keyword-overlap" }

func (KeywordStrategy) Rank(entries []Entry, query string) ([]ScoredResult, error) {
	queryKeywords := Keywords(query)
	denom := len(queryKeywords)
	if denom < 1 {
		denom = 1
	}
	results := make([]ScoredResult, len(entries))
	for i, e := range entries {
		entryKeywords := Keywords(e.SearchText)
		overlap := 0
		for k := range queryKeywords {
			if _, ok := entryKeywords[k]; ok {
				overlap++
			}
		}
		results[i] = newScored(e.Job, float64(overlap)/float64(denom))
	}
	sortByScore(results)
	return results, nil
}

// TopK truncates a ranked list to at most k results without reordering.
// k <= 0 yields an empty list; k beyond the list length yields the whole list.
func TopK(results []ScoredResult, k int) []ScoredResult {
	if k <= 0 {
		return nil
	}
	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

func newScored(job model.Job, score float64) ScoredResult {
	pct := int(math.Round(score * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return ScoredResult{Job: job, Score: score, MatchPercentage: pct}
}

// sortByScore orders non-increasing by score. The stable sort keeps
// insertion order for ties, so earlier-inserted jobs win.
func sortByScore(results []ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "of": {}, "to": {}, "a": {}, "in": {}, "for": {},
	"is": {}, "on": {}, "that": {}, "by": {}, "this": {}, "with": {}, "i": {},
	"you": {}, "it": {}, "not": {}, "or": {}, "be": {}, "are": {}, "from": {},
	"at": {}, "as": {}, "your": {}, "have": {}, "more": {}, "an": {},
	"was": {}, "we": {}, "will": {},
}

// Keywords tokenizes text for overlap scoring: lower-case, strip punctuation,
// drop short tokens and stop words, de-duplicate into a set.
func Keywords(text string) map[string]struct{} {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(cleaned)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
