package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/careerbloom/backend/internal/model"
	"github.com/careerbloom/backend/internal/vectorstore"
)

// CorpusLoader supplies the initial job corpus pulled from the database
// during initialization.
type CorpusLoader func() ([]model.Job, error)

// FallbackProvider produces the deterministic result set returned when a
// recommendation request fails internally. Injected so tests can assert on
// the distinct empty-vs-fallback behavior of Query and Recommend.
type FallbackProvider func(limit int) []vectorstore.ScoredResult

const (
	defaultIngestBatchSize = 10
	defaultIngestPause     = time.Second
)

// RetrievalService owns an in-memory job store and exposes the retrieval
// operations consumed by the chatbot and recommendation flows. Query ranks
// with cosine similarity, Recommend with keyword overlap; the two are kept as
// separate named strategies because their callers depend on their distinct
// behaviors.
type RetrievalService struct {
	store    *vectorstore.Store
	cosine   vectorstore.Strategy
	keywords vectorstore.Strategy
	loader   CorpusLoader
	fallback FallbackProvider

	mu          sync.Mutex
	initialized bool

	batchSize  int
	batchPause time.Duration
}

func NewRetrievalService(store *vectorstore.Store, loader CorpusLoader, fallback FallbackProvider) *RetrievalService {
	if store == nil {
		store = vectorstore.NewStore(nil)
	}
	if fallback == nil {
		fallback = MockRecommendations
	}
	return &RetrievalService{
		store:      store,
		cosine:     vectorstore.NewCosineStrategy(store.Embedder()),
		keywords:   vectorstore.KeywordStrategy{},
		loader:     loader,
		fallback:   fallback,
		batchSize:  defaultIngestBatchSize,
		batchPause: defaultIngestPause,
	}
}

// Initialize prepares the store exactly once; repeated calls are no-ops until
// Clear resets the service. A failed corpus load is logged and swallowed: the
// service still comes up Ready, with whatever was loaded.
func (s *RetrievalService) Initialize(skipExternalLoad bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := s.store.Init(); err != nil {
		return err
	}
	if !skipExternalLoad && s.loader != nil {
		jobs, err := s.loader()
		switch {
		case err != nil:
			log.Printf("retrieval: initial corpus load failed: %v", err)
		case len(jobs) > 0:
			if err := s.store.Add(jobs); err != nil {
				log.Printf("retrieval: adding %d loaded jobs failed: %v", len(jobs), err)
			} else {
				log.Printf("retrieval: loaded %d jobs into store", len(jobs))
			}
		}
	}
	s.initialized = true
	return nil
}

func (s *RetrievalService) ensureInitialized() {
	// Initialize never returns an error today (load failures are swallowed),
	// but keep the call shape honest.
	if err := s.Initialize(false); err != nil {
		log.Printf("retrieval: lazy initialization failed: %v", err)
	}
}

// Ingest adds jobs to the store in batches of ten with a pause between
// batches, so a downstream rate-limited consumer is not flooded. A failed
// batch is logged and skipped; remaining batches still run. Cancellation is
// honored between batches.
func (s *RetrievalService) Ingest(ctx context.Context, jobs []model.Job) error {
	s.ensureInitialized()
	for start := 0; start < len(jobs); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + s.batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		if err := s.store.Add(jobs[start:end]); err != nil {
			log.Printf("retrieval: ingest batch %d failed: %v", start/s.batchSize+1, err)
		}
		if end < len(jobs) && s.batchPause > 0 {
			select {
			case <-time.After(s.batchPause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// Query ranks the stored jobs against the query text with cosine similarity
// and returns the top k. Internal failures collapse to an empty list; callers
// show their own "no jobs found" copy.
func (s *RetrievalService) Query(text string, k int) []vectorstore.ScoredResult {
	s.ensureInitialized()
	ranked, err := s.cosine.Rank(s.store.Entries(), text)
	if err != nil {
		log.Printf("retrieval: query failed: %v", err)
		return nil
	}
	return vectorstore.TopK(ranked, k)
}

// Recommend ranks the stored jobs against resume text with keyword overlap
// and returns the top k. Internal failures fall back to the deterministic
// provider instead of an empty list.
func (s *RetrievalService) Recommend(resumeText string, k int) []vectorstore.ScoredResult {
	s.ensureInitialized()
	ranked, err := s.keywords.Rank(s.store.Entries(), resumeText)
	if err != nil {
		log.Printf("retrieval: recommend failed: %v", err)
		return s.fallback(k)
	}
	return vectorstore.TopK(ranked, k)
}

// Clear empties the store and resets the initialized flag, forcing a corpus
// reload on the next operation.
func (s *RetrievalService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
	s.initialized = false
}

// StoreLen reports how many entries the store currently holds.
func (s *RetrievalService) StoreLen() int {
	return s.store.Len()
}
