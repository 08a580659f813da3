package vectorstore

import (
	"fmt"
	"sync"

	"github.com/careerbloom/backend/internal/model"
)

// Entry is a stored job together with the search text and embedding computed
// at ingestion time. The search text is never mutated independently of the
// job it was derived from.
type Entry struct {
	Job        model.Job
	SearchText string
	Embedding  []float64
}

// Store is an in-memory job collection searched by brute-force scan. Entries
// are kept in insertion order; that order is the tie-break key during
// ranking. Memory grows with ingestion, there is no eviction.
type Store struct {
	mu          sync.RWMutex
	embedder    *Embedder
	entries     []Entry
	initialized bool
}

func NewStore(embedder *Embedder) *Store {
	if embedder == nil {
		embedder = NewEmbedder(DefaultDimensions)
	}
	return &Store{embedder: embedder}
}

func (s *Store) Embedder() *Embedder {
	return s.embedder
}

// Init prepares an empty collection. Calling it again is a no-op.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	s.entries = nil
	s.initialized = true
	return nil
}

// Add appends jobs to the collection, computing each one's search text and
// embedding. Jobs without an id get one assigned. There is no de-duplication:
// ingesting the same job twice stores it twice.
func (s *Store) Add(jobs []model.Job) error {
	entries := make([]Entry, 0, len(jobs))
	for _, job := range jobs {
		job.EnsureID()
		text := job.SearchText()
		vec, err := s.embedder.Embed(text)
		if err != nil {
			return fmt.Errorf("embed job %s: %w", job.ID, err)
		}
		entries = append(entries, Entry{Job: job, SearchText: text, Embedding: vec})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

// Clear drops every stored entry. Clearing an empty store is fine.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Entries returns a snapshot of the collection in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
