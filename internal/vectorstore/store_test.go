package vectorstore

import (
	"strings"
	"testing"

	"github.com/careerbloom/backend/internal/model"
)

func newTestStore(t *testing.T, jobs ...model.Job) *Store {
	t.Helper()
	s := NewStore(NewEmbedder(64))
	if err := s.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if len(jobs) > 0 {
		if err := s.Add(jobs); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	return s
}

func TestInitIdempotent(t *testing.T) {
	s := newTestStore(t, model.Job{ID: "1", Title: "Frontend Developer"})
	if err := s.Init(); err != nil {
		t.Fatalf("second Init error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("second Init dropped entries: len = %d", s.Len())
	}
}

func TestAddComputesSearchTextWithDefaults(t *testing.T) {
	s := newTestStore(t, model.Job{Title: "Backend Engineer"})
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Job.ID == "" {
		t.Fatalf("expected generated id for job without one")
	}
	if !strings.Contains(e.SearchText, "Salary: Not specified") {
		t.Fatalf("missing salary default in search text:\n%s", e.SearchText)
	}
	if !strings.Contains(e.SearchText, "Posted Date: Not specified") {
		t.Fatalf("missing posted-date default in search text:\n%s", e.SearchText)
	}
	if len(e.Embedding) != 64 {
		t.Fatalf("embedding dimension = %d, want 64", len(e.Embedding))
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := newTestStore(t, model.Job{ID: "a"}, model.Job{ID: "b"})
	if err := s.Add([]model.Job{{ID: "c"}}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	var ids []string
	for _, e := range s.Entries() {
		ids = append(ids, e.Job.ID)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Fatalf("order = %v, want [a b c]", ids)
	}
}

func TestDuplicateIngestIsAdditive(t *testing.T) {
	job := model.Job{ID: "dup", Title: "DevOps Engineer"}
	s := newTestStore(t, job)
	if err := s.Add([]model.Job{job}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2 (no de-duplication)", s.Len())
	}
}

func TestClearEmptiesStore(t *testing.T) {
	s := newTestStore(t, model.Job{ID: "1"})
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("len after Clear = %d, want 0", s.Len())
	}
	// clearing an empty store must not panic
	s.Clear()
}

func TestEntriesReturnsSnapshot(t *testing.T) {
	s := newTestStore(t, model.Job{ID: "1", Title: "QA Engineer"})
	snap := s.Entries()
	snap[0].Job.Title = "mutated"
	if s.Entries()[0].Job.Title != "QA Engineer" {
		t.Fatalf("snapshot mutation leaked into store")
	}
}
