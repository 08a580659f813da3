package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/careerbloom/backend/internal/model"
	"github.com/careerbloom/backend/internal/vectorstore"
)

type failingStrategy struct{}

func (failingStrategy) Name() string { return "failing" }

func (failingStrategy) Rank([]vectorstore.Entry, string) ([]vectorstore.ScoredResult, error) {
	return nil, errors.New("strategy blew up")
}

func countingLoader(jobs []model.Job, err error) (CorpusLoader, *int) {
	calls := 0
	return func() ([]model.Job, error) {
		calls++
		return jobs, err
	}, &calls
}

func newTestService(t *testing.T, loader CorpusLoader) *RetrievalService {
	t.Helper()
	s := NewRetrievalService(vectorstore.NewStore(vectorstore.NewEmbedder(64)), loader, nil)
	s.batchPause = 0
	return s
}

func TestInitializeIdempotent(t *testing.T) {
	loader, calls := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)

	for i := 0; i < 3; i++ {
		if err := s.Initialize(false); err != nil {
			t.Fatalf("Initialize: %v", err)
		}
	}
	if *calls != 1 {
		t.Fatalf("loader called %d times, want 1", *calls)
	}
	if s.StoreLen() != len(MockJobs()) {
		t.Fatalf("store len = %d, want %d", s.StoreLen(), len(MockJobs()))
	}
}

func TestInitializeLoaderFailureSwallowed(t *testing.T) {
	loader, _ := countingLoader(nil, errors.New("db down"))
	s := newTestService(t, loader)

	if err := s.Initialize(false); err != nil {
		t.Fatalf("Initialize must swallow loader errors, got %v", err)
	}
	if s.StoreLen() != 0 {
		t.Fatalf("store len = %d, want 0", s.StoreLen())
	}
	// service is usable after a failed load
	if res := s.Query("anything", 3); res != nil && len(res) != 0 {
		t.Fatalf("query on empty store = %v, want empty", res)
	}
}

func TestInitializeSkipExternalLoad(t *testing.T) {
	loader, calls := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)

	if err := s.Initialize(true); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if *calls != 0 {
		t.Fatalf("loader called %d times, want 0 when skipping external load", *calls)
	}
}

func TestClearResetsInitialization(t *testing.T) {
	loader, calls := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)

	s.Query("devops", 2)
	s.Clear()
	if s.StoreLen() != 0 {
		t.Fatalf("store not empty after Clear")
	}
	s.Query("devops", 2)
	if *calls != 2 {
		t.Fatalf("loader called %d times, want 2 (reload after Clear)", *calls)
	}
}

func TestIngestBatches(t *testing.T) {
	s := newTestService(t, nil)

	jobs := make([]model.Job, 25)
	for i := range jobs {
		jobs[i] = model.Job{ID: fmt.Sprintf("job-%d", i), Title: "Engineer"}
	}
	if err := s.Ingest(context.Background(), jobs); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if s.StoreLen() != 25 {
		t.Fatalf("store len = %d, want 25", s.StoreLen())
	}
}

func TestIngestCancelled(t *testing.T) {
	s := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []model.Job{{ID: "1"}, {ID: "2"}}
	if err := s.Ingest(ctx, jobs); !errors.Is(err, context.Canceled) {
		t.Fatalf("Ingest err = %v, want context.Canceled", err)
	}
	if s.StoreLen() != 0 {
		t.Fatalf("store len = %d, want 0 after pre-cancelled ingest", s.StoreLen())
	}
}

func TestQueryErrorReturnsEmpty(t *testing.T) {
	loader, _ := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)
	s.cosine = failingStrategy{}

	if res := s.Query("frontend", 3); len(res) != 0 {
		t.Fatalf("query on failing strategy = %d results, want 0", len(res))
	}
}

func TestQueryEmptyTextRanksStore(t *testing.T) {
	loader, _ := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)

	res := s.Query("", 5)
	if len(res) != 5 {
		t.Fatalf("len = %d, want 5 ranked results for an empty query", len(res))
	}
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Fatalf("results not sorted at %d: %v > %v", i, res[i].Score, res[i-1].Score)
		}
	}
}

func TestRecommendErrorFallsBack(t *testing.T) {
	loader, _ := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)
	s.keywords = failingStrategy{}

	res := s.Recommend("react javascript", 3)
	if len(res) != 3 {
		t.Fatalf("fallback len = %d, want 3", len(res))
	}
	want := MockRecommendations(3)
	for i := range res {
		if res[i].Job.ID != want[i].Job.ID || res[i].Score != want[i].Score {
			t.Fatalf("fallback result %d = %+v, want %+v", i, res[i], want[i])
		}
	}
}

func TestRecommendRanksLoadedCorpus(t *testing.T) {
	loader, _ := countingLoader(MockJobs(), nil)
	s := newTestService(t, loader)

	res := s.Recommend("I build frontends with HTML, CSS, React and Redux", 2)
	if len(res) != 2 {
		t.Fatalf("len = %d, want 2", len(res))
	}
	if res[0].Job.ID != "mock-job-2" {
		t.Fatalf("top recommendation = %s, want mock-job-2 (frontend)", res[0].Job.ID)
	}
}

func TestMockRecommendationsDeterministic(t *testing.T) {
	a := MockRecommendations(5)
	b := MockRecommendations(5)
	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("lens = %d, %d, want 5", len(a), len(b))
	}
	for i := range a {
		if a[i].Job.ID != b[i].Job.ID || a[i].Score != b[i].Score {
			t.Fatalf("fallback not deterministic at %d", i)
		}
		if i > 0 && a[i].Score >= a[i-1].Score {
			t.Fatalf("fallback scores not strictly descending at %d", i)
		}
	}
	if got := MockRecommendations(10); len(got) != 5 {
		t.Fatalf("limit above corpus size: len = %d, want 5", len(got))
	}
	if got := MockRecommendations(-1); len(got) != 0 {
		t.Fatalf("negative limit: len = %d, want 0", len(got))
	}
}
