package vectorstore

import (
	"testing"

	"github.com/careerbloom/backend/internal/model"
)

func rankCosine(t *testing.T, s *Store, query string) []ScoredResult {
	t.Helper()
	res, err := NewCosineStrategy(s.Embedder()).Rank(s.Entries(), query)
	if err != nil {
		t.Fatalf("cosine Rank error: %v", err)
	}
	return res
}

func rankKeywords(t *testing.T, s *Store, query string) []ScoredResult {
	t.Helper()
	res, err := KeywordStrategy{}.Rank(s.Entries(), query)
	if err != nil {
		t.Fatalf("keyword Rank error: %v", err)
	}
	return res
}

func assertSortedDesc(t *testing.T, res []ScoredResult) {
	t.Helper()
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Fatalf("results not sorted at %d: %v > %v", i, res[i].Score, res[i-1].Score)
		}
	}
}

func TestCosineBoundsAndOrdering(t *testing.T) {
	s := newTestStore(t,
		model.Job{ID: "1", Title: "Frontend Developer", Skills: []string{"React"}},
		model.Job{ID: "2", Title: "Backend Engineer", Skills: []string{"Java"}},
		model.Job{ID: "3", Title: "Data Scientist", Skills: []string{"Python"}},
	)
	res := rankCosine(t, s, "react frontend position")
	if len(res) != 3 {
		t.Fatalf("len = %d, want 3", len(res))
	}
	for _, r := range res {
		if r.Score < -1-1e-9 || r.Score > 1+1e-9 {
			t.Fatalf("cosine score out of [-1,1]: %v", r.Score)
		}
		if r.MatchPercentage < 0 || r.MatchPercentage > 100 {
			t.Fatalf("match percentage out of [0,100]: %d", r.MatchPercentage)
		}
	}
	assertSortedDesc(t, res)
}

func TestCosineIdenticalTextRanksFirst(t *testing.T) {
	target := model.Job{ID: "t", Title: "Cloud Architect", Company: "Acme"}
	s := newTestStore(t,
		model.Job{ID: "x", Title: "UX Designer"},
		target,
		model.Job{ID: "y", Title: "Security Analyst"},
	)
	res := rankCosine(t, s, target.SearchText())
	if res[0].Job.ID != "t" {
		t.Fatalf("top result = %s, want t", res[0].Job.ID)
	}
	if res[0].Score < 1-1e-9 {
		t.Fatalf("self-similarity = %v, want ~1", res[0].Score)
	}
}

func TestCosineTieBreakByInsertionOrder(t *testing.T) {
	// identical text in both jobs gives identical embeddings and scores
	s := newTestStore(t,
		model.Job{ID: "first", Title: "Web Developer"},
		model.Job{ID: "second", Title: "Web Developer"},
	)
	res := rankCosine(t, s, "web developer")
	if res[0].Job.ID != "first" || res[1].Job.ID != "second" {
		t.Fatalf("tie not broken by insertion order: %s, %s", res[0].Job.ID, res[1].Job.ID)
	}
}

func TestCosineEmptyQueryRanksAll(t *testing.T) {
	// the empty string still embeds to a valid unit vector, so an empty
	// query ranks the whole store instead of erroring
	s := newTestStore(t,
		model.Job{ID: "1", Title: "Frontend Developer"},
		model.Job{ID: "2", Title: "Backend Engineer"},
		model.Job{ID: "3", Title: "Data Scientist"},
	)
	res := rankCosine(t, s, "")
	if len(res) != 3 {
		t.Fatalf("len = %d, want 3", len(res))
	}
	assertSortedDesc(t, res)
	for _, r := range res {
		if r.Score < -1-1e-9 || r.Score > 1+1e-9 {
			t.Fatalf("cosine score out of [-1,1]: %v", r.Score)
		}
	}
}

func TestKeywordBoundsAndSelfMatch(t *testing.T) {
	job := model.Job{ID: "1", Title: "Mobile Developer", Skills: []string{"Kotlin", "Swift"}}
	s := newTestStore(t, job)
	res := rankKeywords(t, s, job.SearchText())
	if res[0].Score != 1 {
		t.Fatalf("self-match score = %v, want 1", res[0].Score)
	}
	if res[0].MatchPercentage != 100 {
		t.Fatalf("self-match percentage = %d, want 100", res[0].MatchPercentage)
	}
}

func TestKeywordEmptyQueryScoresZero(t *testing.T) {
	s := newTestStore(t, model.Job{ID: "1", Title: "QA Engineer"})
	res := rankKeywords(t, s, "")
	if res[0].Score != 0 {
		t.Fatalf("empty-query score = %v, want 0", res[0].Score)
	}
}

func TestKeywordRecommendationScenario(t *testing.T) {
	s := newTestStore(t,
		model.Job{ID: "fe", Title: "Frontend Developer", Skills: []string{"React"},
			Description: "Build interfaces with React and JavaScript"},
		model.Job{ID: "be", Title: "Backend Engineer", Skills: []string{"Java"},
			Description: "Build services with Java and Spring"},
	)
	res := rankKeywords(t, s, "I know React and JavaScript")
	if res[0].Job.ID != "fe" {
		t.Fatalf("top result = %s, want fe", res[0].Job.ID)
	}
	if res[0].Score <= 0 {
		t.Fatalf("frontend score = %v, want > 0", res[0].Score)
	}
	if res[1].Score >= res[0].Score {
		t.Fatalf("backend score %v not below frontend score %v", res[1].Score, res[0].Score)
	}
}

func TestTopK(t *testing.T) {
	s := newTestStore(t,
		model.Job{ID: "1"}, model.Job{ID: "2"}, model.Job{ID: "3"},
	)
	res := rankKeywords(t, s, "anything")
	if got := TopK(res, 0); len(got) != 0 {
		t.Fatalf("TopK(0) len = %d, want 0", len(got))
	}
	if got := TopK(res, -1); len(got) != 0 {
		t.Fatalf("TopK(-1) len = %d, want 0", len(got))
	}
	if got := TopK(res, 10); len(got) != 3 {
		t.Fatalf("TopK(10) len = %d, want 3", len(got))
	}
	two := TopK(res, 2)
	if len(two) != 2 || two[0].Job.ID != res[0].Job.ID || two[1].Job.ID != res[1].Job.ID {
		t.Fatalf("TopK(2) reordered results")
	}
}

func TestExtractJobTypes(t *testing.T) {
	got := ExtractJobTypes("Looking for a Frontend or DevOps role, ideally remote")
	want := []string{"frontend", "devops"}
	if len(got) != len(want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("types = %v, want %v", got, want)
		}
	}
	if ExtractJobTypes("no roles mentioned here") != nil {
		t.Fatalf("expected nil for text without job types")
	}
}

func TestBoostExactTitlePartition(t *testing.T) {
	s := newTestStore(t,
		model.Job{ID: "f1", Title: "Frontend Developer", Description: "React work"},
		model.Job{ID: "b1", Title: "Backend Engineer", Description: "Java services"},
		model.Job{ID: "f2", Title: "Senior Frontend Engineer", Description: "Vue work"},
		model.Job{ID: "b2", Title: "Platform Engineer", Description: "Go services"},
		model.Job{ID: "f3", Title: "Frontend Lead", Description: "Angular work"},
	)
	ranked := rankKeywords(t, s, "frontend react vue angular")
	boosted := BoostByJobType(ranked, []string{"frontend"})
	if len(boosted) != 3 {
		t.Fatalf("len = %d, want exactly the 3 title matches", len(boosted))
	}
	for _, r := range boosted {
		if r.Job.ID == "b1" || r.Job.ID == "b2" {
			t.Fatalf("non-frontend job %s leaked into boosted results", r.Job.ID)
		}
	}
	assertSortedDesc(t, boosted)
}

func TestBoostFallsBackToDescriptionMatches(t *testing.T) {
	s := newTestStore(t,
		model.Job{ID: "t1", Title: "Cloud Engineer", Description: "Kubernetes"},
		model.Job{ID: "d1", Title: "Software Engineer", Description: "cloud infrastructure"},
		model.Job{ID: "n1", Title: "Accountant", Description: "bookkeeping"},
	)
	ranked := rankKeywords(t, s, "cloud kubernetes infrastructure")
	boosted := BoostByJobType(ranked, []string{"cloud"})
	if len(boosted) != 2 {
		t.Fatalf("len = %d, want 2 (one title match, one description match)", len(boosted))
	}
	if boosted[0].Job.ID != "t1" {
		t.Fatalf("title match must come first, got %s", boosted[0].Job.ID)
	}
	if boosted[1].Job.ID != "d1" {
		t.Fatalf("description match expected second, got %s", boosted[1].Job.ID)
	}
}

func TestBoostWithoutTypesPassesThrough(t *testing.T) {
	s := newTestStore(t, model.Job{ID: "1"}, model.Job{ID: "2"})
	ranked := rankKeywords(t, s, "anything")
	if got := BoostByJobType(ranked, nil); len(got) != 2 {
		t.Fatalf("pass-through len = %d, want 2", len(got))
	}
}
