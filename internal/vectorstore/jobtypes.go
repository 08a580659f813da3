package vectorstore

import "strings"

// jobTypeVocabulary is the fixed set of job types recognized in free text.
var jobTypeVocabulary = []string{
	"frontend", "backend", "fullstack", "mobile", "web", "cloud", "devops",
	"data", "machine learning", "ui", "ux", "security", "qa", "test",
}

// ExtractJobTypes returns the vocabulary entries appearing as substrings of
// the text, in vocabulary order.
func ExtractJobTypes(text string) []string {
	lower := strings.ToLower(text)
	var types []string
	for _, t := range jobTypeVocabulary {
		if strings.Contains(lower, t) {
			types = append(types, t)
		}
	}
	return types
}

const boostResultCap = 5

// BoostByJobType re-ranks an already scored list around the requested job
// types. Results whose title contains a requested type form the exact-match
// tier: with three or more of those, only the top five of that tier are
// returned. Otherwise exact matches are followed by results whose description
// mentions a requested type, capped at five. With no requested types the list
// passes through unchanged.
func BoostByJobType(results []ScoredResult, types []string) []ScoredResult {
	if len(types) == 0 {
		return results
	}

	inExact := make([]bool, len(results))
	var exact []ScoredResult
	for i, r := range results {
		title := strings.ToLower(r.Job.Title)
		for _, t := range types {
			if strings.Contains(title, t) {
				inExact[i] = true
				exact = append(exact, r)
				break
			}
		}
	}
	if len(exact) >= 3 {
		return TopK(exact, boostResultCap)
	}

	combined := exact
	for i, r := range results {
		if inExact[i] {
			continue
		}
		desc := strings.ToLower(r.Job.Description)
		for _, t := range types {
			if strings.Contains(desc, t) {
				combined = append(combined, r)
				break
			}
		}
	}
	return TopK(combined, boostResultCap)
}
