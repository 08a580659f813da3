package vectorstore

import (
	"math"
	"reflect"
	"testing"
)

func TestEmbedDeterministic(t *testing.T) {
	e := NewEmbedder(DefaultDimensions)
	a, err := e.Embed("Senior Go Engineer in Berlin")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	b, err := e.Embed("Senior Go Engineer in Berlin")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected bit-identical vectors for identical input")
	}
}

func TestEmbedNormalizationEquivalence(t *testing.T) {
	e := NewEmbedder(64)
	a, err := e.Embed("  Hello   World ")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	b, err := e.Embed("hello world")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected equal vectors for inputs equal after normalization")
	}
}

func TestEmbedDistinctInputsDiffer(t *testing.T) {
	e := NewEmbedder(64)
	a, _ := e.Embed("frontend developer")
	b, _ := e.Embed("backend developer")
	if reflect.DeepEqual(a, b) {
		t.Fatalf("expected different vectors for different inputs")
	}
}

func TestEmbedUnitLength(t *testing.T) {
	e := NewEmbedder(DefaultDimensions)
	for _, text := range []string{"", "react", "a much longer job description with many words"} {
		vec, err := e.Embed(text)
		if err != nil {
			t.Fatalf("Embed(%q) error: %v", text, err)
		}
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		if math.Abs(math.Sqrt(sum)-1) > 1e-9 {
			t.Fatalf("Embed(%q): norm = %v, want 1", text, math.Sqrt(sum))
		}
	}
}

func TestEmbedDimensions(t *testing.T) {
	if got := len(mustEmbed(t, NewEmbedder(32), "x")); got != 32 {
		t.Fatalf("dimension = %d, want 32", got)
	}
	if got := len(mustEmbed(t, NewEmbedder(0), "x")); got != DefaultDimensions {
		t.Fatalf("dimension = %d, want default %d", got, DefaultDimensions)
	}
}

func mustEmbed(t *testing.T, e *Embedder, text string) []float64 {
	t.Helper()
	vec, err := e.Embed(text)
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	return vec
}
