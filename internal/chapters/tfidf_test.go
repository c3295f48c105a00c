package chapters

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stopwords",
			input: "Machine Learning is great",
			want:  []string{"machine", "learning", "great"},
		},
		{
			name:  "splits on punctuation",
			input: "state-of-the-art",
			want:  []string{"state", "art"},
		},
		{
			name:  "drops single characters",
			input: "a b cd",
			want:  []string{"cd"},
		},
		{
			name:  "keeps digits",
			input: "python3 has 42 answers",
			want:  []string{"python3", "42", "answers"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only stopwords",
			input: "the and of",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTerms(t *testing.T) {
	got := terms("machine learning models")
	want := []string{
		"machine", "learning", "models",
		"machine learning", "learning models",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("terms() = %v, want %v", got, want)
	}
}

func TestConsecutiveSimilaritiesIdenticalTexts(t *testing.T) {
	sims, err := consecutiveSimilarities([]string{
		"machine learning models",
		"machine learning models",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sims) != 1 {
		t.Fatalf("expected 1 similarity, got %d", len(sims))
	}
	if math.Abs(sims[0]-1.0) > 1e-9 {
		t.Errorf("similarity of identical texts = %v, want 1.0", sims[0])
	}
}

func TestConsecutiveSimilaritiesDisjointTexts(t *testing.T) {
	sims, err := consecutiveSimilarities([]string{
		"machine learning models",
		"cooking pasta sauce",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sims[0] != 0 {
		t.Errorf("similarity of disjoint texts = %v, want 0", sims[0])
	}
}

func TestConsecutiveSimilaritiesPartialOverlap(t *testing.T) {
	sims, err := consecutiveSimilarities([]string{
		"machine learning models today",
		"machine learning cooking today",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sims[0] <= 0 || sims[0] >= 1 {
		t.Errorf("similarity of overlapping texts = %v, want within (0, 1)",
			sims[0])
	}
}

func TestConsecutiveSimilaritiesEmptyVocabulary(t *testing.T) {
	_, err := consecutiveSimilarities([]string{"a b", "c d"})
	if err == nil {
		t.Error("expected error for empty vocabulary")
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{
			name:   "quartile interpolates",
			values: []float64{1, 2, 3, 4},
			p:      25,
			want:   1.75,
		},
		{
			name:   "median of even count",
			values: []float64{1, 2, 3, 4},
			p:      50,
			want:   2.5,
		},
		{
			name:   "single value",
			values: []float64{5},
			p:      25,
			want:   5,
		},
		{
			name:   "zeroth percentile is minimum",
			values: []float64{3, 1, 2},
			p:      0,
			want:   1,
		},
		{
			name:   "hundredth percentile is maximum",
			values: []float64{3, 1, 2},
			p:      100,
			want:   3,
		},
		{
			name:   "empty input",
			values: nil,
			p:      25,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(tt.values, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("percentile(%v, %v) = %v, want %v",
					tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0,
		},
		{
			name: "zero vector",
			a:    []float64{0, 0},
			b:    []float64{1, 1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
