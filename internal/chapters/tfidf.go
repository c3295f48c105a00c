package chapters

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// vocabulary cap, terms beyond this are dropped by corpus frequency
const maxFeatures = 1000

var stopwords = func() map[string]struct{} {
	words := strings.Fields(`a about above after again against all also am an and
		any are as at be because been before being below between both but by can
		could did do does doing down during each few for from further had has have
		having he her here hers herself him himself his how i if in into is it its
		itself just me more most my myself no nor not now of off on once only or
		other our ours ourselves out over own same she should so some such than
		that the their theirs them themselves then there these they this those
		through to too under until up very was we were what when where which while
		who whom why will with would you your yours yourself yourselves`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// tokenize lowercases and splits on non alphanumeric runes, dropping
// single character tokens and stopwords
func tokenize(text string) []string {
	var tokens []string
	var current []rune

	flush := func() {
		if len(current) >= 2 {
			token := string(current)
			if _, stop := stopwords[token]; !stop {
				tokens = append(tokens, token)
			}
		}
		current = current[:0]
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// terms returns the unigrams and bigrams of a text. Bigrams are built
// after stopword removal, so they can join words that were not
// adjacent in the original.
func terms(text string) []string {
	tokens := tokenize(text)
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// consecutiveSimilarities vectorizes the texts with TF-IDF weighting
// (smoothed IDF, L2 normalized rows) and returns the cosine
// similarity of each text to its successor.
func consecutiveSimilarities(texts []string) ([]float64, error) {
	docs := make([][]string, len(texts))
	counts := make(map[string]int)
	df := make(map[string]int)

	for i, text := range texts {
		docs[i] = terms(text)
		seen := make(map[string]struct{})
		for _, term := range docs[i] {
			counts[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("empty vocabulary, nothing to vectorize")
	}

	vocabulary := buildVocabulary(counts)

	n := float64(len(texts))
	idf := make([]float64, len(vocabulary))
	for term, j := range vocabulary {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(texts))
	for i, doc := range docs {
		vec := make([]float64, len(idf))
		for _, term := range doc {
			if j, ok := vocabulary[term]; ok {
				vec[j] += idf[j]
			}
		}
		normalize(vec)
		vectors[i] = vec
	}

	sims := make([]float64, len(texts)-1)
	for i := 0; i+1 < len(vectors); i++ {
		sims[i] = cosine(vectors[i], vectors[i+1])
	}

	return sims, nil
}

// keeps the top maxFeatures terms by corpus frequency, ties broken
// alphabetically for a stable vocabulary
func buildVocabulary(counts map[string]int) map[string]int {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocabulary := make(map[string]int, len(terms))
	for j, term := range terms {
		vocabulary[term] = j
	}
	return vocabulary
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// cosine similarity; zero vectors compare as 0
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// percentile computes the pth percentile with linear interpolation
// between closest ranks
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
