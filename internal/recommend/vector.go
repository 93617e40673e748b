// internal/recommend/vector.go
// Content-based scoring: TF-IDF vectors over a tiny corpus built from
// the user profile and the candidate texts, ranked by cosine
// similarity against the profile vector.

package recommend

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

var (
	errNoCandidates = errors.New("no candidates to vectorize")
	errEmptyProfile = errors.New("user profile produced no terms")
	errEmptyVocab   = errors.New("corpus produced an empty vocabulary")
)

type vectorScorer struct{}

func NewVectorScorer() Scorer {
	return vectorScorer{}
}

func (vectorScorer) Score(candidates []catalog.Event, sig signals) ([]ScoredCandidate, error) {
	if len(candidates) == 0 {
		return nil, errNoCandidates
	}

	profileTokens := tokenize(profileDocument(sig))
	if len(profileTokens) == 0 {
		return nil, errEmptyProfile
	}

	docs := make([][]string, 0, len(candidates)+1)
	docs = append(docs, profileTokens)
	for _, e := range candidates {
		docs = append(docs, tokenize(candidateDocument(e)))
	}

	vectors, err := tfidfVectors(docs)
	if err != nil {
		return nil, err
	}

	profileVec := vectors[0]
	scored := make([]ScoredCandidate, 0, len(candidates))
	for i, e := range candidates {
		sim := cosineSimilarity(profileVec, vectors[i+1])
		scored = append(scored, ScoredCandidate{Event: e, Score: sim * 100})
	}

	sortByScore(scored)
	return scored, nil
}

// profileDocument concatenates the user's stated interests (repeated
// to outweigh implicit signal) with the categories and venues of
// previously liked events.
func profileDocument(sig signals) string {
	var b strings.Builder
	interests := strings.Join(sig.Interests, " ")
	for i := 0; i < 3; i++ {
		b.WriteString(interests)
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(sig.LikedCategories, " "))
	b.WriteByte(' ')
	b.WriteString(strings.Join(sig.LikedVenues, " "))
	return b.String()
}

func candidateDocument(e catalog.Event) string {
	return e.Name + " " + e.Category.Name + " " + e.Venue.Name
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// tfidfVectors builds one sparse term-weight vector per document.
// Weights are term frequency times smoothed inverse document
// frequency: idf = ln((1+N)/(1+df)) + 1.
func tfidfVectors(docs [][]string) ([]map[string]float64, error) {
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	if len(docFreq) == 0 {
		return nil, errEmptyVocab
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	vectors := make([]map[string]float64, len(docs))
	for i, doc := range docs {
		vec := make(map[string]float64)
		for _, term := range doc {
			vec[term] += idf[term]
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
