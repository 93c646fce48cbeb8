package graph

import (
	"errors"
	"fmt"

	"github.com/hurou927/spam-graph/internal/vocab"
)

// ErrNotFound is returned when a user is missing from a vocabulary.
var ErrNotFound = errors.New("user not found in vocabulary")

// Similarity returns the Jaccard index of the vocabularies of users a and b.
func Similarity(a, b string, v vocab.Vocabulary) (float64, error) {
	wordsA, ok := v[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, a)
	}
	wordsB, ok := v[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, b)
	}
	return Jaccard(wordsA, wordsB), nil
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets score 0.
func Jaccard(a, b vocab.WordSet) float64 {
	union := a.Union(b).Cardinality()
	if union == 0 {
		return 0
	}
	return float64(a.Intersect(b).Cardinality()) / float64(union)
}
