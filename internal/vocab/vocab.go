package vocab

import (
	"sort"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hurou927/spam-graph/internal/table"
)

// WordSet is a set of normalized words.
type WordSet = mapset.Set[string]

// NewWordSet returns a WordSet holding words. It is not safe for
// concurrent writes.
func NewWordSet(words ...string) WordSet {
	return mapset.NewThreadUnsafeSet(words...)
}

// Sorted returns the words of s in lexical order.
func Sorted(s WordSet) []string {
	words := s.ToSlice()
	sort.Strings(words)
	return words
}

// Vocabulary maps a user identity to the words they used.
type Vocabulary map[string]WordSet

// Extract collects every distinct user of t, in first-seen order, and the
// union of the normalized words of all their comments.
func Extract(t *table.Table) ([]string, Vocabulary, error) {
	lower := cases.Lower(language.Und)
	var users []string
	v := make(Vocabulary)

	for i := 0; i < t.Len(); i++ {
		user, err := t.TextAt(i, table.ColUser)
		if err != nil {
			return nil, nil, err
		}
		content, err := t.TextAt(i, table.ColContent)
		if err != nil {
			return nil, nil, err
		}

		words, ok := v[user]
		if !ok {
			words = NewWordSet()
			v[user] = words
			users = append(users, user)
		}
		for _, token := range strings.Split(content, " ") {
			if w := normalize(lower, token); w != "" {
				words.Add(w)
			}
		}
	}

	return users, v, nil
}

// Normalize strips every rune that is not alphabetic or numeric from token
// and lowercases the rest. Combining vowel signs count as alphabetic. It returns "" when nothing is left.
func Normalize(token string) string {
	return normalize(cases.Lower(language.Und), token)
}

func normalize(lower cases.Caser, token string) string {
	if token == "" {
		return ""
	}
	kept := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r) {
			return r
		}
		return -1
	}, token)
	if kept == "" {
		return ""
	}
	return lower.String(kept)
}
