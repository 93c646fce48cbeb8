package spam

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/hurou927/spam-graph/internal/graph"
	"github.com/hurou927/spam-graph/internal/table"
	"github.com/hurou927/spam-graph/internal/vocab"
)

// FindSpam returns the users with at least one comment labeled spam, in the
// order they first appear in t. Users outside universe are ignored; a nil
// universe does not restrict the result.
func FindSpam(t *table.Table, universe []string) (int, []string, error) {
	var allowed map[string]bool
	if universe != nil {
		allowed = make(map[string]bool, len(universe))
		for _, u := range universe {
			allowed[u] = true
		}
	}

	seen := make(map[string]bool)
	var spammers []string
	for i := 0; i < t.Len(); i++ {
		isSpam, err := t.FlagAt(i, table.ColLabel)
		if err != nil {
			return 0, nil, err
		}
		user, err := t.TextAt(i, table.ColUser)
		if err != nil {
			return 0, nil, err
		}
		if !isSpam || seen[user] {
			continue
		}
		if allowed != nil && !allowed[user] {
			continue
		}
		seen[user] = true
		spammers = append(spammers, user)
	}

	return len(spammers), spammers, nil
}

// CountSpamComments returns the number of rows labeled spam.
func CountSpamComments(t *table.Table) (int, error) {
	count := 0
	for i := 0; i < t.Len(); i++ {
		isSpam, err := t.FlagAt(i, table.ColLabel)
		if err != nil {
			return 0, err
		}
		if isSpam {
			count++
		}
	}
	return count, nil
}

// BestSpammers returns every node of adj whose degree is the maximum.
// An empty adjacency yields an empty set.
func BestSpammers(adj graph.Adjacency) mapset.Set[string] {
	best := mapset.NewThreadUnsafeSet[string]()
	maxDegree := -1
	for user, neighbors := range adj {
		switch d := len(neighbors); {
		case d > maxDegree:
			best.Clear()
			maxDegree = d
			best.Add(user)
		case d == maxDegree:
			best.Add(user)
		}
	}
	return best
}

// Words returns the union of the vocabularies of users. Users missing from
// v contribute nothing.
func Words(users mapset.Set[string], v vocab.Vocabulary) vocab.WordSet {
	out := vocab.NewWordSet()
	for _, u := range users.ToSlice() {
		if words, ok := v[u]; ok {
			out = out.Union(words)
		}
	}
	return out
}
