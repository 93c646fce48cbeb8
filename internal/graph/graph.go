package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/hurou927/spam-graph/internal/vocab"
)

// ErrInvalidThreshold is returned for a threshold outside [0, 1].
var ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")

// Adjacency maps a user to its neighbors. Edges are stored in both
// directions and every node is a key, including isolated ones.
type Adjacency map[string][]string

// Graph is an undirected similarity graph over users.
type Graph struct {
	// Users holds the nodes in build order.
	Users []string

	// Adjacency maps user -> neighbors
	Adjacency Adjacency

	// Threshold is the minimum similarity of an edge (inclusive).
	Threshold float64

	// Edges is the number of undirected edges.
	Edges int
}

// Build links every pair of users whose vocabulary similarity is at least
// threshold. Repeated users are collapsed to their first occurrence.
// Every user must be present in v.
func Build(users []string, v vocab.Vocabulary, threshold float64) (*Graph, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	// Resolve every vocabulary once; pairs below work on indexes only.
	nodes := make([]string, 0, len(users))
	sets := make([]vocab.WordSet, 0, len(users))
	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if seen[u] {
			continue
		}
		words, ok := v[u]
		if !ok {
			return nil, fmt.Errorf("building graph: %w: %q", ErrNotFound, u)
		}
		seen[u] = true
		nodes = append(nodes, u)
		sets = append(sets, words)
	}

	neighbors := make([][]int, len(nodes))
	edges := 0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if Jaccard(sets[i], sets[j]) >= threshold {
				neighbors[i] = append(neighbors[i], j)
				neighbors[j] = append(neighbors[j], i)
				edges++
			}
		}
	}

	adj := make(Adjacency, len(nodes))
	for i, name := range nodes {
		list := make([]string, len(neighbors[i]))
		for k, j := range neighbors[i] {
			list[k] = nodes[j]
		}
		adj[name] = list
	}

	return &Graph{
		Users:     nodes,
		Adjacency: adj,
		Threshold: threshold,
		Edges:     edges,
	}, nil
}

// EdgeCount returns the number of undirected edges in adj.
func (adj Adjacency) EdgeCount() int {
	total := 0
	for _, n := range adj {
		total += len(n)
	}
	return total / 2
}

// Degree returns the number of neighbors of user.
func (adj Adjacency) Degree(user string) int {
	return len(adj[user])
}
