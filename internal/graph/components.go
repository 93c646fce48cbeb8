package graph

import "sort"

// Component represents a connected component of users.
type Component struct {
	Users []string
}

// CountComponents returns the number of connected components of adj.
func CountComponents(adj Adjacency) int {
	visited := make(map[string]bool, len(adj))
	count := 0

	for name := range adj {
		if visited[name] {
			continue
		}
		count++
		bfs(adj, name, visited)
	}

	return count
}

// FindComponents detects connected components using BFS. Users inside a
// component are sorted, and components are ordered by their first user.
func FindComponents(adj Adjacency) []Component {
	visited := make(map[string]bool, len(adj))
	var components []Component

	for name := range adj {
		if visited[name] {
			continue
		}
		comp := bfs(adj, name, visited)
		sort.Strings(comp)
		components = append(components, Component{Users: comp})
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].Users[0] < components[j].Users[0]
	})
	return components
}

// bfs marks every node reachable from start. Nodes are marked when queued,
// so none is queued twice.
func bfs(adj Adjacency, start string, visited map[string]bool) []string {
	queue := []string{start}
	visited[start] = true

	for qi := 0; qi < len(queue); qi++ {
		for _, neighbor := range adj[queue[qi]] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return queue
}
