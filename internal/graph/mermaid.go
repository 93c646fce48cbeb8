package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteMermaid writes the graph in Mermaid format to w.
// Each connected component is a subgraph.
func WriteMermaid(w io.Writer, g *Graph) error {
	components := FindComponents(g.Adjacency)
	ids := nodeIDs(g)

	if _, err := fmt.Fprintln(w, "graph LR"); err != nil {
		return err
	}

	for i, comp := range components {
		fmt.Fprintf(w, "    subgraph component_%d\n", i+1)

		// Declare every node first so isolated users are drawn too
		for _, u := range comp.Users {
			fmt.Fprintf(w, "        %s[\"%s\"]\n", ids[u], mermaidLabel(u))
		}

		for _, u := range comp.Users {
			for _, n := range sortedNeighbors(g.Adjacency, u) {
				// Each undirected edge once
				if u < n {
					fmt.Fprintf(w, "        %s --- %s\n", ids[u], ids[n])
				}
			}
		}

		fmt.Fprintln(w, "    end")
		if i < len(components)-1 {
			fmt.Fprintln(w)
		}
	}

	return nil
}

// WriteText writes a text summary of the graph to w.
func WriteText(w io.Writer, g *Graph) error {
	components := FindComponents(g.Adjacency)

	fmt.Fprintf(w, "Users: %d\n", len(g.Adjacency))
	fmt.Fprintf(w, "Edges: %d\n", g.Adjacency.EdgeCount())
	fmt.Fprintf(w, "Threshold: %g\n", g.Threshold)
	fmt.Fprintf(w, "Connected Components: %d\n\n", len(components))

	var isolated []string
	for _, comp := range components {
		if len(comp.Users) == 1 {
			isolated = append(isolated, comp.Users[0])
		}
	}
	if len(isolated) > 0 {
		fmt.Fprintf(w, "Isolated users: %d\n\n", len(isolated))
	}

	for i, comp := range components {
		if len(comp.Users) == 1 {
			continue
		}
		fmt.Fprintf(w, "=== Component %d (%d users) ===\n", i+1, len(comp.Users))
		for j, u := range comp.Users {
			fmt.Fprintf(w, "    %d. %s (degree %d)\n", j+1, u, g.Adjacency.Degree(u))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// nodeIDs assigns Mermaid-safe IDs; user names may contain anything.
func nodeIDs(g *Graph) map[string]string {
	names := make([]string, 0, len(g.Adjacency))
	for u := range g.Adjacency {
		names = append(names, u)
	}
	sort.Strings(names)

	ids := make(map[string]string, len(names))
	for i, u := range names {
		ids[u] = fmt.Sprintf("u%d", i+1)
	}
	return ids
}

var mermaidEscaper = strings.NewReplacer(
	`"`, "#quot;",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// mermaidLabel escapes a user name for use inside a quoted Mermaid label.
// Line breaks become spaces so a node stays on one line.
func mermaidLabel(name string) string {
	return mermaidEscaper.Replace(name)
}

func sortedNeighbors(adj Adjacency, user string) []string {
	n := append([]string(nil), adj[user]...)
	sort.Strings(n)
	return n
}
