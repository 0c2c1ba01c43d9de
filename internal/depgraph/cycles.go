package depgraph

import (
	"log"
	"sort"

	"github.com/dominikbraun/graph"
)

// detectCycles finds circular dependency chains with a depth-first
// search from every unvisited node. Each returned cycle is an ordered
// file sequence whose first element is repeated at the end.
//
// The same underlying cycle can be reported more than once when several
// start nodes reach the same strongly connected component by different
// traversal orders. That mirrors the exhaustive-DFS design; full SCC
// enumeration is intentionally out of scope.
func (a *Analyzer) detectCycles(g graph.Graph[string, Node]) [][]string {
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		log.Printf("Warning: adjacency map unavailable: %v", err)
		return [][]string{}
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	cycles := [][]string{}

	var dfs func(node string, path []string)
	dfs = func(node string, path []string) {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		for _, neighbor := range sortedNeighbors(adjacency[node]) {
			if !visited[neighbor] {
				// Each branch gets its own copy of the path so sibling
				// branches never cross-contaminate.
				branch := make([]string, len(path))
				copy(branch, path)
				dfs(neighbor, branch)
			} else if recStack[neighbor] {
				start := indexOf(path, neighbor)
				if start < 0 {
					continue
				}
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, neighbor)
				cycles = append(cycles, cycle)
			}
		}

		recStack[node] = false
	}

	for _, node := range a.sortedFiles() {
		if !visited[node] {
			dfs(node, nil)
		}
	}

	return cycles
}

// sortedFiles returns all indexed paths in sorted order, keeping the
// traversal deterministic across runs.
func (a *Analyzer) sortedFiles() []string {
	files := append([]string(nil), a.fileOrder...)
	sort.Strings(files)
	return files
}

func sortedNeighbors[E any](edges map[string]E) []string {
	out := make([]string, 0, len(edges))
	for target := range edges {
		out = append(out, target)
	}
	sort.Strings(out)
	return out
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
