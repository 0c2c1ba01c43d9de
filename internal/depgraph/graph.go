package depgraph

import (
	"log"
	"time"

	"github.com/dominikbraun/graph"
)

// buildGraph materializes the resolved edges into a directed graph.
// Every indexed file becomes a vertex, so edges can only ever reference
// files present in the index.
func (a *Analyzer) buildGraph() graph.Graph[string, Node] {
	g := graph.New(func(n Node) string { return n.ID }, graph.Directed())

	for _, relPath := range a.fileOrder {
		entry := a.files[relPath]
		classes := make([]string, 0, len(entry.classes))
		for _, c := range entry.classes {
			classes = append(classes, c.name)
		}
		node := Node{
			ID:              relPath,
			Path:            relPath,
			Language:        entry.language,
			Package:         entry.pkg,
			Classes:         classes,
			DependencyCount: len(a.deps[relPath]),
			DependentCount:  len(a.reverse[relPath]),
		}
		if err := g.AddVertex(node); err != nil {
			log.Printf("Warning: duplicate graph vertex %s: %v", relPath, err)
		}
	}

	for _, from := range sortedKeys(a.deps) {
		for _, to := range sortedKeys(a.deps[from]) {
			// Vertices exist for every indexed file, so the only
			// expected failure is a duplicate edge, which is a no-op.
			_ = g.AddEdge(from, to)
		}
	}

	return g
}

// buildResult assembles the complete analysis result from the current
// indices.
func (a *Analyzer) buildResult() *Result {
	g := a.buildGraph()

	nodes := make([]Node, 0, len(a.fileOrder))
	for _, relPath := range a.fileOrder {
		node, err := g.Vertex(relPath)
		if err != nil {
			continue
		}
		nodes = append(nodes, node)
	}

	edges := make([]Edge, 0)
	for _, from := range sortedKeys(a.deps) {
		for _, to := range sortedKeys(a.deps[from]) {
			edges = append(edges, Edge{Source: from, Target: to, Type: EdgeTypeInternal})
		}
	}

	external := make(map[string][]string, len(a.external))
	externalCount := 0
	for file, imports := range a.external {
		external[file] = append([]string(nil), imports...)
		externalCount += len(imports)
	}

	return &Result{
		DependencyMap: DependencyMap{
			Nodes:                nodes,
			Edges:                edges,
			ExternalDependencies: external,
		},
		FileCount:               len(a.files),
		ClassCount:              len(a.classIndex),
		DependencyCount:         len(edges),
		ExternalDependencyCount: externalCount,
		CircularDependencies:    a.detectCycles(g),
		OrphanedFiles:           a.findOrphans(),
		HighlyCoupledFiles:      a.findHighlyCoupled(),
		RunID:                   NewRunID(),
		GeneratedAt:             time.Now().UTC(),
	}
}
