package depgraph

import "time"

// EdgeTypeInternal tags edges between two analyzed files. Imports that
// resolve outside the analyzed set never become edges; they are tracked
// in DependencyMap.ExternalDependencies instead.
const EdgeTypeInternal = "internal"

// Node represents one analyzed file in the dependency graph.
type Node struct {
	ID              string   `json:"id"`   // Normalized relative path
	Path            string   `json:"path"` // Same as ID, kept for export stability
	Language        string   `json:"language"`
	Package         string   `json:"package"` // Package or namespace, empty if none
	Classes         []string `json:"classes"`
	DependencyCount int      `json:"dependency_count"` // Outgoing edges
	DependentCount  int      `json:"dependent_count"`  // Incoming edges
}

// Edge represents a directed file-to-file dependency.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// DependencyMap is the graph portion of an analysis result.
type DependencyMap struct {
	Nodes                []Node              `json:"nodes"`
	Edges                []Edge              `json:"edges"`
	ExternalDependencies map[string][]string `json:"external_dependencies"`
}

// CouplingRecord describes one file's combined in/out degree.
type CouplingRecord struct {
	File         string `json:"file"`
	Dependencies int    `json:"dependencies"`
	Dependents   int    `json:"dependents"`
	Total        int    `json:"total_coupling"`
}

// Result is the complete output of one analysis run.
type Result struct {
	DependencyMap           DependencyMap    `json:"dependency_map"`
	FileCount               int              `json:"file_count"`
	ClassCount              int              `json:"class_count"`
	DependencyCount         int              `json:"dependency_count"`
	ExternalDependencyCount int              `json:"external_dependency_count"`
	CircularDependencies    [][]string       `json:"circular_dependencies"`
	OrphanedFiles           []string         `json:"orphaned_files"`
	HighlyCoupledFiles      []CouplingRecord `json:"highly_coupled_files"`
	RunID                   string           `json:"run_id"`
	GeneratedAt             time.Time        `json:"generated_at"`
}

// ProgressReporter reports progress during analysis. All methods may be
// called with a nil-safe no-op implementation absent.
type ProgressReporter interface {
	OnAnalysisStart(totalFiles int)
	OnFileIndexed(processed, total int, fileName string)
	OnAnalysisComplete(nodeCount, edgeCount int, duration time.Duration)
}
