package export

import (
	"strings"

	"github.com/mvp-joe/code-atlas/internal/depgraph"
)

var dotIDReplacer = strings.NewReplacer("/", "_", "\\", "_", ".", "_")

// DOT renders the dependency map as a Graphviz digraph. Node ids are
// the relative path with separators and dots replaced by underscores,
// labels show the filename plus the package when one was declared.
func DOT(result *depgraph.Result) string {
	var b strings.Builder
	b.WriteString("digraph Dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, node := range result.DependencyMap.Nodes {
		label := baseName(node.Path)
		if node.Package != "" {
			label += `\n(` + node.Package + `)`
		}
		b.WriteString(`  "` + dotIDReplacer.Replace(node.Path) + `" [label="` + label + `"];` + "\n")
	}
	b.WriteString("\n")

	for _, edge := range result.DependencyMap.Edges {
		b.WriteString(`  "` + dotIDReplacer.Replace(edge.Source) + `" -> "` + dotIDReplacer.Replace(edge.Target) + `";` + "\n")
	}

	b.WriteString("}\n")
	return b.String()
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
