package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/mvp-joe/code-atlas/internal/depgraph"
)

const mermaidSlugMax = 40

// Caps for the report-embedded graph, matching what stays readable in
// rendered Markdown.
const (
	reportMaxSources = 20
	reportMaxTargets = 5
)

var mermaidSlugRe = regexp.MustCompile(`\W+`)

// MermaidGraph renders the full dependency graph as Mermaid markup.
func MermaidGraph(result *depgraph.Result) string {
	return mermaidGraph(result, 0, 0)
}

// mermaidGraph renders up to maxSources nodes with up to maxTargets
// outgoing edges each. Zero caps mean unlimited.
func mermaidGraph(result *depgraph.Result, maxSources, maxTargets int) string {
	labels := nodeLabels(result.DependencyMap.Nodes)

	var b strings.Builder
	b.WriteString("graph TD\n")

	outgoing := make(map[string][]string)
	for _, edge := range result.DependencyMap.Edges {
		outgoing[edge.Source] = append(outgoing[edge.Source], edge.Target)
	}

	declared := make(map[string]struct{})
	declare := func(path string) {
		if _, ok := declared[path]; ok {
			return
		}
		declared[path] = struct{}{}
		b.WriteString("  " + mermaidNodeID(path) + `["` + labels[path] + `"]` + "\n")
	}

	sources := 0
	for _, node := range result.DependencyMap.Nodes {
		targets := outgoing[node.Path]
		if len(targets) == 0 {
			continue
		}
		if maxSources > 0 && sources >= maxSources {
			break
		}
		sources++
		if maxTargets > 0 && len(targets) > maxTargets {
			targets = targets[:maxTargets]
		}
		declare(node.Path)
		for _, target := range targets {
			declare(target)
			b.WriteString("  " + mermaidNodeID(node.Path) + " --> " + mermaidNodeID(target) + "\n")
		}
	}

	return b.String()
}

// mermaidNodeID builds a collision-safe node id: a sanitized slug of
// the relative path capped at mermaidSlugMax characters, suffixed with
// an 8-hex hash of the full path. Distinct paths sharing a slug prefix
// still get distinct ids.
func mermaidNodeID(path string) string {
	slug := strings.Trim(mermaidSlugRe.ReplaceAllString(path, "_"), "_")
	if len(slug) > mermaidSlugMax {
		slug = slug[:mermaidSlugMax]
	}
	return fmt.Sprintf("%s_%08x", slug, uint32(xxhash.Sum64String(path)))
}

// nodeLabels maps each node path to its display label: filename,
// the first declared class when one exists, and a parent-folder prefix
// when two files share a filename.
func nodeLabels(nodes []depgraph.Node) map[string]string {
	nameCounts := make(map[string]int)
	for _, node := range nodes {
		nameCounts[baseName(node.Path)]++
	}

	labels := make(map[string]string, len(nodes))
	for _, node := range nodes {
		name := baseName(node.Path)
		label := name
		if nameCounts[name] > 1 {
			if parent := parentDir(node.Path); parent != "" {
				label = parent + "/" + name
			}
		}
		if len(node.Classes) > 0 {
			label += " / " + node.Classes[0]
		}
		labels[node.Path] = label
	}
	return labels
}

func parentDir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	dir := path[:i]
	if j := strings.LastIndex(dir, "/"); j >= 0 {
		dir = dir[j+1:]
	}
	return dir
}
