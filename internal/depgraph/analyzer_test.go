package depgraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-atlas/internal/extract"
	"github.com/mvp-joe/code-atlas/internal/source"
)

// Test Plan for depgraph:
// - Exact qualified import produces a single internal edge (scenario 1)
// - Mutual imports produce one well-formed two-node cycle (scenario 2)
// - Unmatched imports land verbatim in external dependencies (scenario 3)
// - Empty input yields empty, valid result (scenario 5)
// - Analysis is idempotent across identical runs
// - No node ever depends on itself
// - Dependent counts match a full scan of all adjacency sets
// - Orphans are exactly the zero-degree files
// - Reset isolation between sequential batches on one instance
// - Java package imports fan out to every file in the package
// - Namespace imports accept only files whose classes appear as tokens
// - Ambiguous simple names resolve to every declaring file
// - Coupling threshold is configurable and sorted descending
// - Unrecognized languages and failing extractors are skipped

func javaFile(rel, pkg, class string, imports ...string) source.File {
	content := "package " + pkg + ";\n"
	for _, imp := range imports {
		content += "import " + imp + ";\n"
	}
	content += "public class " + class + " {\n}\n"
	return source.File{
		Path:     "/repo/" + rel,
		RelPath:  rel,
		Language: source.LangJava,
		Content:  content,
	}
}

func analyze(t *testing.T, files ...source.File) *Result {
	t.Helper()
	a := NewAnalyzer()
	return a.Analyze(files, extract.DefaultExtractors())
}

func TestAnalyze_ExactImportSingleEdge(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("src/A.java", "com.app", "A", "com.app.B"),
		javaFile("src/B.java", "com.app", "B"),
	)

	assert.Equal(t, 2, result.FileCount)
	assert.Equal(t, 1, result.DependencyCount)
	assert.Equal(t, 0, result.ExternalDependencyCount)
	assert.Empty(t, result.CircularDependencies)
	assert.Empty(t, result.OrphanedFiles)

	require.Len(t, result.DependencyMap.Edges, 1)
	edge := result.DependencyMap.Edges[0]
	assert.Equal(t, "src/A.java", edge.Source)
	assert.Equal(t, "src/B.java", edge.Target)
	assert.Equal(t, EdgeTypeInternal, edge.Type)
}

func TestAnalyze_MutualImportsReportCycle(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("A.java", "com.app", "A", "com.app.B"),
		javaFile("B.java", "com.app", "B", "com.app.A"),
	)

	require.NotEmpty(t, result.CircularDependencies)

	twoNode := 0
	for _, cycle := range result.CircularDependencies {
		assert.Equal(t, cycle[0], cycle[len(cycle)-1], "cycle must close on its start node")
		if len(cycle) == 3 {
			twoNode++
		}
	}
	assert.Equal(t, 1, twoNode, "exactly one two-node cycle expected")

	// Every consecutive pair must be a real edge.
	edgeSet := make(map[string]bool)
	for _, e := range result.DependencyMap.Edges {
		edgeSet[e.Source+"->"+e.Target] = true
	}
	for _, cycle := range result.CircularDependencies {
		for i := 0; i+1 < len(cycle); i++ {
			assert.True(t, edgeSet[cycle[i]+"->"+cycle[i+1]], "cycle step %s->%s is not a graph edge", cycle[i], cycle[i+1])
		}
	}
}

func TestAnalyze_UnmatchedImportIsExternal(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("A.java", "com.app", "A", "org.vendor.sdk.Client", "org.vendor.util.*"),
	)

	assert.Equal(t, 0, result.DependencyCount)
	assert.Equal(t, 2, result.ExternalDependencyCount)

	externals := result.DependencyMap.ExternalDependencies["A.java"]
	assert.Contains(t, externals, "org.vendor.sdk.Client")
	assert.Contains(t, externals, "org.vendor.util.*", "wildcard form must be preserved verbatim")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	t.Parallel()

	result := analyze(t)

	assert.Equal(t, 0, result.FileCount)
	assert.Equal(t, 0, result.ClassCount)
	assert.Empty(t, result.DependencyMap.Nodes)
	assert.Empty(t, result.DependencyMap.Edges)
	assert.Empty(t, result.CircularDependencies)
	assert.Empty(t, result.OrphanedFiles)
	assert.Empty(t, result.HighlyCoupledFiles)
}

func TestAnalyze_Idempotent(t *testing.T) {
	t.Parallel()

	files := []source.File{
		javaFile("A.java", "com.app", "A", "com.app.B", "com.app.C"),
		javaFile("B.java", "com.app", "B", "com.app.C"),
		javaFile("C.java", "com.app", "C"),
	}

	a := NewAnalyzer()
	first := a.Analyze(files, extract.DefaultExtractors())
	second := a.Analyze(files, extract.DefaultExtractors())

	assert.Equal(t, first.DependencyMap.Nodes, second.DependencyMap.Nodes)
	assert.Equal(t, first.DependencyMap.Edges, second.DependencyMap.Edges)
	assert.Equal(t, first.FileCount, second.FileCount)
	assert.Equal(t, first.DependencyCount, second.DependencyCount)
	assert.Equal(t, first.ClassCount, second.ClassCount)
}

func TestAnalyze_NoSelfLoops(t *testing.T) {
	t.Parallel()

	// A imports its own class name and its own package.
	result := analyze(t,
		javaFile("A.java", "com.app", "A", "com.app.A", "com.app"),
		javaFile("B.java", "com.app", "B"),
	)

	for _, edge := range result.DependencyMap.Edges {
		assert.NotEqual(t, edge.Source, edge.Target, "self-loop on %s", edge.Source)
	}
}

func TestAnalyze_CouplingSymmetry(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("A.java", "com.app", "A", "com.app.C"),
		javaFile("B.java", "com.app", "B", "com.app.C"),
		javaFile("C.java", "com.app", "C"),
	)

	incoming := make(map[string]int)
	for _, edge := range result.DependencyMap.Edges {
		incoming[edge.Target]++
	}
	for _, node := range result.DependencyMap.Nodes {
		assert.Equal(t, incoming[node.ID], node.DependentCount, "dependent count mismatch for %s", node.ID)
	}
}

func TestAnalyze_OrphanCorrectness(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("A.java", "com.app", "A", "com.app.B"),
		javaFile("B.java", "com.app", "B"),
		javaFile("Lonely.java", "com.alone", "Lonely"),
	)

	assert.Equal(t, []string{"Lonely.java"}, result.OrphanedFiles)
}

func TestAnalyze_ResetIsolation(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer()
	extractors := extract.DefaultExtractors()

	first := a.Analyze([]source.File{
		javaFile("batch1/A.java", "one.app", "A", "one.app.B"),
		javaFile("batch1/B.java", "one.app", "B"),
	}, extractors)
	require.Equal(t, 2, first.FileCount)

	second := a.Analyze([]source.File{
		javaFile("batch2/C.java", "two.app", "C"),
	}, extractors)

	assert.Equal(t, 1, second.FileCount)
	for _, node := range second.DependencyMap.Nodes {
		assert.NotContains(t, node.ID, "batch1", "state leaked between batches")
	}
	assert.Empty(t, second.DependencyMap.Edges)
}

func TestAnalyze_JavaPackageImportFansOut(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("App.java", "com.app", "App", "com.app.util.*"),
		javaFile("util/Strings.java", "com.app.util", "Strings"),
		javaFile("util/Numbers.java", "com.app.util", "Numbers"),
	)

	deps := make(map[string]bool)
	for _, edge := range result.DependencyMap.Edges {
		if edge.Source == "App.java" {
			deps[edge.Target] = true
		}
	}
	assert.True(t, deps["util/Strings.java"])
	assert.True(t, deps["util/Numbers.java"])
}

func TestAnalyze_NamespaceImportScansTokens(t *testing.T) {
	t.Parallel()

	service := source.File{
		Path:     "/repo/Service.cs",
		RelPath:  "Service.cs",
		Language: source.LangCSharp,
		Content: `using Shop.Data;

namespace Shop.Api
{
    public class OrderService
    {
        private readonly OrderRepository _repo;
    }
}
`,
	}
	repo := source.File{
		Path:     "/repo/Repo.cs",
		RelPath:  "Repo.cs",
		Language: source.LangCSharp,
		Content: `namespace Shop.Data
{
    public class OrderRepository
    {
    }
}
`,
	}
	unrelated := source.File{
		Path:     "/repo/Audit.cs",
		RelPath:  "Audit.cs",
		Language: source.LangCSharp,
		Content: `namespace Shop.Data
{
    public class AuditLog
    {
    }
}
`,
	}

	result := analyze(t, service, repo, unrelated)

	targets := make(map[string]bool)
	for _, edge := range result.DependencyMap.Edges {
		if edge.Source == "Service.cs" {
			targets[edge.Target] = true
		}
	}
	assert.True(t, targets["Repo.cs"], "referenced class in shared namespace must resolve")
	assert.False(t, targets["Audit.cs"], "unreferenced class sharing the namespace must not become an edge")
}

func TestAnalyze_AmbiguousSimpleNameFansOut(t *testing.T) {
	t.Parallel()

	result := analyze(t,
		javaFile("App.java", "com.app", "App", "x.unknown.Helper"),
		javaFile("a/Helper.java", "com.liba", "Helper"),
		javaFile("b/Helper.java", "com.libb", "Helper"),
	)

	targets := make(map[string]bool)
	for _, edge := range result.DependencyMap.Edges {
		if edge.Source == "App.java" {
			targets[edge.Target] = true
		}
	}
	assert.True(t, targets["a/Helper.java"])
	assert.True(t, targets["b/Helper.java"])
}

func TestAnalyze_CouplingThreshold(t *testing.T) {
	t.Parallel()

	files := []source.File{
		javaFile("Hub.java", "com.app", "Hub", "com.app.S1", "com.app.S2", "com.app.S3"),
		javaFile("S1.java", "com.app", "S1"),
		javaFile("S2.java", "com.app", "S2"),
		javaFile("S3.java", "com.app", "S3"),
		javaFile("U1.java", "com.app", "U1", "com.app.Hub"),
		javaFile("U2.java", "com.app", "U2", "com.app.Hub"),
	}

	result := NewAnalyzer().Analyze(files, extract.DefaultExtractors())
	require.NotEmpty(t, result.HighlyCoupledFiles)
	top := result.HighlyCoupledFiles[0]
	assert.Equal(t, "Hub.java", top.File)
	assert.Equal(t, 3, top.Dependencies)
	assert.Equal(t, 2, top.Dependents)
	assert.Equal(t, 5, top.Total)

	// A higher threshold filters the same graph down to nothing.
	strict := NewAnalyzer(WithCouplingThreshold(10)).Analyze(files, extract.DefaultExtractors())
	assert.Empty(t, strict.HighlyCoupledFiles)
}

type failingExtractor struct{}

func (failingExtractor) Extract(string) (*extract.SymbolTable, error) {
	return nil, fmt.Errorf("synthetic extraction failure")
}

func TestAnalyze_SkipsFailingAndUnknownFiles(t *testing.T) {
	t.Parallel()

	files := []source.File{
		javaFile("Good.java", "com.app", "Good"),
		{Path: "/repo/bad.java", RelPath: "bad.java", Language: source.LangJava, Content: "broken"},
		{Path: "/repo/readme.md", RelPath: "readme.md", Language: source.LangUnknown, Content: "# docs"},
	}

	extractors := map[string]extract.Extractor{
		source.LangJava: extract.NewJavaExtractor(),
	}
	result := NewAnalyzer().Analyze(files, extractors)
	assert.Equal(t, 2, result.FileCount, "unknown language skipped, parse still tolerated")

	// Now make the extractor fail outright: the batch continues.
	result = NewAnalyzer().Analyze(files, map[string]extract.Extractor{
		source.LangJava: failingExtractor{},
	})
	assert.Equal(t, 0, result.FileCount)
	assert.Empty(t, result.DependencyMap.Edges)
}
