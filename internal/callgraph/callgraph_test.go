package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for callgraph:
// - Intra-class calls become caller->callee edges
// - Constructors and control keywords are never nodes
// - Calls to methods of other classes are excluded
// - Classes without edges are omitted
// - Mermaid block references Class.method labels

func TestBuild_IntraClassEdges(t *testing.T) {
	t.Parallel()

	code := `
public class OrderProcessor
{
    public OrderProcessor()
    {
        Initialize();
    }

    public void Process()
    {
        Validate();
        Persist();
    }

    private bool Validate()
    {
        if (true) { return Check(); }
        return false;
    }

    private bool Check() { return true; }

    private void Persist() { }
}
`
	graphs := Build(code)
	require.Len(t, graphs, 1)
	g := graphs[0]
	assert.Equal(t, "OrderProcessor", g.Class)

	edgeSet := make(map[string]bool)
	for _, e := range g.Edges {
		edgeSet[e.Caller+"->"+e.Callee] = true
	}
	assert.True(t, edgeSet["Process->Validate"])
	assert.True(t, edgeSet["Process->Persist"])
	assert.True(t, edgeSet["Validate->Check"])

	for _, e := range g.Edges {
		assert.NotEqual(t, "OrderProcessor", e.Caller, "constructor excluded")
		assert.NotEqual(t, "if", e.Callee)
	}

	assert.Contains(t, g.Mermaid, "graph TD")
	assert.Contains(t, g.Mermaid, "OrderProcessor.Process")
}

func TestBuild_ExcludesCrossClassCalls(t *testing.T) {
	t.Parallel()

	code := `
public class Caller
{
    public void Run()
    {
        Helper();
        _service.Save();
    }

    private void Helper() { }
}

public class Service
{
    public void Save() { Flush(); }
    private void Flush() { }
}
`
	graphs := Build(code)
	require.Len(t, graphs, 2)

	for _, g := range graphs {
		for _, e := range g.Edges {
			if g.Class == "Caller" {
				assert.NotEqual(t, "Save", e.Callee, "cross-class call must not appear")
			}
		}
	}
}

func TestBuild_NoEdgesNoGraph(t *testing.T) {
	t.Parallel()

	code := `
public class Plain
{
    public void A() { }
    public void B() { }
}
`
	assert.Empty(t, Build(code))
	assert.Empty(t, Build(""))
}
