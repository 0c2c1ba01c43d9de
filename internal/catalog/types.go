// Package catalog builds an HTTP endpoint and service-flow catalog from
// attribute-annotated controller classes, stitching in asynchronous
// consumer hops inferred from message publications.
package catalog

// Controller is a detected controller class with its base route.
type Controller struct {
	Name  string `json:"name"`
	Route string `json:"route"`
}

// Endpoint is one HTTP-exposed controller method.
type Endpoint struct {
	Controller string   `json:"controller"`
	Method     string   `json:"method"`
	HTTPVerbs  []string `json:"http_verbs"`
	Route      string   `json:"route"`
}

// EndpointFlow carries the ordered inferred processing steps of one
// endpoint, including appended consumer hops, plus the message types it
// publishes.
type EndpointFlow struct {
	Controller string   `json:"controller"`
	Method     string   `json:"method"`
	HTTPVerbs  []string `json:"http_verbs"`
	Route      string   `json:"route"`
	Steps      []string `json:"steps"`
	Messages   []string `json:"messages"`
}

// SpecRow is one row of the flattened endpoint table.
type SpecRow struct {
	Controller string   `json:"controller"`
	Method     string   `json:"method"`
	HTTPVerbs  []string `json:"http_verbs"`
	Route      string   `json:"route"`
	Components []string `json:"components"`
	Steps      []string `json:"steps"`
}

// SequenceDiagram is a rendered per-endpoint sequence diagram.
type SequenceDiagram struct {
	Controller string   `json:"controller"`
	Method     string   `json:"method"`
	HTTPVerbs  []string `json:"http_verbs"`
	Route      string   `json:"route"`
	Components []string `json:"components"`
	Mermaid    string   `json:"mermaid"`
}

// Consumer is a class implementing the generic consumer interface for
// one message type.
type Consumer struct {
	Name    string `json:"consumer"`
	ReadsDB bool   `json:"reads_db"`
}

// Catalog is the complete service catalog for one batch of files.
type Catalog struct {
	Controllers            []Controller        `json:"controllers"`
	Services               []string            `json:"services"`
	Interfaces             []string            `json:"interfaces"`
	Endpoints              []Endpoint          `json:"endpoints"`
	FlowGraph              string              `json:"flow_graph,omitempty"`
	ControllerDependencies map[string][]string `json:"controller_dependencies"`
	EndpointFlows          []EndpointFlow      `json:"endpoint_flows"`
	APISpec                []SpecRow           `json:"api_spec"`
	SequenceDiagrams       []SequenceDiagram   `json:"endpoint_sequence_diagrams"`
}

// DependencyLookup exposes the per-file outgoing edges of an already-run
// dependency analysis. depgraph.Analyzer satisfies it.
type DependencyLookup interface {
	Dependencies(relPath string) []string
}
