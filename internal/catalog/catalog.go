package catalog

import (
	"sort"
	"strings"

	"github.com/mvp-joe/code-atlas/internal/source"
)

// Build assembles the full service catalog for one batch of files. Only
// csharp files carry controller attributes, so other languages are
// skipped. deps may be nil, in which case the flow graph and controller
// dependency lists stay empty.
func Build(files []source.File, deps DependencyLookup) *Catalog {
	var (
		controllers []Controller
		endpoints   []Endpoint
		services    []string
		interfaces  []string
		contents    []string
	)
	classMap := make(map[string][]string)
	endpointBodies := make(map[string]string)

	for _, file := range files {
		if file.Language != source.LangCSharp {
			continue
		}
		contents = append(contents, file.Content)

		parsed := parseControllerFile(file.Content)
		classMap[file.RelPath] = parsed.classes
		controllers = append(controllers, parsed.controllers...)
		endpoints = append(endpoints, parsed.endpoints...)
		for key, body := range parsed.endpointBodies {
			endpointBodies[key] = body
		}
		for _, cls := range parsed.classes {
			if strings.HasSuffix(cls, "Service") || strings.HasSuffix(cls, "Repository") {
				services = append(services, cls)
			}
			if strings.HasPrefix(cls, "I") && len(cls) > 1 {
				interfaces = append(interfaces, cls)
			}
		}
	}

	consumerMap := buildConsumerMap(contents)
	flowGraph, controllerDeps := buildFlowGraph(controllers, classMap, deps)
	flows := buildEndpointFlows(endpoints, endpointBodies, consumerMap)

	return &Catalog{
		Controllers:            controllers,
		Services:               sortedUnique(services),
		Interfaces:             sortedUnique(interfaces),
		Endpoints:              endpoints,
		FlowGraph:              flowGraph,
		ControllerDependencies: controllerDeps,
		EndpointFlows:          flows,
		APISpec:                buildAPISpec(endpoints, controllerDeps, flows),
		SequenceDiagrams:       buildSequenceDiagrams(endpoints, controllerDeps, flows),
	}
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
