package catalog

import (
	"sort"
	"strings"
)

// buildFlowGraph renders a controller-to-dependency Mermaid graph and
// collects per-controller dependency class lists. Dependency classes
// qualify by suffix (Service, Repository, Consumer, Handler) or by the
// I-interface prefix. Returns an empty graph when no edge exists or no
// dependency lookup is available.
func buildFlowGraph(controllers []Controller, classMap map[string][]string, deps DependencyLookup) (string, map[string][]string) {
	controllerDeps := make(map[string][]string)
	if deps == nil || len(controllers) == 0 {
		return "", controllerDeps
	}

	controllerFiles := make(map[string]string)
	for _, path := range sortedMapKeys(classMap) {
		for _, cls := range classMap[path] {
			if strings.HasSuffix(cls, "Controller") {
				controllerFiles[cls] = path
			}
		}
	}

	lines := []string{"```mermaid", "graph LR"}
	edgesAdded := make(map[string]struct{})

	for _, controller := range controllers {
		path, ok := controllerFiles[controller.Name]
		if !ok {
			continue
		}
		for _, depPath := range deps.Dependencies(path) {
			for _, depClass := range classMap[depPath] {
				if !flowGraphDependency(depClass) {
					continue
				}
				if !containsString(controllerDeps[controller.Name], depClass) {
					controllerDeps[controller.Name] = append(controllerDeps[controller.Name], depClass)
				}
				srcID := safeID(controller.Name)
				dstID := safeID(depClass)
				edgeKey := srcID + "->" + dstID
				if _, dup := edgesAdded[edgeKey]; dup {
					continue
				}
				edgesAdded[edgeKey] = struct{}{}
				lines = append(lines, "  "+srcID+`["`+controller.Name+`"] --> `+dstID+`["`+depClass+`"]`)
			}
		}
	}

	if len(edgesAdded) == 0 {
		return "", controllerDeps
	}
	lines = append(lines, "```")
	return strings.Join(lines, "\n"), controllerDeps
}

func flowGraphDependency(class string) bool {
	for _, suffix := range []string{"Service", "Repository", "Consumer", "Handler"} {
		if strings.HasSuffix(class, suffix) {
			return true
		}
	}
	return strings.HasPrefix(class, "I")
}

// buildAPISpec flattens endpoints, their controller dependencies, and
// their inferred flows into one table.
func buildAPISpec(endpoints []Endpoint, controllerDeps map[string][]string, flows []EndpointFlow) []SpecRow {
	flowLookup := flowsByEndpoint(flows)
	rows := make([]SpecRow, 0, len(endpoints))
	for _, ep := range endpoints {
		deps := controllerDeps[ep.Controller]
		components := append([]string{ep.Controller}, deps...)
		rows = append(rows, SpecRow{
			Controller: ep.Controller,
			Method:     ep.Method,
			HTTPVerbs:  ep.HTTPVerbs,
			Route:      ep.Route,
			Components: components,
			Steps:      flowLookup[ep.Controller+"."+ep.Method].Steps,
		})
	}
	return rows
}

// buildSequenceDiagrams renders one Mermaid sequence diagram per
// endpoint from its flow steps and controller dependencies.
func buildSequenceDiagrams(endpoints []Endpoint, controllerDeps map[string][]string, flows []EndpointFlow) []SequenceDiagram {
	flowLookup := flowsByEndpoint(flows)
	diagrams := make([]SequenceDiagram, 0, len(endpoints))
	for _, ep := range endpoints {
		deps := controllerDeps[ep.Controller]
		label := strings.TrimSpace(strings.Join(ep.HTTPVerbs, ", ") + " " + ep.Route)
		if label == "" {
			label = "Request"
		}
		flow := flowLookup[ep.Controller+"."+ep.Method]
		diagrams = append(diagrams, SequenceDiagram{
			Controller: ep.Controller,
			Method:     ep.Method,
			HTTPVerbs:  ep.HTTPVerbs,
			Route:      ep.Route,
			Components: append([]string{ep.Controller}, deps...),
			Mermaid:    renderEndpointSequence(ep.Controller, deps, label, flow.Steps),
		})
	}
	return diagrams
}

func flowsByEndpoint(flows []EndpointFlow) map[string]EndpointFlow {
	lookup := make(map[string]EndpointFlow, len(flows))
	for _, flow := range flows {
		lookup[flow.Controller+"."+flow.Method] = flow
	}
	return lookup
}

// renderEndpointSequence renders a request lifecycle: Client calls the
// controller, the controller fans out to its dependencies, persistence
// and broker exchanges are drawn when the step text indicates them, and
// broker deliveries reach any consumers the flow names.
func renderEndpointSequence(controller string, dependencies []string, requestLabel string, steps []string) string {
	messages := messageNames(steps)
	consumers := consumerNames(steps)
	dbActivity := hasDBActivity(steps)
	queueActivity := len(messages) > 0 || anyStepContains(steps, "queue")
	notes := remainingNotes(steps)

	lines := []string{"```mermaid", "sequenceDiagram", "  participant Client"}
	added := map[string]struct{}{"Client": {}}
	addParticipant := func(id, label string) {
		if _, ok := added[id]; ok {
			return
		}
		added[id] = struct{}{}
		if label != "" {
			lines = append(lines, "  participant "+id+" as "+label)
			return
		}
		lines = append(lines, "  participant "+id)
	}

	if controller != "" {
		addParticipant(safeID(controller), controller)
	}
	for _, dep := range dependencies {
		addParticipant(safeID(dep), dep)
	}
	if dbActivity {
		addParticipant("Database", "")
	}
	if queueActivity {
		addParticipant("MessageBroker", "")
	}
	for _, consumer := range consumers {
		addParticipant(safeID(consumer), consumer)
	}

	if controller == "" {
		lines = append(lines,
			"  Client->>Service: Request",
			"  Service-->>Client: Response",
			"```")
		return strings.Join(lines, "\n")
	}

	ctrlID := safeID(controller)
	publishLabel := "Publish event/message"
	deliverLabel := "Deliver event/message"
	if len(messages) > 0 {
		publishLabel = "Publish " + strings.Join(messages, ", ")
		deliverLabel = "Deliver " + strings.Join(messages, ", ")
	}

	lines = append(lines,
		"  Client->>"+ctrlID+": "+requestLabel,
		"  activate "+ctrlID)

	for _, dep := range dependencies {
		depID := safeID(dep)
		action := inferDependencyAction(dep, dbActivity, queueActivity, messages)
		lines = append(lines,
			"  "+ctrlID+"->>"+depID+": "+action,
			"  activate "+depID)
		if dbActivity && isDBComponent(dep) {
			lines = append(lines,
				"  "+depID+"->>Database: Read/Write data",
				"  Database-->>"+depID+": Data/ACK")
		}
		if queueActivity && isMessagingComponent(dep) {
			lines = append(lines,
				"  "+depID+"->>MessageBroker: "+publishLabel,
				"  MessageBroker-->>"+depID+": Ack")
		}
		lines = append(lines,
			"  "+depID+"-->>"+ctrlID+": Result",
			"  deactivate "+depID)
	}

	if len(dependencies) == 0 && dbActivity {
		lines = append(lines,
			"  "+ctrlID+"->>Database: Read/Write data",
			"  Database-->>"+ctrlID+": Data/ACK")
	}
	if len(dependencies) == 0 && queueActivity {
		lines = append(lines,
			"  "+ctrlID+"->>MessageBroker: "+publishLabel,
			"  MessageBroker-->>"+ctrlID+": Ack")
	}

	for _, consumer := range consumers {
		consumerID := safeID(consumer)
		lines = append(lines,
			"  MessageBroker->>"+consumerID+": "+deliverLabel,
			"  activate "+consumerID)
		if consumerReadsDB(consumer, steps) {
			lines = append(lines,
				"  "+consumerID+"->>Database: Read/Write data",
				"  Database-->>"+consumerID+": Data/ACK")
		}
		lines = append(lines,
			"  "+consumerID+"-->>MessageBroker: Ack",
			"  deactivate "+consumerID)
	}

	if len(notes) > 0 {
		lines = append(lines, "  Note over "+ctrlID+": "+strings.Join(notes, " | "))
	}
	lines = append(lines,
		"  "+ctrlID+"-->>Client: Response",
		"  deactivate "+ctrlID,
		"```")
	return strings.Join(lines, "\n")
}

// inferDependencyAction picks the message the controller sends a
// dependency based on what kind of component its name suggests.
func inferDependencyAction(dependency string, dbActivity, queueActivity bool, messages []string) string {
	if isDBComponent(dependency) && dbActivity {
		return "Read/Write data"
	}
	if isMessagingComponent(dependency) && queueActivity {
		if len(messages) > 0 {
			return "Publish " + strings.Join(messages, ", ")
		}
		return "Publish event/message"
	}
	return "Execute business logic"
}

func isDBComponent(name string) bool {
	lowered := strings.ToLower(name)
	return strings.Contains(lowered, "repository") ||
		strings.Contains(lowered, "db") ||
		strings.Contains(lowered, "context")
}

func isMessagingComponent(name string) bool {
	lowered := strings.ToLower(name)
	for _, marker := range []string{"bus", "publisher", "producer", "queue", "messaging", "event", "mass"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// remainingNotes keeps the steps the diagram body did not already draw
// as exchanges, for a trailing note over the controller.
func remainingNotes(steps []string) []string {
	var filtered []string
	for _, step := range steps {
		if step == "" {
			continue
		}
		lowered := strings.ToLower(step)
		switch {
		case strings.HasPrefix(lowered, "publish/send "):
		case strings.HasPrefix(lowered, "consumer ") && strings.Contains(lowered, "reads queue"):
		case strings.HasPrefix(lowered, "consumer ") && strings.Contains(lowered, "reads db"):
		case strings.Contains(lowered, "db"):
		default:
			filtered = append(filtered, step)
		}
	}
	return filtered
}

func anyStepContains(steps []string, needle string) bool {
	for _, step := range steps {
		if strings.Contains(strings.ToLower(step), needle) {
			return true
		}
	}
	return false
}

func sortedMapKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
