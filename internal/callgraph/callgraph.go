// Package callgraph extracts intra-class method call graphs from
// brace-delimited source text. Calls into other classes or external
// APIs are deliberately out of scope; the result answers "which of this
// class's own methods call each other".
package callgraph

import (
	"regexp"
	"sort"
	"strings"
)

// CallEdge is one caller-to-callee edge between methods of a class.
type CallEdge struct {
	Caller string `json:"caller"`
	Callee string `json:"callee"`
}

// ClassCallGraph is the call graph of a single class. Classes with no
// intra-class calls are omitted from results entirely.
type ClassCallGraph struct {
	Class   string     `json:"class"`
	Edges   []CallEdge `json:"edges"`
	Mermaid string     `json:"mermaid"`
}

var (
	classRe  = regexp.MustCompile(`(?m)(?:public|private|internal|protected|abstract|sealed|static|partial)?\s*class\s+(\w+)(?:\s*:\s*[\w,\s<>]+)?\s*\{`)
	methodRe = regexp.MustCompile(`(?m)(?:public|private|internal|protected|static|virtual|override|abstract|async)?\s*(?:[\w<>,\s\[\]]+\s+)?(\w+)\s*\([^)]*\)\s*\{`)
	callRe   = regexp.MustCompile(`\b(\w+)\s*\(`)
	unsafeRe = regexp.MustCompile(`\W`)
)

// languageKeywords are identifier( shapes that are control flow, not calls.
var languageKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"using": true, "return": true, "new": true, "throw": true, "lock": true,
	"foreach": true, "await": true,
}

// Build extracts per-class call graphs from one file's source text.
func Build(code string) []ClassCallGraph {
	var graphs []ClassCallGraph

	for _, m := range classRe.FindAllStringSubmatchIndex(code, -1) {
		className := code[m[2]:m[3]]
		body := balancedBraces(code, m[1]-1)
		if body == "" {
			continue
		}

		methods := extractMethods(body, className)
		if len(methods) == 0 {
			continue
		}

		names := make(map[string]bool, len(methods))
		for _, method := range methods {
			names[method.name] = true
		}

		var edges []CallEdge
		for _, method := range methods {
			for _, callee := range calledMethods(method.body, names) {
				edges = append(edges, CallEdge{Caller: method.name, Callee: callee})
			}
		}
		if len(edges) == 0 {
			continue
		}

		graphs = append(graphs, ClassCallGraph{
			Class:   className,
			Edges:   edges,
			Mermaid: renderMermaid(className, edges),
		})
	}

	return graphs
}

type methodBody struct {
	name string
	body string
}

// extractMethods finds candidate method declarations with their bodies.
// Language keywords and the class's own name (constructors) are excluded.
func extractMethods(classBody, className string) []methodBody {
	var methods []methodBody
	for _, m := range methodRe.FindAllStringSubmatchIndex(classBody, -1) {
		name := classBody[m[2]:m[3]]
		if languageKeywords[name] || name == className {
			continue
		}
		body := balancedBraces(classBody, m[1]-1)
		if body == "" {
			continue
		}
		methods = append(methods, methodBody{name: name, body: body})
	}
	return methods
}

// calledMethods returns the sorted set of same-class methods invoked in
// a body, recognized by identifier( shapes.
func calledMethods(body string, methodNames map[string]bool) []string {
	called := make(map[string]bool)
	for _, m := range callRe.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if methodNames[name] && !languageKeywords[name] {
			called[name] = true
		}
	}

	out := make([]string, 0, len(called))
	for name := range called {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// renderMermaid emits a graph TD block of Class.method nodes.
func renderMermaid(className string, edges []CallEdge) string {
	lines := []string{"```mermaid", "graph TD"}
	for _, edge := range edges {
		src := safeID(className + "." + edge.Caller)
		dst := safeID(className + "." + edge.Callee)
		lines = append(lines, `  `+src+`["`+className+`.`+edge.Caller+`"] --> `+dst+`["`+className+`.`+edge.Callee+`"]`)
	}
	lines = append(lines, "```")
	return strings.Join(lines, "\n")
}

func safeID(value string) string {
	id := unsafeRe.ReplaceAllString(value, "_")
	if len(id) > 50 {
		id = id[:50]
	}
	if id == "" {
		return "node"
	}
	return id
}

// balancedBraces returns the brace-delimited block starting at startPos.
// The depth counter is not literal/comment aware; braces inside string
// literals skew it. Documented limitation of the heuristic scan.
func balancedBraces(code string, startPos int) string {
	if startPos < 0 || startPos >= len(code) || code[startPos] != '{' {
		return ""
	}
	depth := 0
	for i := startPos; i < len(code); i++ {
		switch code[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return code[startPos : i+1]
			}
		}
	}
	return ""
}
