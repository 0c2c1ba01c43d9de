// Package correlate detects cross-stack messaging signals: .NET and
// Node.js files that touch a broker, plus Angular UI files, and renders
// them as one high-level Mermaid graph.
package correlate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mvp-joe/code-atlas/internal/source"
)

var (
	jsImportRe  = regexp.MustCompile(`import\s+(?:[\w*\s{},]+)\s+from\s+['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	usingRe     = regexp.MustCompile(`using\s+([\w.]+)\s*;`)
)

// Broker-related markers per stack. Matching is substring based on the
// lowercased import or external dependency text.
var (
	csharpKeywords = []string{
		"masstransit",
		"rabbitmq",
		"rabbitmq.client",
		"masstransit.rabbitmq",
	}
	nodeKeywords = []string{
		"amqplib",
		"amqp-connection-manager",
		"rascal",
		"@golevelup/nestjs-rabbitmq",
		"@nestjs/microservices",
		"rabbitmq",
	}
)

// Signal marks one file with the broker keywords found in it.
type Signal struct {
	File    string   `json:"file"`
	Matches []string `json:"matches"`
}

// AngularFile marks one file attributed to the Angular UI stack.
type AngularFile struct {
	File string `json:"file"`
}

// Correlation groups per-stack messaging signals for one batch of files.
type Correlation struct {
	CSharpMessaging []Signal      `json:"csharp_messaging"`
	NodeMessaging   []Signal      `json:"node_messaging"`
	AngularFiles    []AngularFile `json:"angular_files"`
}

// Build scans each file's imports and external dependencies for broker
// keywords. externalDeps is keyed by normalized relative path and may
// be nil when no dependency analysis ran.
func Build(files []source.File, externalDeps map[string][]string) *Correlation {
	correlation := &Correlation{}

	for _, file := range files {
		lookupPath := source.NormalizePath(file.RelPath)
		values := append([]string(nil), externalDeps[lookupPath]...)

		switch file.Language {
		case source.LangJavaScript, source.LangTypeScript:
			values = append(values, jsImports(file.Content)...)
			if matches := keywordMatches(values, nodeKeywords); len(matches) > 0 {
				correlation.NodeMessaging = append(correlation.NodeMessaging, Signal{File: file.RelPath, Matches: matches})
			}
		case source.LangCSharp, source.LangVBNet, source.LangFSharp:
			values = append(values, usings(file.Content)...)
			if matches := keywordMatches(values, csharpKeywords); len(matches) > 0 {
				correlation.CSharpMessaging = append(correlation.CSharpMessaging, Signal{File: file.RelPath, Matches: matches})
			}
		}

		switch file.Language {
		case source.LangJavaScript, source.LangTypeScript, source.LangMarkup:
			if isAngular(values, lookupPath) {
				correlation.AngularFiles = append(correlation.AngularFiles, AngularFile{File: file.RelPath})
			}
		}
	}

	return correlation
}

// Empty reports whether no stack produced any signal.
func (c *Correlation) Empty() bool {
	return c == nil ||
		len(c.CSharpMessaging) == 0 && len(c.NodeMessaging) == 0 && len(c.AngularFiles) == 0
}

// Mermaid renders the stack-level graph. Returns "" when there is
// nothing to draw.
func (c *Correlation) Mermaid() string {
	if c.Empty() {
		return ""
	}

	lines := []string{"```mermaid", "graph LR"}
	hasCSharp := len(c.CSharpMessaging) > 0
	hasNode := len(c.NodeMessaging) > 0
	hasAngular := len(c.AngularFiles) > 0

	if hasCSharp {
		lines = append(lines, `  DOTNET[".NET Services (`+strconv.Itoa(len(c.CSharpMessaging))+`)"]`)
	}
	if hasNode {
		lines = append(lines, `  NODE["Node.js Services (`+strconv.Itoa(len(c.NodeMessaging))+`)"]`)
	}
	if hasAngular {
		lines = append(lines, `  ANGULAR["Angular UI (`+strconv.Itoa(len(c.AngularFiles))+`)"]`)
	}
	if hasCSharp || hasNode {
		lines = append(lines, `  MQ["RabbitMQ / Messaging"]`)
	}
	if hasCSharp {
		lines = append(lines, "  DOTNET --> MQ")
	}
	if hasNode {
		lines = append(lines, "  NODE --> MQ")
	}
	switch {
	case hasAngular && hasNode:
		lines = append(lines, "  ANGULAR --> NODE")
	case hasAngular:
		lines = append(lines, "  ANGULAR --> MQ")
	}

	lines = append(lines, "```")
	return strings.Join(lines, "\n")
}

func jsImports(code string) []string {
	var values []string
	for _, m := range jsImportRe.FindAllStringSubmatch(code, -1) {
		values = append(values, m[1])
	}
	for _, m := range jsRequireRe.FindAllStringSubmatch(code, -1) {
		values = append(values, m[1])
	}
	return values
}

func usings(code string) []string {
	var values []string
	for _, m := range usingRe.FindAllStringSubmatch(code, -1) {
		values = append(values, m[1])
	}
	return values
}

func keywordMatches(values, keywords []string) []string {
	matched := make(map[string]struct{})
	for _, value := range values {
		lowered := strings.ToLower(value)
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				matched[keyword] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(matched))
	for keyword := range matched {
		out = append(out, keyword)
	}
	sort.Strings(out)
	return out
}

func isAngular(values []string, lookupPath string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), "@angular/") {
			return true
		}
	}
	return strings.Contains(strings.ToLower(lookupPath), "/src/app/")
}

