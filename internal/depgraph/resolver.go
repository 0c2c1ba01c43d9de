package depgraph

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/code-atlas/internal/source"
)

// resolveDependencies runs the second pass: every indexed file's raw
// imports are resolved against the global index. This must run strictly
// after indexing completes, since any file can resolve to any other.
func (a *Analyzer) resolveDependencies() {
	for _, relPath := range a.fileOrder {
		entry := a.files[relPath]
		for _, raw := range entry.table.Imports {
			targets := a.resolveImport(raw, entry)

			if len(targets) == 0 {
				// Unresolvable imports are assumed third-party or
				// standard library; the raw string is kept verbatim.
				a.external[relPath] = appendUnique(a.external[relPath], raw)
				continue
			}

			for target := range targets {
				if target == relPath {
					continue // never record self-loops
				}
				a.addDependency(relPath, target)
			}
		}
	}
}

// resolveImport maps one raw import string to the set of indexed files
// it refers to. Rules apply in strict order; the first rule producing a
// match wins. An empty result means the import is external.
func (a *Analyzer) resolveImport(raw string, importer *fileEntry) map[string]struct{} {
	imp := strings.TrimSpace(raw)
	imp = strings.TrimSuffix(imp, ".*")
	if imp == "" {
		return nil
	}

	// Rule 1: exact hit in the class index (qualified or simple key).
	if set, ok := a.classIndex[imp]; ok {
		return set
	}

	// Rule 2: qualified import, retry on the last segment alone.
	if idx := strings.LastIndexAny(imp, `.\`); idx >= 0 {
		simple := imp[idx+1:]
		if set, ok := a.classIndex[simple]; ok {
			return set
		}
	}

	// Rule 3: the import names a whole package or namespace.
	if members, ok := a.packageIndex[imp]; ok && len(members) > 0 {
		if importer.language == source.LangJava {
			// Package import means "depends on everything in that
			// package": fan out to every member file.
			targets := make(map[string]struct{}, len(members))
			for _, member := range members {
				targets[member] = struct{}{}
			}
			return targets
		}
		// Namespace imports are scoped per symbol, not per file. Accept
		// only member files whose class names actually occur as bare
		// tokens in the importing file, so unrelated classes sharing a
		// namespace do not become edges.
		return a.scanNamespaceUsage(members, importer)
	}

	// Rule 4: conservative suffix match on qualified names. Broad
	// substring matching is rejected as too noisy.
	targets := make(map[string]struct{})
	for _, name := range sortedKeys(a.classIndex) {
		if name == imp || strings.HasSuffix(name, "."+imp) {
			for file := range a.classIndex[name] {
				targets[file] = struct{}{}
			}
		}
	}
	if len(targets) > 0 {
		return targets
	}

	return nil
}

// scanNamespaceUsage accepts namespace members whose declared class
// names appear as bare tokens in the importer's raw text. The
// importer's own class names are excluded so a file never matches
// against itself.
func (a *Analyzer) scanNamespaceUsage(members []string, importer *fileEntry) map[string]struct{} {
	own := importer.ownClassNames()
	targets := make(map[string]struct{})

	for _, member := range members {
		if member == importer.relPath {
			continue
		}
		entry, ok := a.files[member]
		if !ok {
			continue
		}
		for _, cls := range entry.classes {
			if own[cls.name] {
				continue
			}
			if tokenPresent(importer.content, cls.name) {
				targets[member] = struct{}{}
				break
			}
		}
	}
	return targets
}

// tokenPresent reports whether name occurs as a standalone identifier.
func tokenPresent(content, name string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(content)
}

// addDependency records a deduplicated edge plus its reverse.
func (a *Analyzer) addDependency(from, to string) {
	set, ok := a.deps[from]
	if !ok {
		set = make(map[string]struct{})
		a.deps[from] = set
	}
	set[to] = struct{}{}

	rev, ok := a.reverse[to]
	if !ok {
		rev = make(map[string]struct{})
		a.reverse[to] = rev
	}
	rev[from] = struct{}{}
}

// Dependencies returns the resolved outgoing edges of one file. The
// returned slice is sorted and safe for the caller to keep.
func (a *Analyzer) Dependencies(relPath string) []string {
	return sortedKeys(a.deps[relPath])
}

// ExternalDependencies returns the unresolved import strings of one file.
func (a *Analyzer) ExternalDependencies(relPath string) []string {
	return append([]string(nil), a.external[relPath]...)
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
