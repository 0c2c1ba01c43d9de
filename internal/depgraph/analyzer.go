package depgraph

import (
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/code-atlas/internal/extract"
	"github.com/mvp-joe/code-atlas/internal/source"
)

// DefaultCouplingThreshold is the combined degree at which a file is
// reported as highly coupled.
const DefaultCouplingThreshold = 5

// fileEntry is the per-file record built during indexing.
type fileEntry struct {
	path     string // absolute
	relPath  string // normalized, the index key
	language string
	table    *extract.SymbolTable
	pkg      string
	classes  []indexedClass
	content  string
}

// indexedClass pairs a declared class or interface with its qualified name.
type indexedClass struct {
	name      string
	qualified string
}

// Analyzer builds the file dependency graph for one batch of files.
// All state is owned by the Analyzer and rebuilt from nothing at the
// start of every Analyze call, so a single long-lived instance can run
// independent batches in sequence without leakage.
type Analyzer struct {
	threshold int
	progress  ProgressReporter

	files     map[string]*fileEntry
	fileOrder []string

	// classIndex maps both simple and qualified class names to the set
	// of files declaring them. Ambiguity is preserved as a set, never
	// collapsed; consumers iterate sorted for determinism.
	classIndex map[string]map[string]struct{}

	// packageIndex maps a package or namespace to the files declaring
	// it, in indexing order, duplicates expected.
	packageIndex map[string][]string

	deps     map[string]map[string]struct{} // adjacency
	reverse  map[string]map[string]struct{} // reverse adjacency
	external map[string][]string            // unresolved imports per file
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCouplingThreshold overrides the highly-coupled degree threshold.
func WithCouplingThreshold(threshold int) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.threshold = threshold
		}
	}
}

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) Option {
	return func(a *Analyzer) {
		a.progress = progress
	}
}

// NewAnalyzer creates a dependency analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{threshold: DefaultCouplingThreshold}
	for _, opt := range opts {
		opt(a)
	}
	a.reset()
	return a
}

// reset discards all per-batch state.
func (a *Analyzer) reset() {
	a.files = make(map[string]*fileEntry)
	a.fileOrder = nil
	a.classIndex = make(map[string]map[string]struct{})
	a.packageIndex = make(map[string][]string)
	a.deps = make(map[string]map[string]struct{})
	a.reverse = make(map[string]map[string]struct{})
	a.external = make(map[string][]string)
}

// Analyze indexes the files, resolves imports to dependency edges, and
// returns the full analysis result. Files whose language has no
// extractor are skipped; extraction failures skip the file and continue
// the batch.
func (a *Analyzer) Analyze(files []source.File, extractors map[string]extract.Extractor) *Result {
	start := time.Now()
	a.reset()

	if a.progress != nil {
		a.progress.OnAnalysisStart(len(files))
	}

	a.buildIndex(files, extractors)
	a.resolveDependencies()

	result := a.buildResult()

	if a.progress != nil {
		a.progress.OnAnalysisComplete(len(result.DependencyMap.Nodes), len(result.DependencyMap.Edges), time.Since(start))
	}
	return result
}

// buildIndex runs the first pass: file, class, and package indices.
func (a *Analyzer) buildIndex(files []source.File, extractors map[string]extract.Extractor) {
	processed := 0
	for _, file := range files {
		processed++
		if a.progress != nil {
			a.progress.OnFileIndexed(processed, len(files), filepath.Base(file.RelPath))
		}

		if file.Language == source.LangUnknown {
			continue
		}
		extractor, ok := extractors[file.Language]
		if !ok {
			continue
		}

		table, err := extractor.Extract(file.Content)
		if err != nil {
			log.Printf("Warning: failed to extract symbols from %s: %v", file.RelPath, err)
			continue
		}

		relPath := source.NormalizePath(file.RelPath)
		entry := &fileEntry{
			path:     file.Path,
			relPath:  relPath,
			language: file.Language,
			table:    table,
			pkg:      table.Package,
			content:  file.Content,
		}

		if table.Package != "" {
			a.packageIndex[table.Package] = append(a.packageIndex[table.Package], relPath)
		}

		for _, name := range declaredTypeNames(table) {
			qualified := qualifiedName(name, table.Package, file.Language)
			entry.classes = append(entry.classes, indexedClass{name: name, qualified: qualified})
			a.registerClass(qualified, relPath)
			a.registerClass(name, relPath)
		}

		a.files[relPath] = entry
		a.fileOrder = append(a.fileOrder, relPath)
	}
}

// registerClass adds a (name, file) pair to the class index as set
// membership.
func (a *Analyzer) registerClass(name, relPath string) {
	if name == "" {
		return
	}
	set, ok := a.classIndex[name]
	if !ok {
		set = make(map[string]struct{})
		a.classIndex[name] = set
	}
	set[relPath] = struct{}{}
}

// declaredTypeNames lists class and interface names in declaration order.
func declaredTypeNames(table *extract.SymbolTable) []string {
	names := make([]string, 0, len(table.Classes)+len(table.Interfaces))
	for _, c := range table.Classes {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	for _, i := range table.Interfaces {
		if i.Name != "" {
			names = append(names, i.Name)
		}
	}
	return names
}

// qualifiedName joins a package or namespace to a class name using the
// language's own convention: dotted for package/namespace families,
// root-prefixed backslash form for PHP.
func qualifiedName(className, pkg, lang string) string {
	if pkg == "" {
		return className
	}
	if lang == source.LangPHP {
		return `\` + pkg + `\` + className
	}
	return pkg + "." + className
}

// ownClassNames returns the simple names declared by entry.
func (e *fileEntry) ownClassNames() map[string]bool {
	own := make(map[string]bool, len(e.classes))
	for _, c := range e.classes {
		own[c.name] = true
	}
	return own
}

// sortedKeys returns the sorted keys of a string-keyed set.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewRunID returns a fresh identifier for stamping export metadata.
func NewRunID() string {
	return uuid.NewString()
}
