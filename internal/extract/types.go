package extract

// SymbolTable is the heuristically extracted structure of one source
// file. It is produced by an Extractor and consumed read-only by the
// analyzers; none of the analysis stages mutate it.
type SymbolTable struct {
	// Package holds the declared package or namespace, empty if none.
	Package string

	// Classes and Interfaces carry the declared types in source order.
	Classes    []Class
	Interfaces []Interface

	// Imports holds the raw import strings exactly as written
	// (wildcards and whitespace included).
	Imports []string
}

// Class represents one class declaration.
type Class struct {
	Name    string
	Methods []Method
}

// Interface represents one interface declaration.
type Interface struct {
	Name    string
	Methods []Method
}

// Method represents one method declaration inside a class or interface.
type Method struct {
	Name string
}

// Extractor turns raw source text into a SymbolTable. Implementations
// are regex-based stand-ins for a real grammar; keeping the interface to
// a single operation lets a true parser replace one without touching the
// graph, call-graph, or catalog logic.
type Extractor interface {
	Extract(code string) (*SymbolTable, error)
}

// DefaultExtractors returns the built-in extractor for every supported
// language tag.
func DefaultExtractors() map[string]Extractor {
	return map[string]Extractor{
		"java":   NewJavaExtractor(),
		"csharp": NewCSharpExtractor(),
		"vbnet":  NewVBNetExtractor(),
		"fsharp": NewFSharpExtractor(),
		"php":    NewPHPExtractor(),
	}
}
