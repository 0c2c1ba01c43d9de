package extract

import "regexp"

var (
	csharpNamespaceRe = regexp.MustCompile(`namespace\s+([\w.]+)`)
	csharpUsingRe     = regexp.MustCompile(`using\s+(?:static\s+)?([\w.*=]+);`)
	csharpClassRe     = regexp.MustCompile(`(?m)(?:public|private|internal|protected|abstract|sealed|static|partial)?\s*class\s+(\w+)(?:\s*:\s*[\w,\s<>]+)?\s*\{`)
	csharpInterfaceRe = regexp.MustCompile(`(?m)(?:public|private|internal|protected)?\s*interface\s+(\w+)(?:\s*:\s*[\w,\s<>]+)?\s*\{`)
	csharpMethodRe    = regexp.MustCompile(`(?m)(?:public|private|internal|protected|static|virtual|override|abstract|async)?\s*(?:[\w<>,\s\[\]]+\s+)?(\w+)\s*\([^)]*\)\s*\{`)
)

var csharpControlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "try": true,
	"catch": true, "using": true, "foreach": true, "lock": true,
}

// csharpExtractor extracts symbols from C# source.
type csharpExtractor struct{}

// NewCSharpExtractor creates a C# symbol extractor.
func NewCSharpExtractor() Extractor {
	return &csharpExtractor{}
}

func (e *csharpExtractor) Extract(code string) (*SymbolTable, error) {
	table := &SymbolTable{
		Package: firstGroup(csharpNamespaceRe, code),
		Imports: allGroups(csharpUsingRe, code),
	}

	for _, m := range csharpClassRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		body := balancedBraces(code, m[1]-1)
		table.Classes = append(table.Classes, Class{
			Name:    name,
			Methods: extractBodyMethods(csharpMethodRe, body, csharpControlKeywords, name),
		})
	}

	for _, m := range csharpInterfaceRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		body := balancedBraces(code, m[1]-1)
		table.Interfaces = append(table.Interfaces, Interface{
			Name:    name,
			Methods: extractBodyMethods(csharpMethodRe, body, csharpControlKeywords, name),
		})
	}

	return table, nil
}
