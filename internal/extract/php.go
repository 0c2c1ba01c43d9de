package extract

import "regexp"

var (
	phpNamespaceRe = regexp.MustCompile(`namespace\s+([\w\\]+);`)
	phpUseRe       = regexp.MustCompile(`use\s+([\w\\]+)(?:\s+as\s+\w+)?;`)
	phpClassRe     = regexp.MustCompile(`(?m)(?:abstract\s+|final\s+)?class\s+(\w+)(?:\s+extends\s+[\w\\]+)?(?:\s+implements\s+[\w\\,\s]+)?\s*\{`)
	phpInterfaceRe = regexp.MustCompile(`(?m)interface\s+(\w+)(?:\s+extends\s+[\w\\,\s]+)?\s*\{`)
	phpMethodRe    = regexp.MustCompile(`(?m)(?:public|private|protected|static|abstract|final)?\s*function\s+(\w+)\s*\(`)
)

// phpExtractor extracts symbols from PHP source.
type phpExtractor struct{}

// NewPHPExtractor creates a PHP symbol extractor.
func NewPHPExtractor() Extractor {
	return &phpExtractor{}
}

func (e *phpExtractor) Extract(code string) (*SymbolTable, error) {
	table := &SymbolTable{
		Package: firstGroup(phpNamespaceRe, code),
		Imports: allGroups(phpUseRe, code),
	}

	for _, m := range phpClassRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		body := balancedBraces(code, m[1]-1)
		table.Classes = append(table.Classes, Class{
			Name:    name,
			Methods: extractBodyMethods(phpMethodRe, body, map[string]bool{"__construct": true}, name),
		})
	}

	for _, name := range allGroups(phpInterfaceRe, code) {
		table.Interfaces = append(table.Interfaces, Interface{Name: name})
	}

	return table, nil
}
