package extract

import "regexp"

var (
	javaPackageRe   = regexp.MustCompile(`package\s+([\w.]+);`)
	javaImportRe    = regexp.MustCompile(`import\s+(?:static\s+)?([\w.*]+);`)
	javaClassRe     = regexp.MustCompile(`(?m)(?:public|private|protected|abstract|final|static)?\s*class\s+(\w+)(?:\s+extends\s+\w+)?(?:\s+implements\s+[\w,\s]+)?\s*\{`)
	javaInterfaceRe = regexp.MustCompile(`(?m)(?:public|private|protected)?\s*interface\s+(\w+)(?:\s+extends\s+[\w,\s]+)?\s*\{`)
	javaMethodRe    = regexp.MustCompile(`(?m)(?:public|private|protected|static|final|abstract|synchronized)?\s*(?:[\w<>,\s\[\]]+\s+)?(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\s*\{`)
)

var javaControlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "try": true, "catch": true,
}

// javaExtractor extracts symbols from Java source.
type javaExtractor struct{}

// NewJavaExtractor creates a Java symbol extractor.
func NewJavaExtractor() Extractor {
	return &javaExtractor{}
}

func (e *javaExtractor) Extract(code string) (*SymbolTable, error) {
	table := &SymbolTable{
		Package: firstGroup(javaPackageRe, code),
		Imports: allGroups(javaImportRe, code),
	}

	for _, m := range javaClassRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		body := balancedBraces(code, m[1]-1)
		table.Classes = append(table.Classes, Class{
			Name:    name,
			Methods: extractBodyMethods(javaMethodRe, body, javaControlKeywords, name),
		})
	}

	for _, m := range javaInterfaceRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		body := balancedBraces(code, m[1]-1)
		table.Interfaces = append(table.Interfaces, Interface{
			Name:    name,
			Methods: extractBodyMethods(javaMethodRe, body, javaControlKeywords, name),
		})
	}

	return table, nil
}
