package extract

import "regexp"

var (
	fsharpNamespaceRe = regexp.MustCompile(`(?i)namespace\s+([\w.]+)`)
	fsharpOpenRe      = regexp.MustCompile(`(?i)open\s+([\w.*=]+)`)
	fsharpTypeRe      = regexp.MustCompile(`(?m)type\s+(\w+)\s*(?:\(.*?\))?\s*=`)
	fsharpMemberRe    = regexp.MustCompile(`(?m)member\s+(?:this|self|_)\.(\w+)`)
)

// fsharpExtractor extracts symbols from F# source.
type fsharpExtractor struct{}

// NewFSharpExtractor creates an F# symbol extractor.
func NewFSharpExtractor() Extractor {
	return &fsharpExtractor{}
}

func (e *fsharpExtractor) Extract(code string) (*SymbolTable, error) {
	table := &SymbolTable{
		Package: firstGroup(fsharpNamespaceRe, code),
		Imports: allGroups(fsharpOpenRe, code),
	}

	members := extractBodyMethods(fsharpMemberRe, code, nil, "")

	for _, name := range allGroups(fsharpTypeRe, code) {
		cls := Class{Name: name}
		if len(table.Classes) == 0 {
			cls.Methods = members
		}
		table.Classes = append(table.Classes, cls)
	}

	return table, nil
}
