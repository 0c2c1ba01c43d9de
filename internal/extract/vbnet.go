package extract

import "regexp"

// VB.NET is not brace delimited; blocks end with End Class / End Sub /
// End Function, so extraction is line-pattern based throughout.
var (
	vbNamespaceRe = regexp.MustCompile(`(?i)Namespace\s+([\w.]+)`)
	vbImportsRe   = regexp.MustCompile(`(?i)Imports\s+([\w.*=]+)`)
	vbClassRe     = regexp.MustCompile(`(?i)(?:Public|Private|Friend|Protected)?\s*(?:MustInherit|NotInheritable)?\s*Class\s+(\w+)`)
	vbInterfaceRe = regexp.MustCompile(`(?i)(?:Public|Private|Friend|Protected)?\s*Interface\s+(\w+)`)
	vbMethodRe    = regexp.MustCompile(`(?i)(?:Public|Private|Friend|Protected|Shared|Overrides|Overridable)?\s*(?:Sub|Function)\s+(\w+)\s*\(`)
)

// vbnetExtractor extracts symbols from VB.NET source.
type vbnetExtractor struct{}

// NewVBNetExtractor creates a VB.NET symbol extractor.
func NewVBNetExtractor() Extractor {
	return &vbnetExtractor{}
}

func (e *vbnetExtractor) Extract(code string) (*SymbolTable, error) {
	table := &SymbolTable{
		Package: firstGroup(vbNamespaceRe, code),
		Imports: allGroups(vbImportsRe, code),
	}

	methods := extractBodyMethods(vbMethodRe, code, map[string]bool{"New": true}, "")

	for _, name := range allGroups(vbClassRe, code) {
		// Method-to-class attribution is not tracked for VB.NET; all
		// declared methods are attached to the first class.
		cls := Class{Name: name}
		if len(table.Classes) == 0 {
			cls.Methods = methods
		}
		table.Classes = append(table.Classes, cls)
	}

	for _, name := range allGroups(vbInterfaceRe, code) {
		table.Interfaces = append(table.Interfaces, Interface{Name: name})
	}

	return table, nil
}
