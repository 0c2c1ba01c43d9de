package extract

import "regexp"

// firstGroup returns the first capture group of the first match, or "".
func firstGroup(re *regexp.Regexp, code string) string {
	if m := re.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return ""
}

// allGroups returns the first capture group of every match.
func allGroups(re *regexp.Regexp, code string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(code, -1) {
		out = append(out, m[1])
	}
	return out
}

// extractBodyMethods finds method declarations inside a type body.
// Control-flow keywords and the enclosing type's own name (constructors)
// are excluded.
func extractBodyMethods(re *regexp.Regexp, body string, keywords map[string]bool, typeName string) []Method {
	var methods []Method
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if keywords[name] || name == typeName || seen[name] {
			continue
		}
		seen[name] = true
		methods = append(methods, Method{Name: name})
	}
	return methods
}
