package catalog

import (
	"regexp"
	"sort"
	"strings"
)

// attrPattern matches one bracketed attribute, tolerating quoted strings
// containing brackets.
const attrPattern = `\[(?:[^\]"']+|"[^"]*"|'[^']*')+\]`

var (
	classWithAttrsRe  = regexp.MustCompile(`(?m)((?:` + attrPattern + `\s*)*)(?:public|private|internal|protected|abstract|sealed|static|partial)?\s*class\s+(\w+)(?:\s*:\s*[\w,\s<>]+)?\s*\{`)
	methodWithAttrsRe = regexp.MustCompile(`(?m)((?:` + attrPattern + `\s*)*)((?:public|private|internal|protected)[^{;]*\{)`)
	methodNameRe      = regexp.MustCompile(`(\w+)\s*\(`)
	httpVerbRe        = regexp.MustCompile(`(?i)\[(HttpGet|HttpPost|HttpPut|HttpDelete|HttpPatch|HttpHead|HttpOptions)\b`)
	routeAttrRe       = regexp.MustCompile(`(?i)\[Route\(\s*"([^"]+)"\s*\)\]`)
	httpRouteAttrRe   = regexp.MustCompile(`(?i)\[Http(?:Get|Post|Put|Delete|Patch|Head|Options)\(\s*"([^"]*)"\s*\)\]`)
	controllerTokenRe = regexp.MustCompile(`(?i)\[controller\]`)
	unsafeIDRe        = regexp.MustCompile(`\W`)
)

// parsedFile is what endpoint extraction yields for one controller-style
// source file.
type parsedFile struct {
	classes        []string
	controllers    []Controller
	endpoints      []Endpoint
	endpointBodies map[string]string // "Controller.Method" -> method body
}

// parseControllerFile extracts classes, controllers, and attributed
// endpoints from one file's raw text.
func parseControllerFile(code string) parsedFile {
	parsed := parsedFile{endpointBodies: make(map[string]string)}

	for _, m := range classWithAttrsRe.FindAllStringSubmatchIndex(code, -1) {
		attrs := code[m[2]:m[3]]
		className := code[m[4]:m[5]]
		parsed.classes = append(parsed.classes, className)

		body := balancedBraces(code, m[1]-1)
		if body == "" {
			continue
		}

		classRoute := resolveControllerToken(extractRoute(attrs), className)
		isController := strings.HasSuffix(className, "Controller") || strings.Contains(attrs, "ApiController")
		if isController {
			parsed.controllers = append(parsed.controllers, Controller{Name: className, Route: classRoute})
		}

		for _, method := range extractMethodsWithAttributes(body) {
			verbs := extractHTTPVerbs(method.attrs)
			if len(verbs) == 0 {
				continue
			}
			route := joinRoutes(classRoute, extractRoute(method.attrs))
			key := className + "." + method.name
			parsed.endpointBodies[key] = method.body
			parsed.endpoints = append(parsed.endpoints, Endpoint{
				Controller: className,
				Method:     method.name,
				HTTPVerbs:  verbs,
				Route:      route,
			})
		}
	}

	return parsed
}

type attributedMethod struct {
	name  string
	attrs string
	body  string
}

// extractMethodsWithAttributes finds method declarations preceded by
// attribute blocks inside a class body.
func extractMethodsWithAttributes(classBody string) []attributedMethod {
	var methods []attributedMethod
	for _, m := range methodWithAttrsRe.FindAllStringSubmatchIndex(classBody, -1) {
		attrs := classBody[m[2]:m[3]]
		signature := classBody[m[4]:m[5]]
		nameMatch := methodNameRe.FindStringSubmatch(signature)
		if nameMatch == nil {
			continue
		}
		methods = append(methods, attributedMethod{
			name:  nameMatch[1],
			attrs: attrs,
			body:  balancedBraces(classBody, m[1]-1),
		})
	}
	return methods
}

// extractHTTPVerbs returns the uppercased, sorted verb set declared by
// the attribute block.
func extractHTTPVerbs(attrs string) []string {
	seen := make(map[string]bool)
	var verbs []string
	for _, m := range httpVerbRe.FindAllStringSubmatch(attrs, -1) {
		name := m[1]
		if len(name) >= 4 && strings.EqualFold(name[:4], "http") {
			name = name[4:]
		}
		verb := strings.ToUpper(name)
		if verb == "" || seen[verb] {
			continue
		}
		seen[verb] = true
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}

// extractRoute pulls the route template from a [Route("...")] or verb
// attribute, preferring the explicit Route attribute.
func extractRoute(attrs string) string {
	if m := routeAttrRe.FindStringSubmatch(attrs); m != nil {
		return m[1]
	}
	if m := httpRouteAttrRe.FindStringSubmatch(attrs); m != nil {
		return m[1]
	}
	return ""
}

// joinRoutes concatenates base and method route templates.
func joinRoutes(base, sub string) string {
	if base == "" {
		return sub
	}
	if sub == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(sub, "/")
}

// resolveControllerToken substitutes the [controller] placeholder with
// the lowercased controller name, conventional suffix stripped.
func resolveControllerToken(route, className string) string {
	if route == "" || !controllerTokenRe.MatchString(route) {
		return route
	}
	name := className
	if strings.HasSuffix(strings.ToLower(name), "controller") {
		name = name[:len(name)-len("Controller")]
	}
	token := strings.ToLower(name)
	if token == "" {
		token = strings.ToLower(className)
	}
	return controllerTokenRe.ReplaceAllString(route, token)
}

func safeID(value string) string {
	id := unsafeIDRe.ReplaceAllString(value, "_")
	if len(id) > 50 {
		id = id[:50]
	}
	if id == "" {
		return "node"
	}
	return id
}

// balancedBraces returns the brace-delimited block starting at startPos.
// Depth counting is not literal/comment aware.
func balancedBraces(code string, startPos int) string {
	if startPos < 0 || startPos >= len(code) || code[startPos] != '{' {
		return ""
	}
	depth := 0
	for i := startPos; i < len(code); i++ {
		switch code[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return code[startPos : i+1]
			}
		}
	}
	return ""
}
