package source

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language tags form a closed set. Files outside it are tagged
// LangUnknown and skipped by the analyzers.
const (
	LangJava       = "java"
	LangCSharp     = "csharp"
	LangVBNet      = "vbnet"
	LangFSharp     = "fsharp"
	LangPHP        = "php"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangMarkup     = "markup"
	LangUnknown    = "unknown"
)

// extensionLanguages maps file extensions to language tags.
var extensionLanguages = map[string]string{
	".java":   LangJava,
	".cs":     LangCSharp,
	".vb":     LangVBNet,
	".fs":     LangFSharp,
	".fsx":    LangFSharp,
	".php":    LangPHP,
	".js":     LangJavaScript,
	".jsx":    LangJavaScript,
	".ts":     LangTypeScript,
	".tsx":    LangTypeScript,
	".html":   LangMarkup,
	".cshtml": LangMarkup,
	".razor":  LangMarkup,
}

// DetectLanguage returns the language tag for a file path based on its
// extension, or LangUnknown if the extension is not recognized.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LangUnknown
}

// Extensions returns every recognized file extension, sorted, with the
// leading dot.
func Extensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DottedPackageLanguage reports whether the language joins a package or
// namespace to a class name with a dot.
func DottedPackageLanguage(lang string) bool {
	switch lang {
	case LangJava, LangCSharp, LangVBNet, LangFSharp:
		return true
	}
	return false
}
