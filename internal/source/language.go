package source

import (
	"github.com/go-enry/go-enry/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language names as reported by enry.
const (
	LanguageTypeScript = "TypeScript"
	LanguageTSX        = "TSX"
	LanguageJavaScript = "JavaScript"
)

var grammars = map[string]func() *sitter.Language{
	LanguageTypeScript: typescript.GetLanguage,
	LanguageTSX:        tsx.GetLanguage,
	LanguageJavaScript: javascript.GetLanguage,
}

// LanguageForPath returns the grammar to use for path. Extensions enry cannot
// map to a supported grammar fall back to TypeScript.
func LanguageForPath(path string) string {
	for _, lang := range enry.GetLanguagesByExtension(path, nil, nil) {
		if _, ok := grammars[lang]; ok {
			return lang
		}
	}
	return LanguageTypeScript
}
