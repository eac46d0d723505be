package cypress

import (
	"context"
	"fmt"
	"strings"

	"github.com/getlawrence/cyconfig/internal/source"
)

// ImportSpec names bindings to bring in from a module.
type ImportSpec struct {
	Names  []string
	Module string
}

const importSourceQuery = `(import_statement source: (string) @source) @import`

// AddImport prepends an import (or require, for CommonJS files) of the names
// in spec that the file does not already bring in from spec.Module.
func (ci *ConfigInjector) AddImport(ctx context.Context, content string, spec ImportSpec) (Result, error) {
	if content == "" {
		return Result{}, ErrEmptyConfig
	}

	doc, err := ci.parse(ctx, content)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	line, err := importLine(doc, spec, isCommonJS(doc))
	if err != nil {
		return Result{}, err
	}
	if line == "" {
		return unchanged(content, StatusAlreadyConfigured), nil
	}
	return Result{Content: insertImport(doc, content, line), Status: StatusInjected}, nil
}

// insertImport puts line on its own line after the file's leading hashbang,
// triple-slash directives and comments. Those must stay first for
// TypeScript to honour /// <reference> directives. content may differ from
// the parsed source only after that header.
func insertImport(doc *source.Document, content, line string) string {
	offset := importOffset(doc)
	text := line + "\n"
	if offset > 0 && content[offset-1] != '\n' {
		text = "\n" + text
	}
	return content[:offset] + text + content[offset:]
}

// importOffset returns the byte offset just past the leading comment block.
func importOffset(doc *source.Document) int {
	root := doc.Root()
	content := doc.Content()

	offset := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() != "comment" && n.Type() != "hash_bang_line" {
			break
		}
		end, ok := restOfLineBlank(content, int(n.EndByte()))
		if !ok {
			break
		}
		offset = end
	}
	return offset
}

// restOfLineBlank reports whether only whitespace follows pos on its line and
// returns the offset of the next line.
func restOfLineBlank(content []byte, pos int) (int, bool) {
	for i := pos; i < len(content); i++ {
		switch content[i] {
		case '\n':
			return i + 1, true
		case ' ', '\t', '\r':
		default:
			return pos, false
		}
	}
	return len(content), true
}

// importLine renders the statement bringing in the missing names, or "" when
// nothing is missing.
func importLine(doc *source.Document, spec ImportSpec, commonJS bool) (string, error) {
	existing, err := importedNames(doc, spec.Module)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range spec.Names {
		if !existing[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return "", nil
	}

	names := strings.Join(missing, ", ")
	module := stringExpr(spec.Module).render("")
	if commonJS {
		return fmt.Sprintf("const { %s } = require(%s);", names, module), nil
	}
	return fmt.Sprintf("import { %s } from %s;", names, module), nil
}

// importedNames collects the names bound from module by import statements and
// destructuring require calls.
func importedNames(doc *source.Document, module string) (map[string]bool, error) {
	names := make(map[string]bool)

	imports, err := doc.Captures(importSourceQuery, "import")
	if err != nil {
		return nil, fmt.Errorf("failed to analyze imports: %w", err)
	}
	for _, imp := range imports {
		src := imp.ChildByFieldName("source")
		if src == nil || source.Unquote(doc.Text(src)) != module {
			continue
		}
		for _, spec := range doc.QueryFrom(imp, source.Kind("import_specifier")) {
			names[doc.Text(spec.ChildByFieldName("name"))] = true
		}
	}

	requireCall := source.All(
		source.Kind("call_expression"),
		source.Field("function", source.All(source.Kind("identifier"), source.Text("require"))),
		source.Field("arguments", source.Has(source.StringValue(module))),
	)
	declarators := doc.Query(source.All(
		source.Kind("variable_declarator"),
		source.Field("value", requireCall),
		source.Field("name", source.Kind("object_pattern")),
	))
	for _, decl := range declarators {
		pattern := decl.ChildByFieldName("name")
		for i := 0; i < int(pattern.NamedChildCount()); i++ {
			member := pattern.NamedChild(i)
			switch member.Type() {
			case "shorthand_property_identifier_pattern":
				names[doc.Text(member)] = true
			case "pair_pattern":
				names[doc.Text(member.ChildByFieldName("key"))] = true
			}
		}
	}

	return names, nil
}
