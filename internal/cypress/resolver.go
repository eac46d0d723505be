package cypress

import (
	"context"

	"github.com/getlawrence/cyconfig/internal/source"
	sitter "github.com/smacker/go-tree-sitter"
)

// ConfigObject is a detached view of the object literal a config file exports.
type ConfigObject struct {
	Start      uint32     `json:"start"`
	End        uint32     `json:"end"`
	Text       string     `json:"text"`
	Properties []Property `json:"properties"`
}

// Property is one member of a ConfigObject. Key is empty for spreads and
// computed keys.
type Property struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Keys returns the static property keys in source order.
func (o *ConfigObject) Keys() []string {
	keys := make([]string, 0, len(o.Properties))
	for _, p := range o.Properties {
		keys = append(keys, p.Key)
	}
	return keys
}

// ResolveConfigObject finds the object literal exported by a config file. It
// returns nil without an error when the export shape is not recognized.
func (ci *ConfigInjector) ResolveConfigObject(ctx context.Context, content string) (*ConfigObject, error) {
	if content == "" {
		return nil, nil
	}

	doc, err := ci.parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	obj := resolveConfigObject(doc)
	if obj == nil {
		return nil, nil
	}

	out := &ConfigObject{
		Start: obj.StartByte(),
		End:   obj.EndByte(),
		Text:  doc.Text(obj),
	}
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		member := obj.NamedChild(i)
		if member.Type() == "comment" {
			continue
		}
		out.Properties = append(out.Properties, Property{
			Key:  propertyKey(doc, member),
			Text: doc.Text(member),
		})
	}
	return out, nil
}

// resolveConfigObject checks the first export default (or export =) and then
// the first module.exports assignment among the top-level statements.
func resolveConfigObject(doc *source.Document) *sitter.Node {
	statements := topLevelStatements(doc)

	for _, stmt := range statements {
		if stmt.Type() != "export_statement" {
			continue
		}
		if value := exportedValue(stmt); value != nil {
			return resolveExportExpression(doc, value)
		}
	}

	for _, stmt := range statements {
		if stmt.Type() != "expression_statement" {
			continue
		}
		assignment := stmt.NamedChild(0)
		if assignment == nil || assignment.Type() != "assignment_expression" {
			continue
		}
		if doc.Text(assignment.ChildByFieldName("left")) == "module.exports" {
			return resolveExportExpression(doc, assignment.ChildByFieldName("right"))
		}
	}

	return nil
}

// resolveExportExpression follows at most one level of indirection.
func resolveExportExpression(doc *source.Document, expr *sitter.Node) *sitter.Node {
	if expr == nil {
		return nil
	}

	switch expr.Type() {
	case "object":
		return expr
	case "identifier":
		return findObjectDeclaration(doc, doc.Text(expr))
	case "call_expression":
		callee := expr.ChildByFieldName("function")
		if callee == nil || callee.Type() != "identifier" || doc.Text(callee) != "defineConfig" {
			return nil
		}
		if arg := firstArgument(expr); arg != nil && arg.Type() == "object" {
			return arg
		}
	}
	return nil
}

// findObjectDeclaration looks for a top-level variable named name that is
// initialized with an object literal.
func findObjectDeclaration(doc *source.Document, name string) *sitter.Node {
	for _, stmt := range topLevelStatements(doc) {
		decl := stmt
		if stmt.Type() == "export_statement" {
			decl = stmt.ChildByFieldName("declaration")
			if decl == nil {
				continue
			}
		}
		if decl.Type() != "lexical_declaration" && decl.Type() != "variable_declaration" {
			continue
		}

		for i := 0; i < int(decl.NamedChildCount()); i++ {
			declarator := decl.NamedChild(i)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			id := declarator.ChildByFieldName("name")
			if id == nil || id.Type() != "identifier" || doc.Text(id) != name {
				continue
			}
			if value := declarator.ChildByFieldName("value"); value != nil && value.Type() == "object" {
				return value
			}
		}
	}
	return nil
}

func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if arg := args.NamedChild(i); arg.Type() != "comment" {
			return arg
		}
	}
	return nil
}

func topLevelStatements(doc *source.Document) []*sitter.Node {
	root := doc.Root()
	statements := make([]*sitter.Node, 0, root.NamedChildCount())
	for i := 0; i < int(root.NamedChildCount()); i++ {
		statements = append(statements, root.NamedChild(i))
	}
	return statements
}
