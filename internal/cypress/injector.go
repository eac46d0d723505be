package cypress

import (
	"context"
	"fmt"

	"github.com/getlawrence/cyconfig/internal/source"
	sitter "github.com/smacker/go-tree-sitter"
)

// ConfigInjector splices testing presets and commands into Cypress source files.
// It holds no per-call state and is safe for concurrent use.
type ConfigInjector struct {
	engine          source.Engine
	e2ePreset       Preset
	componentPreset Preset
}

// Option customizes a ConfigInjector.
type Option func(*ConfigInjector)

// WithE2EPreset overrides the e2e preset function and module.
func WithE2EPreset(p Preset) Option {
	return func(ci *ConfigInjector) {
		if p.Name != "" {
			ci.e2ePreset.Name = p.Name
		}
		if p.Module != "" {
			ci.e2ePreset.Module = p.Module
		}
	}
}

// WithComponentPreset overrides the component testing preset function and module.
func WithComponentPreset(p Preset) Option {
	return func(ci *ConfigInjector) {
		if p.Name != "" {
			ci.componentPreset.Name = p.Name
		}
		if p.Module != "" {
			ci.componentPreset.Module = p.Module
		}
	}
}

// NewConfigInjector returns an injector that parses with engine.
func NewConfigInjector(engine source.Engine, opts ...Option) *ConfigInjector {
	ci := &ConfigInjector{
		engine:          engine,
		e2ePreset:       DefaultE2EPreset,
		componentPreset: DefaultComponentPreset,
	}
	for _, opt := range opts {
		opt(ci)
	}
	return ci
}

// E2EPreset returns the preset injected by AddDefaultE2EConfig.
func (ci *ConfigInjector) E2EPreset() Preset { return ci.e2ePreset }

// ComponentPreset returns the preset injected by AddDefaultCTConfig.
func (ci *ConfigInjector) ComponentPreset() Preset { return ci.componentPreset }

func (ci *ConfigInjector) parse(ctx context.Context, content string) (*source.Document, error) {
	doc, err := ci.engine.Parse(ctx, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse cypress source: %w", err)
	}
	return doc, nil
}

// identifierNamed matches identifier-like nodes spelling name.
func identifierNamed(name string) source.Matcher {
	return source.All(source.Kind("identifier", "property_identifier"), source.Text(name))
}

// commonJSExport matches assignments combining the module and exports
// identifiers, e.g. module.exports = {...}.
var commonJSExport = source.All(
	source.Kind("assignment_expression", "binary_expression"),
	source.Has(identifierNamed("module")),
	source.Has(identifierNamed("exports")),
)

// exportAssignment matches export default <expr> and export = <expr>.
func exportAssignment(n *sitter.Node, content []byte) bool {
	return source.Kind("export_statement")(n, content) && exportedValue(n) != nil
}

var exportSelector = source.AnyOf(exportAssignment, commonJSExport)

// isCommonJS reports whether the module exports through module.exports.
func isCommonJS(doc *source.Document) bool {
	return len(doc.Query(commonJSExport)) > 0
}

// exportedValue returns the expression of an export default or export =
// statement, or nil for any other kind of export.
func exportedValue(stmt *sitter.Node) *sitter.Node {
	if v := stmt.ChildByFieldName("value"); v != nil {
		return v
	}
	for i := 0; i < int(stmt.ChildCount()); i++ {
		c := stmt.Child(i)
		if c == nil || c.IsNamed() || c.Type() != "=" {
			continue
		}
		for j := i + 1; j < int(stmt.ChildCount()); j++ {
			if next := stmt.Child(j); next != nil && next.IsNamed() && next.Type() != "comment" {
				return next
			}
		}
	}
	return nil
}

// exportExpression returns the value an export node exposes.
func exportExpression(n *sitter.Node) *sitter.Node {
	if n.Type() == "export_statement" {
		return exportedValue(n)
	}
	if right := n.ChildByFieldName("right"); right != nil {
		return right
	}
	return n
}

// configTarget returns the object literal a preset is merged into: the
// resolved config object or, failing that, the first object literal inside
// the exported expression. A file that does not parse cleanly has no target.
func configTarget(doc *source.Document) *sitter.Node {
	if doc.Root().HasError() {
		return nil
	}
	if obj := resolveConfigObject(doc); obj != nil {
		return obj
	}
	for _, export := range doc.Query(exportSelector) {
		value := exportExpression(export)
		if value == nil {
			continue
		}
		if obj := doc.First(value, source.Kind("object")); obj != nil {
			return obj
		}
	}
	return nil
}

// propertyKey returns the static key of an object member, or "" for spreads,
// computed keys and comments.
func propertyKey(doc *source.Document, n *sitter.Node) string {
	switch n.Type() {
	case "pair":
		key := n.ChildByFieldName("key")
		if key == nil {
			return ""
		}
		switch key.Type() {
		case "string":
			return source.Unquote(doc.Text(key))
		case "computed_property_name":
			return ""
		}
		return doc.Text(key)
	case "shorthand_property_identifier":
		return doc.Text(n)
	case "method_definition":
		return doc.Text(n.ChildByFieldName("name"))
	}
	return ""
}

func hasProperty(doc *source.Document, obj *sitter.Node, name string) bool {
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		if propertyKey(doc, obj.NamedChild(i)) == name {
			return true
		}
	}
	return false
}

// mergeProperty re-renders obj with its existing members verbatim followed by
// key: value.
func mergeProperty(doc *source.Document, obj *sitter.Node, key string, value expr) string {
	lit := &objectLiteral{}
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		member := obj.NamedChild(i)
		if member.Type() == "comment" {
			lit.addComment(doc.Text(member))
			continue
		}
		lit.addRaw(doc.Text(member))
	}
	lit.add(key, value)

	indent := source.LineIndent(doc.Content(), obj.StartByte())
	return source.ApplyEdits(doc.Content(), []source.Edit{{
		Start: obj.StartByte(),
		End:   obj.EndByte(),
		Text:  lit.render(indent),
	}})
}
