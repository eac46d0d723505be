package cypress

import (
	"bytes"
	"encoding/json"
	"strings"
)

const indentUnit = "  "

// expr is a JavaScript expression that can render itself at a given
// indentation. Only the lines after the first are indented; the caller
// positions the first line.
type expr interface {
	render(indent string) string
}

// rawExpr is verbatim source text, rendered unchanged.
type rawExpr string

func (e rawExpr) render(string) string { return string(e) }

// stringExpr renders as a single-quoted string literal.
type stringExpr string

func (e stringExpr) render(string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(string(e)) + "'"
}

// jsonExpr renders a Go value as a JSON object literal.
type jsonExpr struct {
	value  any
	pretty bool
}

func (e jsonExpr) render(indent string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if e.pretty {
		enc.SetIndent(indent, indentUnit)
	}
	if err := enc.Encode(e.value); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// callExpr renders callee(arg, arg, ...).
type callExpr struct {
	callee string
	args   []expr
}

func (e callExpr) render(indent string) string {
	args := make([]string, 0, len(e.args))
	for _, a := range e.args {
		args = append(args, a.render(indent))
	}
	return e.callee + "(" + strings.Join(args, ", ") + ")"
}

type propertyKind int

const (
	propertyRaw propertyKind = iota
	propertyKeyed
	propertySpread
	propertyComment
)

type objectProperty struct {
	kind  propertyKind
	key   string
	value expr
}

// objectLiteral is the single intermediate form used to generate object text.
// Entries render one per line; commas separate entries and never trail the
// last one. Comments keep their place and take no comma.
type objectLiteral struct {
	props []objectProperty
}

func (o *objectLiteral) addRaw(text string) *objectLiteral {
	o.props = append(o.props, objectProperty{kind: propertyRaw, value: rawExpr(text)})
	return o
}

func (o *objectLiteral) addComment(text string) *objectLiteral {
	o.props = append(o.props, objectProperty{kind: propertyComment, value: rawExpr(text)})
	return o
}

func (o *objectLiteral) add(key string, value expr) *objectLiteral {
	o.props = append(o.props, objectProperty{kind: propertyKeyed, key: key, value: value})
	return o
}

func (o *objectLiteral) spread(value expr) *objectLiteral {
	o.props = append(o.props, objectProperty{kind: propertySpread, value: value})
	return o
}

func (o *objectLiteral) render(indent string) string {
	if len(o.props) == 0 {
		return "{}"
	}

	inner := indent + indentUnit
	var b strings.Builder
	b.WriteString("{\n")
	for i, p := range o.props {
		b.WriteString(inner)
		switch p.kind {
		case propertyKeyed:
			b.WriteString(p.key + ": " + p.value.render(inner))
		case propertySpread:
			b.WriteString("..." + p.value.render(inner))
		default:
			b.WriteString(p.value.render(inner))
		}
		if p.kind != propertyComment && o.hasValueAfter(i) {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
	return b.String()
}

func (o *objectLiteral) hasValueAfter(i int) bool {
	for _, p := range o.props[i+1:] {
		if p.kind != propertyComment {
			return true
		}
	}
	return false
}
