package source

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Engine parses source text into a queryable Document.
type Engine interface {
	Parse(ctx context.Context, content []byte) (*Document, error)
}

// TreeSitter is an Engine backed by a single tree-sitter grammar.
// It is safe for concurrent use: every Parse call creates its own parser.
type TreeSitter struct {
	language string
	grammar  *sitter.Language
}

// NewTreeSitter returns an engine for one of the supported language names.
func NewTreeSitter(language string) (*TreeSitter, error) {
	grammar, ok := grammars[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language for parsing: %s", language)
	}
	return &TreeSitter{language: language, grammar: grammar()}, nil
}

// NewTypeScriptEngine returns the default engine. TypeScript is a superset of
// the configuration idioms found in cypress.config.* files.
func NewTypeScriptEngine() *TreeSitter {
	return &TreeSitter{language: LanguageTypeScript, grammar: grammars[LanguageTypeScript]()}
}

// NewEngineForPath picks the grammar from the file name.
func NewEngineForPath(path string) *TreeSitter {
	lang := LanguageForPath(path)
	return &TreeSitter{language: lang, grammar: grammars[lang]()}
}

// Language returns the language name the engine parses.
func (ts *TreeSitter) Language() string { return ts.language }

// Parse parses content into a Document. The caller must Close it.
func (ts *TreeSitter) Parse(ctx context.Context, content []byte) (*Document, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(ts.grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", ts.language, err)
	}

	return &Document{content: content, tree: tree, grammar: ts.grammar}, nil
}

// Document is one parsed source file. It is scoped to a single transform.
type Document struct {
	content []byte
	tree    *sitter.Tree
	grammar *sitter.Language
}

// Root returns the program node.
func (d *Document) Root() *sitter.Node { return d.tree.RootNode() }

// Content returns the bytes the document was parsed from.
func (d *Document) Content() []byte { return d.content }

// Text returns the source text of n.
func (d *Document) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(d.content)
}

// Close releases the underlying tree.
func (d *Document) Close() { d.tree.Close() }

// Query returns every named node in the document matching m, in pre-order.
func (d *Document) Query(m Matcher) []*sitter.Node {
	return d.QueryFrom(d.Root(), m)
}

// QueryFrom is Query restricted to n and its descendants.
func (d *Document) QueryFrom(n *sitter.Node, m Matcher) []*sitter.Node {
	var out []*sitter.Node
	walk(n, func(node *sitter.Node) bool {
		if m(node, d.content) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// First returns the first node under n (n included) matching m, or nil.
func (d *Document) First(n *sitter.Node, m Matcher) *sitter.Node {
	var found *sitter.Node
	walk(n, func(node *sitter.Node) bool {
		if found != nil {
			return false
		}
		if m(node, d.content) {
			found = node
			return false
		}
		return true
	})
	return found
}

// Replace substitutes the outermost nodes matching m with the text returned by
// fn and returns the new source. Matches nested inside a replaced node are not
// visited. The document itself is left untouched.
func (d *Document) Replace(m Matcher, fn func(n *sitter.Node) string) string {
	var edits []Edit
	walk(d.Root(), func(node *sitter.Node) bool {
		if !m(node, d.content) {
			return true
		}
		edits = append(edits, Edit{Start: node.StartByte(), End: node.EndByte(), Text: fn(node)})
		return false
	})
	return ApplyEdits(d.content, edits)
}

// Captures runs a tree-sitter query against the document and returns the
// nodes bound to capture, in match order.
func (d *Document) Captures(pattern, capture string) ([]*sitter.Node, error) {
	query, err := sitter.NewQuery([]byte(pattern), d.grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	cursor.Exec(query, d.Root())

	var nodes []*sitter.Node
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, d.content)

		for _, c := range match.Captures {
			if query.CaptureNameForId(c.Index) == capture {
				nodes = append(nodes, c.Node)
			}
		}
	}
	return nodes, nil
}

// walk visits n and its named descendants in pre-order. Returning false from
// visit skips the node's children.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visit)
	}
}

// Edit replaces the byte range [Start, End) with Text.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// ApplyEdits applies non-overlapping edits to content. Edits are applied from
// the end of the file backwards so earlier offsets stay valid.
func ApplyEdits(content []byte, edits []Edit) string {
	if len(edits) == 0 {
		return string(content)
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	out := string(content)
	for _, e := range sorted {
		if int(e.End) > len(out) || e.Start > e.End {
			continue
		}
		out = out[:e.Start] + e.Text + out[e.End:]
	}
	return out
}

// LineIndent returns the leading whitespace of the line containing offset.
func LineIndent(content []byte, offset uint32) string {
	start := int(offset)
	if start > len(content) {
		start = len(content)
	}
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}
