package cypress

import (
	"context"
	"strings"

	"github.com/getlawrence/cyconfig/internal/source"
	sitter "github.com/smacker/go-tree-sitter"
)

const (
	mountMember   = "mount: typeof mount;"
	mountCommand  = "Cypress.Commands.add('mount', mount);"
	mountRegistry = "mount"
)

// mountRegistration matches any call that mentions the "mount" string, such as
// Cypress.Commands.add('mount', ...).
var mountRegistration = source.All(
	source.Kind("call_expression"),
	source.Has(source.StringValue(mountRegistry)),
)

// AddMountDefinition declares the mount command on every interface in a
// component commands file and registers it. Files that already register a
// mount command are returned unchanged.
func (ci *ConfigInjector) AddMountDefinition(ctx context.Context, content string) (Result, error) {
	if content == "" {
		return Result{}, ErrEmptyCommandsFile
	}

	doc, err := ci.parse(ctx, content)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	if len(doc.Query(mountRegistration)) > 0 {
		return unchanged(content, StatusAlreadyConfigured), nil
	}

	updated := doc.Replace(source.Kind("interface_declaration"), func(n *sitter.Node) string {
		return renderMountInterface(doc, n)
	})

	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += mountCommand + "\n"

	return Result{Content: updated, Status: StatusInjected}, nil
}

// renderMountInterface keeps the interface header and members and appends
// the mount member.
func renderMountInterface(doc *source.Document, n *sitter.Node) string {
	indent := source.LineIndent(doc.Content(), n.StartByte())
	memberIndent := indent + indentUnit

	var b strings.Builder
	b.WriteString("interface ")
	b.WriteString(doc.Text(n.ChildByFieldName("name")))
	if params := n.ChildByFieldName("type_parameters"); params != nil {
		b.WriteString(doc.Text(params))
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "extends_type_clause" {
			b.WriteString(" " + doc.Text(c))
		}
	}
	b.WriteString(" {\n")

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			text := strings.TrimSpace(doc.Text(member))
			if member.Type() != "comment" && !strings.HasSuffix(text, ";") {
				text += ";"
			}
			b.WriteString(memberIndent + text + "\n")
		}
	}

	b.WriteString(memberIndent + mountMember + "\n")
	b.WriteString(indent + "}")
	return b.String()
}
