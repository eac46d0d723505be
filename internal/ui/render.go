package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/olekukonko/tablewriter"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	FailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	NoticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// StatusLabel describes an outcome in a word.
func StatusLabel(o workspace.Outcome) string {
	switch {
	case o.Err != nil:
		return "failed"
	case o.Status == cypress.StatusInjected:
		return "modified"
	case o.Status == cypress.StatusAlreadyConfigured:
		return "already configured"
	case o.Status == cypress.StatusUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// RenderOutcomes renders a per-file summary table.
func RenderOutcomes(outcomes []workspace.Outcome) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Result", "Detail"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	changed := 0
	for _, o := range outcomes {
		detail := ""
		if o.Err != nil {
			detail = o.Err.Error()
		} else if o.Status == cypress.StatusInjected {
			changed++
		}
		table.Append([]string{o.Path, StatusLabel(o), detail})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(outcomes)), fmt.Sprintf("%d changed", changed), ""})
	table.Render()

	return buf.String()
}

// RenderProperties renders the top-level members of a resolved config object.
func RenderProperties(obj *cypress.ConfigObject) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Key", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, p := range obj.Properties {
		key := p.Key
		if key == "" {
			key = "(dynamic)"
		}
		table.Append([]string{key, summarize(p.Text)})
	}
	table.Render()

	return buf.String()
}

// summarize keeps the first line of a member, marking elided lines.
func summarize(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + " …"
	}
	return text
}
