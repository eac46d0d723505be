package ui

import (
	"errors"
	"testing"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome workspace.Outcome
		want    string
	}{
		{"injected", workspace.Outcome{Status: cypress.StatusInjected}, "modified"},
		{"configured", workspace.Outcome{Status: cypress.StatusAlreadyConfigured}, "already configured"},
		{"unresolved", workspace.Outcome{Status: cypress.StatusUnresolved}, "unresolved"},
		{"error wins", workspace.Outcome{Status: cypress.StatusInjected, Err: errors.New("boom")}, "failed"},
		{"zero", workspace.Outcome{}, "unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StatusLabel(tt.outcome))
		})
	}
}

func TestRenderOutcomes(t *testing.T) {
	t.Parallel()

	out := RenderOutcomes([]workspace.Outcome{
		{Path: "apps/a/cypress.config.ts", Status: cypress.StatusInjected},
		{Path: "apps/b/cypress.config.js", Status: cypress.StatusAlreadyConfigured},
		{Path: "apps/c/cypress.config.js", Err: errors.New("permission denied")},
	})

	assert.Contains(t, out, "apps/a/cypress.config.ts")
	assert.Contains(t, out, "modified")
	assert.Contains(t, out, "already configured")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "1 changed")
}

func TestRenderProperties(t *testing.T) {
	t.Parallel()

	out := RenderProperties(&cypress.ConfigObject{
		Properties: []cypress.Property{
			{Key: "video", Text: "video: false"},
			{Key: "", Text: "...shared"},
			{Key: "setupNodeEvents", Text: "setupNodeEvents(on) {\n  return on;\n}"},
		},
	})

	assert.Contains(t, out, "video: false")
	assert.Contains(t, out, "(dynamic)")
	assert.Contains(t, out, "setupNodeEvents(on) { …")
	assert.NotContains(t, out, "return on;")
}
