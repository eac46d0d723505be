package cypress

import (
	"context"
)

// AddDefaultE2EConfig merges an e2e section spreading the e2e preset into the
// exported config object and imports the preset. A config that already has an
// e2e section is returned unchanged.
func (ci *ConfigInjector) AddDefaultE2EConfig(ctx context.Context, content string, options E2EPresetOptions, baseURL string) (Result, error) {
	if content == "" {
		return Result{}, ErrEmptyConfig
	}

	doc, err := ci.parse(ctx, content)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	target := configTarget(doc)
	if target == nil {
		return unchanged(content, StatusUnresolved), nil
	}
	if hasProperty(doc, target, "e2e") {
		return unchanged(content, StatusAlreadyConfigured), nil
	}

	section := &objectLiteral{}
	section.spread(callExpr{
		callee: ci.e2ePreset.Name,
		args:   []expr{rawExpr("__filename"), jsonExpr{value: options, pretty: true}},
	})
	if baseURL != "" {
		section.add("baseUrl", stringExpr(baseURL))
	}

	updated := mergeProperty(doc, target, "e2e", section)

	line, err := importLine(doc, ImportSpec{Names: []string{ci.e2ePreset.Name}, Module: ci.e2ePreset.Module}, isCommonJS(doc))
	if err != nil {
		return Result{}, err
	}
	if line != "" {
		updated = insertImport(doc, updated, line)
	}

	return Result{Content: updated, Status: StatusInjected}, nil
}
