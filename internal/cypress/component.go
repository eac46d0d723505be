package cypress

import (
	"context"
)

// AddDefaultCTConfig merges a component section calling the component testing
// preset into the exported config object. The preset import is left to the
// caller (see AddImport).
func (ci *ConfigInjector) AddDefaultCTConfig(ctx context.Context, content string, options ComponentTestingOptions) (Result, error) {
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
	if hasProperty(doc, target, "component") {
		return unchanged(content, StatusAlreadyConfigured), nil
	}

	call := callExpr{callee: ci.componentPreset.Name, args: []expr{rawExpr("__filename")}}
	if opts := options.withoutDefaults(); !opts.isEmpty() {
		call.args = append(call.args, jsonExpr{value: opts})
	}

	return Result{
		Content: mergeProperty(doc, target, "component", call),
		Status:  StatusInjected,
	}, nil
}
