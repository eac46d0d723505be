package cypress

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ConfigFileNamePattern is the file name every Cypress config is expected to match.
const ConfigFileNamePattern = "cypress.config.{js,ts,mjs,cjs}"

// LocateConfig returns the config file under projectRoot in fsys. projectRoot
// is a slash-separated path relative to the root of fsys. When several files
// match, the first extension in pattern order wins.
func LocateConfig(fsys fs.FS, projectRoot string) (string, error) {
	root := path.Clean(strings.TrimPrefix(projectRoot, "/"))
	if root == "" {
		root = "."
	}

	for _, name := range expandBraces(ConfigFileNamePattern) {
		matches, err := fs.Glob(fsys, path.Join(root, name))
		if err != nil {
			return "", fmt.Errorf("failed to search %s: %w", projectRoot, err)
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}

	return "", fmt.Errorf("could not find a cypress config file in %s: %w", projectRoot, ErrConfigNotFound)
}

// expandBraces expands {a,b} alternations, left to right, without nesting.
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	closing := strings.IndexByte(pattern[open:], '}')
	if closing < 0 {
		return []string{pattern}
	}
	closing += open

	prefix, suffix := pattern[:open], pattern[closing+1:]
	var out []string
	for _, alt := range strings.Split(pattern[open+1:closing], ",") {
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}
