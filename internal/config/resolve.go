package config

import (
	"path/filepath"
	"strings"
)

// AnchorToken is the reserved placeholder substituted with the working
// directory at resolution time.
const AnchorToken = "{CWD}"

// resolvePaths post-processes every path-typed option in place. It runs
// after validation, so values are already bound to their declared types.
// The anchor is deliberately the working directory at resolution time,
// not any config file's directory; subconfig references anchor on the
// referencing file instead.
func resolvePaths(reg *Registry, values map[string]any, workDir string) {
	for _, key := range reg.Keys() {
		spec, _ := reg.Lookup(key)
		if !spec.IsPath {
			continue
		}
		switch v := values[key].(type) {
		case string:
			values[key] = resolvePathValue(v, workDir, spec.Anchor)
		case []string:
			resolved := make([]string, len(v))
			for i, item := range v {
				resolved[i] = resolvePathValue(item, workDir, spec.Anchor)
			}
			values[key] = resolved
		}
	}
}

func resolvePathValue(value, workDir string, anchor AnchorKind) string {
	if value == "" {
		return value
	}
	if strings.Contains(value, AnchorToken) {
		value = strings.ReplaceAll(value, AnchorToken, workDir)
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	if anchor != AnchorWorkDir {
		return value
	}
	return filepath.Join(workDir, value)
}
