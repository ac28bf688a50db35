package config

import (
	"fmt"
	"os"
)

// ResolvedConfig is the immutable outcome of one resolution pass: every
// registered option bound to a typed value, defaults filled in, paths
// resolved. A new pass produces a new instance; nothing mutates an
// existing one.
type ResolvedConfig struct {
	values  map[string]any
	sources []string
	workDir string
}

// Get returns the value of an option by namespace and name.
func (c *ResolvedConfig) Get(namespace, option string) (any, bool) {
	v, ok := c.values[namespace+"."+option]
	return v, ok
}

// GetString returns a string option by fully-qualified key. The zero
// value is returned for unknown or differently-typed keys.
func (c *ResolvedConfig) GetString(key string) string {
	s, _ := c.values[key].(string)
	return s
}

// GetBool returns a bool option by fully-qualified key.
func (c *ResolvedConfig) GetBool(key string) bool {
	b, _ := c.values[key].(bool)
	return b
}

// GetInt returns an integer option by fully-qualified key.
func (c *ResolvedConfig) GetInt(key string) int64 {
	i, _ := c.values[key].(int64)
	return i
}

// GetStringList returns a copy of a list option by fully-qualified key.
func (c *ResolvedConfig) GetStringList(key string) []string {
	list, _ := c.values[key].([]string)
	cp := make([]string, len(list))
	copy(cp, list)
	return cp
}

// Map returns a full view of the snapshot keyed by fully-qualified
// option name. List values are copied so callers cannot reach back into
// the snapshot.
func (c *ResolvedConfig) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// Sources returns the file paths that contributed layers to this pass,
// in precedence order, including optional roots that were absent. The
// watcher uses this set to decide what to observe.
func (c *ResolvedConfig) Sources() []string {
	cp := make([]string, len(c.sources))
	copy(cp, c.sources)
	return cp
}

// WorkDir returns the working directory path options were anchored on.
func (c *ResolvedConfig) WorkDir() string { return c.workDir }

// Resolver runs resolution passes: load roots, expand subconfigs, merge
// layers, validate and default against the registry, resolve paths.
// A Resolver carries no state between passes; each call to Resolve
// reads every input from scratch.
type Resolver struct {
	// Registry defaults to DefaultRegistry when nil.
	Registry *Registry
	// GlobalPath is the per-user config file. Empty skips the global
	// root; a missing file yields an empty layer.
	GlobalPath string
	// ProjectDir is the project root holding an optional solgo.toml.
	// Empty skips the project root.
	ProjectDir string
	// ExtraLayers are appended above all file layers, highest
	// precedence last. The LSP session supplies client-sourced layers
	// here.
	ExtraLayers []*Layer
	// WorkDir anchors path-typed options. Defaults to the process
	// working directory.
	WorkDir string
	// Policy selects the unknown-key behavior, PolicyWarn by default.
	Policy UnknownKeyPolicy
}

// Resolve executes one full resolution pass. It either succeeds with a
// complete snapshot or fails without exposing partial state.
func (r *Resolver) Resolve() (*ResolvedConfig, error) {
	reg := r.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	workDir := r.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		workDir = wd
	}

	var roots []*Layer
	if r.GlobalPath != "" {
		layer, err := LoadLayerFile(r.GlobalPath, false)
		if err != nil {
			return nil, err
		}
		roots = append(roots, layer)
	}
	if r.ProjectDir != "" {
		layer, err := LoadLayerFile(ProjectConfigPath(r.ProjectDir), false)
		if err != nil {
			return nil, err
		}
		roots = append(roots, layer)
	}

	layers, err := Expand(roots)
	if err != nil {
		return nil, err
	}
	layers = append(layers, r.ExtraLayers...)

	values, err := validateMerged(reg, Merge(layers), r.Policy)
	if err != nil {
		return nil, err
	}
	resolvePaths(reg, values, workDir)

	var sources []string
	for _, layer := range layers {
		if layer.BaseDir != "" {
			sources = append(sources, layer.Origin)
		}
	}

	return &ResolvedConfig{values: values, sources: sources, workDir: workDir}, nil
}

// Defaults returns a defaults-only snapshot anchored on workDir. The
// LSP session falls back to it when no valid configuration exists.
func Defaults(workDir string) *ResolvedConfig {
	reg := DefaultRegistry()
	values, err := validateMerged(reg, nil, PolicyWarn)
	if err != nil {
		panic(err) // no inputs, cannot fail
	}
	resolvePaths(reg, values, workDir)
	return &ResolvedConfig{values: values, workDir: workDir}
}
