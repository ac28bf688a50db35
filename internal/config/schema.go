package config

import (
	"fmt"
	"sort"
)

// AnchorKind selects the directory a relative path-typed option value is
// resolved against.
type AnchorKind int

const (
	// AnchorNone leaves relative values untouched; only the {CWD} token
	// is substituted.
	AnchorNone AnchorKind = iota
	// AnchorWorkDir resolves relative values against the working
	// directory at resolution time.
	AnchorWorkDir
)

// OptionSpec describes one registered option: its namespace, name,
// declared type, default, and whether its value is a filesystem path.
// Specs are registered once at process start and never mutated.
type OptionSpec struct {
	Namespace string
	Name      string
	Type      Kind
	Default   RawValue
	IsPath    bool
	Anchor    AnchorKind
}

// Key returns the fully-qualified option key, globally unique within a
// registry.
func (s OptionSpec) Key() string {
	return s.Namespace + "." + s.Name
}

// Registry is an immutable catalog of option specs. It is safe for
// concurrent use by construction: nothing writes after NewRegistry
// returns.
type Registry struct {
	specs map[string]OptionSpec
	keys  []string
}

// NewRegistry builds a registry from the given specs. Duplicate
// fully-qualified keys are a programming error and rejected.
func NewRegistry(specs ...OptionSpec) (*Registry, error) {
	r := &Registry{specs: make(map[string]OptionSpec, len(specs))}
	for _, spec := range specs {
		key := spec.Key()
		if _, dup := r.specs[key]; dup {
			return nil, fmt.Errorf("option %q registered twice", key)
		}
		r.specs[key] = spec
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r, nil
}

// Lookup returns the spec for a fully-qualified key.
func (r *Registry) Lookup(key string) (OptionSpec, bool) {
	spec, ok := r.specs[key]
	return spec, ok
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	cp := make([]string, len(r.keys))
	copy(cp, r.keys)
	return cp
}

// Len returns the number of registered options.
func (r *Registry) Len() int { return len(r.specs) }

// DefaultRegistry returns the registry of every option solgo understands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "allow_paths",
			Type:      KindStringList,
			Default:   StringListValue(nil),
			IsPath:    true,
			Anchor:    AnchorWorkDir,
		},
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "evm_version",
			Type:      KindString,
			Default:   StringValue(""),
		},
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "ignore_paths",
			Type:      KindStringList,
			Default:   StringListValue([]string{"{CWD}/.solgo-build", "{CWD}/node_modules"}),
			IsPath:    true,
			Anchor:    AnchorWorkDir,
		},
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "include_paths",
			Type:      KindStringList,
			Default:   StringListValue([]string{"{CWD}/node_modules"}),
			IsPath:    true,
			Anchor:    AnchorWorkDir,
		},
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "remappings",
			Type:      KindStringList,
			Default:   StringListValue(nil),
		},
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "target_version",
			Type:      KindString,
			Default:   StringValue(""),
		},
		OptionSpec{
			Namespace: "compiler.solc",
			Name:      "via_IR",
			Type:      KindBool,
			Default:   BoolValue(false),
		},
		OptionSpec{
			Namespace: "compiler.solc.optimizer",
			Name:      "enabled",
			Type:      KindBool,
			Default:   BoolValue(false),
		},
		OptionSpec{
			Namespace: "compiler.solc.optimizer",
			Name:      "runs",
			Type:      KindInteger,
			Default:   IntegerValue(200),
		},
		OptionSpec{
			Namespace: "lsp.find_references",
			Name:      "include_declarations",
			Type:      KindBool,
			Default:   BoolValue(false),
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}
