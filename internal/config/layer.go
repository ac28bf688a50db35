package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// SubconfigsKey is the reserved top-level key whose array value lists
// subconfig references in precedence order.
const SubconfigsKey = "subconfigs"

// LSPOrigin is the origin id used for layers supplied by a language
// server client instead of a file.
const LSPOrigin = "lsp-client"

// Assignment is one fully-qualified option assignment within a layer.
type Assignment struct {
	Key   string
	Value RawValue
}

// Layer is one ordered set of option assignments plus subconfig
// references, originating from one file or one protocol exchange.
// Layers are created per resolution pass and discarded after merging.
type Layer struct {
	// Origin is a human-readable source descriptor used in diagnostics:
	// the file path, or LSPOrigin.
	Origin string
	// Assignments holds the layer's option values in deterministic
	// (sorted-key) order.
	Assignments []Assignment
	// SubconfigRefs lists referenced subconfig paths in declared order,
	// relative or absolute.
	SubconfigRefs []string
	// BaseDir is the directory relative SubconfigRefs resolve against:
	// the directory containing the loaded file. Empty for protocol
	// layers, which carry no subconfigs.
	BaseDir string
}

// Empty reports whether the layer carries no assignments and no
// subconfig references.
func (l *Layer) Empty() bool {
	return len(l.Assignments) == 0 && len(l.SubconfigRefs) == 0
}

// LoadLayerFile loads one config document into a Layer. A missing file
// is an error only when required: subconfig references are required,
// while the global and project roots are optional and yield an empty
// layer when absent. Malformed documents come back as *ParseError.
func LoadLayerFile(path string, required bool) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return nil, &NotFoundError{Path: path}
			}
			return &Layer{Origin: path, BaseDir: filepath.Dir(path)}, nil
		}
		return nil, err
	}

	tree, err := parseDocument(path, data)
	if err != nil {
		return nil, err
	}
	return layerFromTree(path, filepath.Dir(path), tree)
}

// LayerFromValues builds a layer from an already-parsed mapping, the
// form configuration arrives in from an LSP client. Nested mappings are
// flattened into fully-qualified keys exactly like file tables. Protocol
// layers cannot reference subconfigs.
func LayerFromValues(origin string, values map[string]any) (*Layer, error) {
	if _, ok := values[SubconfigsKey]; ok {
		return nil, documentError(origin, "%q is not accepted from a protocol layer", SubconfigsKey)
	}
	layer := &Layer{Origin: origin}
	if err := flattenInto(layer, "", values); err != nil {
		return nil, err
	}
	return layer, nil
}

// layerFromTree extracts the reserved subconfigs list and flattens the
// remaining tables into fully-qualified assignments.
func layerFromTree(origin, baseDir string, tree map[string]any) (*Layer, error) {
	layer := &Layer{Origin: origin, BaseDir: baseDir}

	if raw, ok := tree[SubconfigsKey]; ok {
		refs, err := subconfigRefs(origin, raw)
		if err != nil {
			return nil, err
		}
		layer.SubconfigRefs = refs
		delete(tree, SubconfigsKey)
	}

	if err := flattenInto(layer, "", tree); err != nil {
		return nil, err
	}
	return layer, nil
}

func subconfigRefs(origin string, raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		if strs, ok := raw.([]string); ok {
			return strs, nil
		}
		return nil, documentError(origin, "%q must be an array of path strings", SubconfigsKey)
	}
	refs := make([]string, 0, len(items))
	for _, el := range items {
		s, ok := el.(string)
		if !ok {
			return nil, documentError(origin, "%q must be an array of path strings", SubconfigsKey)
		}
		refs = append(refs, s)
	}
	return refs, nil
}

// flattenInto walks nested tables and appends fully-qualified
// assignments. Document parsers return unordered maps, so keys are
// visited sorted to keep layer contents deterministic.
func flattenInto(layer *Layer, prefix string, tree map[string]any) error {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch v := tree[k].(type) {
		case map[string]any:
			if err := flattenInto(layer, full, v); err != nil {
				return err
			}
		default:
			value, ok := rawValueOf(v)
			if !ok {
				return documentError(layer.Origin, "option %q holds an unsupported value (%T)", full, v)
			}
			layer.Assignments = append(layer.Assignments, Assignment{Key: full, Value: value})
		}
	}
	return nil
}
