package config

import (
	"path/filepath"
)

// expandFrame is one entry on the explicit traversal stack: a layer
// whose subconfig references are being processed, and the index of the
// next reference to visit.
type expandFrame struct {
	layer *Layer
	abs   string // resolved absolute path, "" for non-file layers
	next  int
}

// Expand flattens root layers and their subconfig trees into the final
// precedence order, earlier meaning lower precedence. The traversal is
// pre-order depth-first: each layer is emitted before its subconfigs,
// each subconfig's own tree is fully emitted before the next sibling
// reference. Relative references resolve against the referencing
// layer's BaseDir, never the working directory.
//
// The traversal is iterative with an explicit stack rather than native
// recursion, which keeps resource use bounded by the reference graph's
// longest path and lets a cycle be reported as the exact sequence of
// files forming it.
func Expand(roots []*Layer) ([]*Layer, error) {
	var out []*Layer
	var stack []*expandFrame
	active := make(map[string]int) // abs path -> position on stack

	push := func(layer *Layer, abs string) {
		out = append(out, layer)
		if abs != "" {
			active[abs] = len(stack)
		}
		stack = append(stack, &expandFrame{layer: layer, abs: abs})
	}

	for _, root := range roots {
		push(root, layerAbsPath(root))

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next >= len(top.layer.SubconfigRefs) {
				stack = stack[:len(stack)-1]
				if top.abs != "" {
					delete(active, top.abs)
				}
				continue
			}

			ref := top.layer.SubconfigRefs[top.next]
			top.next++

			abs := resolveRef(ref, top.layer.BaseDir)
			if at, ok := active[abs]; ok {
				return nil, &CyclicSubconfigError{Cycle: cyclePath(stack, at, abs)}
			}

			sub, err := LoadLayerFile(abs, true)
			if err != nil {
				if nf, ok := err.(*NotFoundError); ok {
					nf.ReferencedBy = top.layer.Origin
				}
				return nil, err
			}
			push(sub, abs)
		}
	}
	return out, nil
}

// resolveRef turns a subconfig reference into an absolute, cleaned
// path, anchoring relative references on the referencing layer's
// directory.
func resolveRef(ref, baseDir string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(baseDir, ref)
}

// layerAbsPath returns the absolute path identifying a file-backed
// layer on the active-expansion set, or "" for protocol layers.
func layerAbsPath(l *Layer) string {
	if l.BaseDir == "" {
		return ""
	}
	if filepath.IsAbs(l.Origin) {
		return filepath.Clean(l.Origin)
	}
	abs, err := filepath.Abs(l.Origin)
	if err != nil {
		return ""
	}
	return abs
}

// cyclePath extracts the sequence of file paths from the first
// occurrence of the repeated node down the active stack and back to it.
func cyclePath(stack []*expandFrame, from int, repeated string) []string {
	cycle := make([]string, 0, len(stack)-from+1)
	for _, f := range stack[from:] {
		if f.abs != "" {
			cycle = append(cycle, f.abs)
		}
	}
	return append(cycle, repeated)
}
