package config

import (
	"sort"

	"github.com/solgo-dev/solgo/internal/logging"
)

// UnknownKeyPolicy controls how a key absent from the schema registry
// is treated during validation.
type UnknownKeyPolicy int

const (
	// PolicyWarn logs the unknown key and drops it, tolerating schema
	// drift between tool versions.
	PolicyWarn UnknownKeyPolicy = iota
	// PolicyError aborts the resolution pass with UnknownOptionError.
	PolicyError
)

// validateMerged checks every merged value against its option spec and
// fills every absent option with its default. The result maps each
// registered key to its bound Go value (string, bool, int64 or
// []string); no RawValue leaves this function. A type mismatch is fatal
// for the whole pass.
func validateMerged(reg *Registry, merged map[string]MergedValue, policy UnknownKeyPolicy) (map[string]any, error) {
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]any, reg.Len())
	for _, key := range keys {
		mv := merged[key]
		spec, ok := reg.Lookup(key)
		if !ok {
			uerr := &UnknownOptionError{Key: key, Origin: mv.Origin}
			if policy == PolicyError {
				return nil, uerr
			}
			logging.Warn().
				Str("key", key).
				Str("origin", mv.Origin).
				Msg("ignoring unknown config option")
			continue
		}
		if mv.Value.Kind() != spec.Type {
			return nil, &InvalidOptionTypeError{
				Key:      key,
				Origin:   mv.Origin,
				Expected: spec.Type,
				Actual:   mv.Value.Kind(),
			}
		}
		values[key] = mv.Value.bind()
	}

	for _, key := range reg.Keys() {
		if _, set := values[key]; !set {
			spec, _ := reg.Lookup(key)
			values[key] = spec.Default.bind()
		}
	}
	return values, nil
}
