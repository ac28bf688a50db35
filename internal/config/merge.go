package config

// MergedValue is a raw option value together with the origin of the
// layer that set it, kept for diagnostics until validation.
type MergedValue struct {
	Value  RawValue
	Origin string
}

// Merge folds an ordered layer list into one raw mapping. Later layers
// replace earlier values wholesale: list values fully supersede earlier
// lists, never append to them, so precedence stays unambiguous.
func Merge(layers []*Layer) map[string]MergedValue {
	merged := make(map[string]MergedValue)
	for _, layer := range layers {
		for _, a := range layer.Assignments {
			merged[a.Key] = MergedValue{Value: a.Value, Origin: layer.Origin}
		}
	}
	return merged
}
