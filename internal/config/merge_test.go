package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLastWriteWins(t *testing.T) {
	earlier := &Layer{
		Origin: "earlier",
		Assignments: []Assignment{
			{Key: "compiler.solc.evm_version", Value: StringValue("london")},
			{Key: "compiler.solc.target_version", Value: StringValue("0.8.0")},
		},
	}
	later := &Layer{
		Origin: "later",
		Assignments: []Assignment{
			{Key: "compiler.solc.evm_version", Value: StringValue("paris")},
		},
	}

	merged := Merge([]*Layer{earlier, later})
	require.Len(t, merged, 2)
	assert.Equal(t, "paris", merged["compiler.solc.evm_version"].Value.Str())
	assert.Equal(t, "later", merged["compiler.solc.evm_version"].Origin)
	assert.Equal(t, "0.8.0", merged["compiler.solc.target_version"].Value.Str())
	assert.Equal(t, "earlier", merged["compiler.solc.target_version"].Origin)
}

func TestMergeReplacesListsWholesale(t *testing.T) {
	earlier := &Layer{
		Origin: "earlier",
		Assignments: []Assignment{
			{Key: "compiler.solc.remappings", Value: StringListValue([]string{"a=1", "b=2"})},
		},
	}
	later := &Layer{
		Origin: "later",
		Assignments: []Assignment{
			{Key: "compiler.solc.remappings", Value: StringListValue([]string{"c=3"})},
		},
	}

	merged := Merge([]*Layer{earlier, later})
	assert.Equal(t, []string{"c=3"}, merged["compiler.solc.remappings"].Value.List())
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil))
	assert.Empty(t, Merge([]*Layer{{Origin: "empty"}}))
}
