package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/mcpadmin/pkg/config"
)

func pairAt(scope Scope, project string, def config.ServerDefinition) Pair {
	return Pair{Source: SourceID{Scope: scope, Project: project}, Definition: def}
}

func TestAnalyzeIdentical(t *testing.T) {
	def := config.ServerDefinition{
		"command": "fs-mcp",
		"args":    []any{"--verbose"},
		"env":     map[string]any{"TOKEN": "x"},
	}
	other := config.ServerDefinition{
		// Same content, different key insertion order must not matter.
		"env":     map[string]any{"TOKEN": "x"},
		"args":    []any{"--verbose"},
		"command": "fs-mcp",
	}

	result := Analyze([]Pair{
		pairAt(ScopeGlobal, "/a", def),
		pairAt(ScopeGlobal, "/b", other),
	})
	assert.True(t, result.Identical)
	assert.Empty(t, result.Diffs)
}

func TestAnalyzeSinglePair(t *testing.T) {
	result := Analyze([]Pair{pairAt(ScopeLocal, "/a", config.ServerDefinition{"command": "x"})})
	assert.True(t, result.Identical)
}

func TestAnalyzeScalarDiff(t *testing.T) {
	result := Analyze([]Pair{
		pairAt(ScopeLocal, "/a", config.ServerDefinition{"cmd": "a"}),
		pairAt(ScopeGlobal, "/p", config.ServerDefinition{"cmd": "b"}),
	})
	require.False(t, result.Identical)
	require.Len(t, result.Diffs, 1)
	require.Len(t, result.Diffs[0].Fields, 1)

	field := result.Diffs[0].Fields[0]
	assert.Equal(t, "cmd", field.Path)
	assert.Equal(t, "a", field.Left)
	assert.Equal(t, "b", field.Right)
}

func TestAnalyzeNestedPaths(t *testing.T) {
	left := config.ServerDefinition{
		"env":  map[string]any{"TOKEN": "x", "REGION": "eu"},
		"args": []any{"--root", "/a"},
	}
	right := config.ServerDefinition{
		"env":  map[string]any{"TOKEN": "y", "REGION": "eu"},
		"args": []any{"--root", "/b"},
	}

	result := Analyze([]Pair{
		pairAt(ScopeGlobal, "/a", left),
		pairAt(ScopeGlobal, "/b", right),
	})
	require.False(t, result.Identical)
	require.Len(t, result.Diffs, 1)

	paths := make([]string, len(result.Diffs[0].Fields))
	for i, field := range result.Diffs[0].Fields {
		paths[i] = field.Path
	}
	assert.ElementsMatch(t, []string{"env.TOKEN", "args[1]"}, paths)
}

func TestAnalyzeAbsentKeys(t *testing.T) {
	result := Analyze([]Pair{
		pairAt(ScopeGlobal, "/a", config.ServerDefinition{"command": "x", "env": map[string]any{"A": "1"}}),
		pairAt(ScopeGlobal, "/b", config.ServerDefinition{"command": "x"}),
	})
	require.False(t, result.Identical)
	require.Len(t, result.Diffs, 1)
	require.Len(t, result.Diffs[0].Fields, 1)

	field := result.Diffs[0].Fields[0]
	assert.Equal(t, "env", field.Path)
	assert.Equal(t, map[string]any{"A": "1"}, field.Left)
	assert.Equal(t, Absent, field.Right)
}

func TestAnalyzeArrayLengthMismatch(t *testing.T) {
	result := Analyze([]Pair{
		pairAt(ScopeGlobal, "/a", config.ServerDefinition{"args": []any{"x"}}),
		pairAt(ScopeGlobal, "/b", config.ServerDefinition{"args": []any{"x", "y"}}),
	})
	require.False(t, result.Identical)
	field := result.Diffs[0].Fields[0]
	assert.Equal(t, "args[1]", field.Path)
	assert.Equal(t, Absent, field.Left)
	assert.Equal(t, "y", field.Right)
}

func TestAnalyzeArrayOrderSensitive(t *testing.T) {
	result := Analyze([]Pair{
		pairAt(ScopeGlobal, "/a", config.ServerDefinition{"args": []any{"x", "y"}}),
		pairAt(ScopeGlobal, "/b", config.ServerDefinition{"args": []any{"y", "x"}}),
	})
	assert.False(t, result.Identical)
}

func TestAnalyzeTypeMismatch(t *testing.T) {
	result := Analyze([]Pair{
		pairAt(ScopeGlobal, "/a", config.ServerDefinition{"timeout": float64(30)}),
		pairAt(ScopeGlobal, "/b", config.ServerDefinition{"timeout": "30s"}),
	})
	require.False(t, result.Identical)
	field := result.Diffs[0].Fields[0]
	assert.Equal(t, "timeout", field.Path)
}

func TestAnalyzeReferenceIsFirstPair(t *testing.T) {
	first := pairAt(ScopeGlobal, "/a", config.ServerDefinition{"cmd": "a"})
	result := Analyze([]Pair{
		first,
		pairAt(ScopeGlobal, "/b", config.ServerDefinition{"cmd": "b"}),
		pairAt(ScopeGlobal, "/c", config.ServerDefinition{"cmd": "a"}),
	})
	require.False(t, result.Identical)
	assert.Equal(t, first, result.Reference)
	// Only the pair that differs from the reference gets a diff entry.
	require.Len(t, result.Diffs, 1)
	assert.Equal(t, "/b", result.Diffs[0].Source.Project)
}

func TestDeepEqual(t *testing.T) {
	tests := []struct {
		name  string
		left  any
		right any
		equal bool
	}{
		{"equal scalars", "a", "a", true},
		{"unequal scalars", "a", "b", false},
		{"equal numbers", float64(1), float64(1), true},
		{"nil both", nil, nil, true},
		{"nil vs value", nil, "a", false},
		{
			"equal nested",
			map[string]any{"a": []any{float64(1), map[string]any{"b": true}}},
			map[string]any{"a": []any{float64(1), map[string]any{"b": true}}},
			true,
		},
		{
			"nested difference",
			map[string]any{"a": []any{map[string]any{"b": true}}},
			map[string]any{"a": []any{map[string]any{"b": false}}},
			false,
		},
		{"scalar vs object", "a", map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, DeepEqual(tt.left, tt.right))
		})
	}
}
