package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jingkaihe/mcpadmin/pkg/config"
)

func statusSources() *config.Sources {
	return &config.Sources{
		Global: &config.GlobalConfig{
			Projects: map[string]config.ProjectConfig{
				"/home/user/current": {
					MCPServers: map[string]config.ServerDefinition{
						"github": {"command": "gh-mcp"},
					},
				},
				"/home/user/other": {
					MCPServers: map[string]config.ServerDefinition{
						"github": {"command": "gh-mcp"},
						"search": {"url": "https://search.example.com"},
					},
				},
			},
		},
		Locals: map[string]*config.LocalConfig{
			"/home/user/current": {
				MCPServers: map[string]config.ServerDefinition{
					"filesystem": {"command": "fs-mcp"},
				},
			},
		},
	}
}

func TestEnabled(t *testing.T) {
	resolver := NewResolver(Build(statusSources()), "/home/user/current")

	tests := []struct {
		name    string
		server  string
		enabled bool
	}{
		{"enabled via global entry for current project", "github", true},
		{"enabled via local file", "filesystem", true},
		{"defined only in another project", "search", false},
		{"unknown server", "missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.enabled, resolver.Enabled(tt.server))
		})
	}
}

func TestHasMultipleConfigsIdenticalDuplicates(t *testing.T) {
	// github is defined twice with identical definitions; identical
	// duplicates must not be flagged even though the pair count is 2.
	resolver := NewResolver(Build(statusSources()), "/home/user/current")
	assert.False(t, resolver.HasMultipleConfigs("github"))
}

func TestHasMultipleConfigsDivergent(t *testing.T) {
	sources := statusSources()
	sources.Global.Projects["/home/user/other"].MCPServers["github"]["command"] = "gh-mcp-v2"

	resolver := NewResolver(Build(sources), "/home/user/current")
	assert.True(t, resolver.HasMultipleConfigs("github"))
}

func TestHasMultipleConfigsSingleSource(t *testing.T) {
	resolver := NewResolver(Build(statusSources()), "/home/user/current")
	assert.False(t, resolver.HasMultipleConfigs("filesystem"))
	assert.False(t, resolver.HasMultipleConfigs("missing"))
}

func TestEnabledCount(t *testing.T) {
	resolver := NewResolver(Build(statusSources()), "/home/user/current")
	assert.Equal(t, 2, resolver.EnabledCount())

	resolver = NewResolver(Build(statusSources()), "/home/user/elsewhere")
	assert.Equal(t, 0, resolver.EnabledCount())
}
