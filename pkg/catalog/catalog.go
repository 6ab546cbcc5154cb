// Package catalog merges MCP server definitions from every configuration
// source into a per-name view, detects structural divergence between
// definitions of the same server, and resolves enabled status against the
// current project.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jingkaihe/mcpadmin/pkg/config"
)

// Scope classifies where a definition was found.
type Scope string

const (
	// ScopeGlobal marks definitions from the per-user global file's projects map.
	ScopeGlobal Scope = "global"
	// ScopeLocal marks definitions from a project's .mcp.json.
	ScopeLocal Scope = "local"
)

// SourceID identifies a single configuration source: a scope plus the project
// path the definition belongs to.
type SourceID struct {
	Scope   Scope
	Project string
}

func (s SourceID) String() string {
	return fmt.Sprintf("%s/%s", s.Scope, s.Project)
}

// MatchesPath reports whether the source's project path contains the given
// substring. Used for --from resolution.
func (s SourceID) MatchesPath(partial string) bool {
	return strings.Contains(s.Project, partial)
}

// Pair is one (source, definition) occurrence of a server name.
type Pair struct {
	Source     SourceID
	Definition config.ServerDefinition
}

// Catalog maps server names to every occurrence across all sources. Pairs are
// ordered global-before-local, each class sorted by project path, so repeated
// runs over unchanged input render identically.
type Catalog struct {
	entries map[string][]Pair
}

// Build constructs a catalog from the loaded sources. Two sources defining the
// same name both appear, even when the definitions are identical; divergence
// analysis decides identity later.
func Build(sources *config.Sources) *Catalog {
	cat := &Catalog{entries: make(map[string][]Pair)}
	if sources == nil {
		return cat
	}

	if sources.Global != nil {
		for _, projectPath := range sortedKeys(sources.Global.Projects) {
			project := sources.Global.Projects[projectPath]
			source := SourceID{Scope: ScopeGlobal, Project: projectPath}
			for _, name := range sortedKeys(project.MCPServers) {
				cat.append(name, Pair{Source: source, Definition: project.MCPServers[name]})
			}
		}
	}

	for _, projectPath := range sortedKeys(sources.Locals) {
		local := sources.Locals[projectPath]
		source := SourceID{Scope: ScopeLocal, Project: projectPath}
		for _, name := range sortedKeys(local.MCPServers) {
			cat.append(name, Pair{Source: source, Definition: local.MCPServers[name]})
		}
	}

	return cat
}

func (c *Catalog) append(name string, pair Pair) {
	c.entries[name] = append(c.entries[name], pair)
}

// Get returns the ordered pairs for a server name.
func (c *Catalog) Get(name string) ([]Pair, bool) {
	pairs, ok := c.entries[name]
	return pairs, ok
}

// Names returns all server names in sorted order.
func (c *Catalog) Names() []string {
	return sortedKeys(c.entries)
}

// Len returns the number of unique server names.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
