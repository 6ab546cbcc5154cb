package catalog

// Resolver answers enabled/divergence questions against the current project.
// A server is enabled when any of its sources belongs to the current project
// path, whether the definition lives in the global file's entry for that
// project or in its local .mcp.json.
type Resolver struct {
	catalog *Catalog
	project string
}

// NewResolver creates a resolver for the given current project path.
func NewResolver(catalog *Catalog, projectPath string) *Resolver {
	return &Resolver{catalog: catalog, project: projectPath}
}

// Enabled reports whether the named server is active in the current project.
func (r *Resolver) Enabled(name string) bool {
	pairs, ok := r.catalog.Get(name)
	if !ok {
		return false
	}
	for _, pair := range pairs {
		if pair.Source.Project == r.project {
			return true
		}
	}
	return false
}

// HasMultipleConfigs reports whether the named server has two or more sources
// whose definitions actually diverge. Identical duplicates across sources are
// not flagged; pair count alone is not enough.
func (r *Resolver) HasMultipleConfigs(name string) bool {
	pairs, ok := r.catalog.Get(name)
	if !ok || len(pairs) < 2 {
		return false
	}
	return !Analyze(pairs).Identical
}

// EnabledCount returns how many catalog servers are enabled in the current
// project.
func (r *Resolver) EnabledCount() int {
	count := 0
	for _, name := range r.catalog.Names() {
		if r.Enabled(name) {
			count++
		}
	}
	return count
}
