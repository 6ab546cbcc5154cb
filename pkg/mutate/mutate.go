// Package mutate applies add/remove operations to the current project's
// .mcp.json. Mutations are surgical: only the named server key changes, every
// other key in the document passes through as raw JSON, and the write is a
// temp-file-then-rename as the final step so a failure never leaves a partial
// file.
package mutate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/mcpadmin/pkg/catalog"
	"github.com/jingkaihe/mcpadmin/pkg/config"
	"github.com/pkg/errors"
)

const serversKey = "mcpServers"

// AddOptions controls source resolution for Add.
type AddOptions struct {
	// From is a substring matched against candidate source project paths.
	// Required when the server has more than one source.
	From string
	// RewritePaths substitutes the source project path with the target
	// project path inside string args of the copied definition.
	RewritePaths bool
}

// AddResult reports which source was copied and the definition written.
type AddResult struct {
	Name       string
	Source     catalog.SourceID
	Definition config.ServerDefinition
}

// RemoveResult distinguishes an actual removal from the idempotent no-op.
type RemoveResult struct {
	Name    string
	Removed bool
}

// Add copies the resolved definition of name into the project's .mcp.json,
// overwriting any prior value for that name. Resolution happens entirely
// before the write: an absent name, a pattern matching zero or several
// sources, or a missing --from with several sources all fail without touching
// the file.
func Add(cat *catalog.Catalog, projectDir, name string, opts AddOptions) (*AddResult, error) {
	pairs, ok := cat.Get(name)
	if !ok {
		return nil, &catalog.ServerNotFoundError{Name: name}
	}

	pair, err := resolveSource(name, pairs, opts.From)
	if err != nil {
		return nil, err
	}

	definition := pair.Definition
	if opts.RewritePaths {
		definition = rewriteArgs(definition, pair.Source.Project, projectDir)
	}

	localPath := config.LocalPath(projectDir)
	doc, servers, err := readDocument(localPath)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(definition)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode definition for %q", name)
	}
	servers[name] = raw

	if err := writeDocument(localPath, doc, servers); err != nil {
		return nil, err
	}

	return &AddResult{Name: name, Source: pair.Source, Definition: definition}, nil
}

// Remove deletes name from the project's .mcp.json. An absent name (or absent
// file) is an idempotent no-op and performs no write.
func Remove(projectDir, name string) (*RemoveResult, error) {
	localPath := config.LocalPath(projectDir)
	doc, servers, err := readDocument(localPath)
	if err != nil {
		return nil, err
	}

	if _, ok := servers[name]; !ok {
		return &RemoveResult{Name: name, Removed: false}, nil
	}
	delete(servers, name)

	if err := writeDocument(localPath, doc, servers); err != nil {
		return nil, err
	}

	return &RemoveResult{Name: name, Removed: true}, nil
}

// resolveSource picks exactly one pair. With a pattern, it must match exactly
// one source path; without one, the server must have exactly one source.
func resolveSource(name string, pairs []catalog.Pair, pattern string) (catalog.Pair, error) {
	if pattern == "" {
		if len(pairs) == 1 {
			return pairs[0], nil
		}
		return catalog.Pair{}, &AmbiguousSourceError{Name: name, Candidates: sourcesOf(pairs)}
	}

	var matches []catalog.Pair
	for _, pair := range pairs {
		if pair.Source.MatchesPath(pattern) {
			matches = append(matches, pair)
		}
	}
	switch len(matches) {
	case 0:
		return catalog.Pair{}, &NoMatchError{Name: name, Pattern: pattern}
	case 1:
		return matches[0], nil
	default:
		return catalog.Pair{}, &AmbiguousSourceError{Name: name, Pattern: pattern, Candidates: sourcesOf(matches)}
	}
}

func sourcesOf(pairs []catalog.Pair) []catalog.SourceID {
	sources := make([]catalog.SourceID, len(pairs))
	for i, pair := range pairs {
		sources[i] = pair.Source
	}
	return sources
}

// rewriteArgs returns a copy of the definition with oldPath replaced by
// newPath inside the string elements of the args array. Other fields are
// untouched.
func rewriteArgs(def config.ServerDefinition, oldPath, newPath string) config.ServerDefinition {
	rawArgs, ok := def["args"].([]any)
	if !ok || oldPath == "" || oldPath == newPath {
		return def
	}

	out := make(config.ServerDefinition, len(def))
	for k, v := range def {
		out[k] = v
	}
	args := make([]any, len(rawArgs))
	for i, arg := range rawArgs {
		if s, ok := arg.(string); ok {
			args[i] = strings.ReplaceAll(s, oldPath, newPath)
		} else {
			args[i] = arg
		}
	}
	out["args"] = args
	return out
}

// readDocument loads the local file as raw JSON keyed at the top level, plus
// the decoded mcpServers map. A missing file reads as an empty document.
func readDocument(path string) (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(err, "failed to read %s", path)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, &config.ConfigParseError{Path: path, Err: err}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := doc[serversKey]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, nil, &config.ConfigParseError{Path: path, Err: err}
		}
	}

	return doc, servers, nil
}

// writeDocument serializes the document with the updated servers map and
// replaces the target file atomically.
func writeDocument(path string, doc map[string]json.RawMessage, servers map[string]json.RawMessage) error {
	raw, err := json.Marshal(servers)
	if err != nil {
		return errors.Wrap(err, "failed to encode mcpServers")
	}
	doc[serversKey] = raw

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	content = append(content, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", path)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to close %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}
