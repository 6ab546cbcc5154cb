// Package config reads the MCP server configuration sources: the per-user
// global file (~/.claude.json) that maps project paths to their mcpServers,
// and the per-project local .mcp.json files. Reading is tolerant of missing
// files; malformed documents abort with a ConfigParseError.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// LocalFileName is the per-project configuration file searched for in each
// known project root.
const LocalFileName = ".mcp.json"

// ServerDefinition is a single MCP server's launch/connection configuration
// as found in a source document. It is kept as the raw decoded JSON object so
// that unknown fields survive a round trip; comparison is deep and structural.
type ServerDefinition map[string]any

// ProjectConfig is the per-project object inside the global file's projects map.
type ProjectConfig struct {
	MCPServers map[string]ServerDefinition `json:"mcpServers"`
}

// GlobalConfig models the per-user global file. Only the projects map is
// interpreted; the file commonly carries many other keys which this tool
// never touches.
type GlobalConfig struct {
	Projects map[string]ProjectConfig `json:"projects"`
}

// LocalConfig models a per-project .mcp.json file.
type LocalConfig struct {
	MCPServers map[string]ServerDefinition `json:"mcpServers"`
}

// Sources holds everything the reader found, keyed for the catalog builder.
type Sources struct {
	GlobalPath string
	Global     *GlobalConfig
	// Locals maps project path to its parsed .mcp.json.
	Locals map[string]*LocalConfig
}

// ConfigParseError reports a malformed source document.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// GlobalPath resolves the global file location. The viper key "claude_json"
// (MCPADMIN_CLAUDE_JSON) overrides the default of ~/.claude.json.
func GlobalPath() (string, error) {
	if p := viper.GetString("claude_json"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude.json"), nil
}

// LocalPath returns the .mcp.json path for a project root.
func LocalPath(projectDir string) string {
	return filepath.Join(projectDir, LocalFileName)
}

// LoadGlobal reads and parses the global file. A missing file yields
// (nil, nil); a parse failure yields a ConfigParseError.
func LoadGlobal(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// LoadLocal reads and parses a project's .mcp.json. A missing file yields
// (nil, nil); a parse failure yields a ConfigParseError.
func LoadLocal(path string) (*LocalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cfg LocalConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Load reads the global file plus every candidate local file: one per project
// root named in the global projects map, and the current working directory.
// Missing files are skipped silently. Parse failures across local files are
// aggregated so the user sees every broken document at once; any failure
// aborts (no partial catalog).
func Load(cwd string) (*Sources, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	global, err := LoadGlobal(globalPath)
	if err != nil {
		return nil, err
	}

	candidates := map[string]struct{}{}
	if global != nil {
		for projectPath := range global.Projects {
			candidates[projectPath] = struct{}{}
		}
	}
	if cwd != "" {
		candidates[cwd] = struct{}{}
	}

	paths := make([]string, 0, len(candidates))
	for p := range candidates {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	sources := &Sources{
		GlobalPath: globalPath,
		Global:     global,
		Locals:     make(map[string]*LocalConfig),
	}

	var parseErrs error
	for _, projectPath := range paths {
		local, err := LoadLocal(LocalPath(projectPath))
		if err != nil {
			parseErrs = multierror.Append(parseErrs, err)
			continue
		}
		if local != nil {
			sources.Locals[projectPath] = local
		}
	}
	if parseErrs != nil {
		return nil, parseErrs
	}

	return sources, nil
}
