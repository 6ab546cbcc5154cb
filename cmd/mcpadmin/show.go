package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/mcpadmin/pkg/catalog"
	"github.com/jingkaihe/mcpadmin/pkg/config"
)

// ShowConfig holds configuration for the show command
type ShowConfig struct {
	Unified    bool
	JSONOutput bool
}

// NewShowConfig creates a new ShowConfig with default values
func NewShowConfig() *ShowConfig {
	return &ShowConfig{
		Unified:    false,
		JSONOutput: false,
	}
}

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show details of a specific MCP server",
	Long: `Show every source that defines the named MCP server along with its
definition. When the definitions diverge, the differing fields are listed
relative to the first source.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getShowConfigFromFlags(cmd)
		return runShow(cmd.Context(), args[0], config)
	},
}

func init() {
	showDefaults := NewShowConfig()
	showCmd.Flags().Bool("unified", showDefaults.Unified, "Also render divergent definitions as a unified diff")
	showCmd.Flags().Bool("json", showDefaults.JSONOutput, "Output in JSON format")
}

func getShowConfigFromFlags(cmd *cobra.Command) *ShowConfig {
	config := NewShowConfig()

	if unified, err := cmd.Flags().GetBool("unified"); err == nil {
		config.Unified = unified
	}
	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}

	return config
}

func runShow(ctx context.Context, name string, config *ShowConfig) error {
	cat, resolver, _, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}

	pairs, ok := cat.Get(name)
	if !ok {
		return &catalog.ServerNotFoundError{Name: name}
	}
	divergence := catalog.Analyze(pairs)

	if config.JSONOutput {
		return renderShowJSON(name, pairs, resolver, divergence)
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	bold.Printf("MCP Server: %s\n", name)
	if resolver.Enabled(name) {
		fmt.Printf("  %s %s\n", dim.Sprint("Status:"), green.Sprint("enabled in current project"))
	} else {
		fmt.Printf("  %s %s\n", dim.Sprint("Status:"), yellow.Sprint("not enabled in current project"))
	}
	fmt.Println()

	diffsBySource := make(map[catalog.SourceID][]catalog.FieldDiff, len(divergence.Diffs))
	for _, diff := range divergence.Diffs {
		diffsBySource[diff.Source] = diff.Fields
	}

	for i, pair := range pairs {
		bold.Printf("  Configuration #%d: ", i+1)
		dim.Println(displaySource(pair.Source))

		body, err := renderDefinition(pair.Definition)
		if err != nil {
			return err
		}
		fmt.Println(indent(body, "    "))

		if fields := diffsBySource[pair.Source]; len(fields) > 0 {
			yellow.Printf("    differs from %s:\n", displaySource(divergence.Reference.Source))
			for _, field := range fields {
				yellow.Printf("      %s: %s → %s\n", field.Path, renderValue(field.Left), renderValue(field.Right))
			}
			if config.Unified {
				refBody, err := renderDefinition(divergence.Reference.Definition)
				if err != nil {
					return err
				}
				diff := udiff.Unified(
					divergence.Reference.Source.String(),
					pair.Source.String(),
					refBody+"\n",
					body+"\n",
				)
				fmt.Println(indent(diff, "    "))
			}
		}
		fmt.Println()
	}

	return nil
}

func renderShowJSON(name string, pairs []catalog.Pair, resolver *catalog.Resolver, divergence catalog.Divergence) error {
	configurations := make([]map[string]any, len(pairs))
	for i, pair := range pairs {
		configurations[i] = map[string]any{
			"source":     pair.Source.String(),
			"definition": pair.Definition,
		}
	}
	data := map[string]any{
		"name":           name,
		"enabled":        resolver.Enabled(name),
		"identical":      divergence.Identical,
		"configurations": configurations,
	}
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON output")
	}
	fmt.Println(string(output))
	return nil
}

// renderDefinition pretty-prints a definition deterministically (sorted keys).
func renderDefinition(def config.ServerDefinition) (string, error) {
	body, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to render definition")
	}
	return string(body), nil
}

// renderValue formats a diff value, keeping the absent sentinel readable.
func renderValue(v any) string {
	if v == catalog.Absent {
		return "(absent)"
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
