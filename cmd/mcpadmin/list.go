package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/mcpadmin/pkg/catalog"
	"github.com/jingkaihe/mcpadmin/pkg/presenter"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	JSONOutput bool
}

// NewListConfig creates a new ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{
		JSONOutput: false,
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all MCP servers across all projects",
	Long: `List every MCP server found in ~/.claude.json and in per-project
.mcp.json files, marking the ones enabled in the current project and the ones
whose definitions diverge between sources.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := getListConfigFromFlags(cmd)
		return runList(cmd.Context(), config)
	},
}

func init() {
	listDefaults := NewListConfig()
	listCmd.Flags().Bool("json", listDefaults.JSONOutput, "Output in JSON format")
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()

	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}

	return config
}

func runList(ctx context.Context, config *ListConfig) error {
	cat, resolver, cwd, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}

	if config.JSONOutput {
		return renderListJSON(cat, resolver)
	}

	if cat.Len() == 0 {
		presenter.Info("No MCP servers found across any projects.")
		return nil
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	greenBold := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	bold.Println("MCP Servers:")
	fmt.Println()

	for _, name := range cat.Names() {
		pairs, _ := cat.Get(name)
		enabled := resolver.Enabled(name)
		multiple := resolver.HasMultipleConfigs(name)

		marker := dim.Sprint("○")
		nameDisplay := name
		if enabled {
			marker = green.Sprint("●")
			nameDisplay = greenBold.Sprint(name)
		}
		diffMarker := ""
		if multiple {
			diffMarker = " " + yellow.Sprint("(multiple configs)")
		}
		fmt.Printf("  %s %s%s\n", marker, nameDisplay, diffMarker)

		summary := catalog.Summarize(pairs[0].Definition)
		if multiple {
			fmt.Printf("    %s %s %s\n", dim.Sprint(summary.TargetLabel()), summary.Target(), dim.Sprint("(varies)"))
		} else {
			fmt.Printf("    %s %s\n", dim.Sprint(summary.TargetLabel()), summary.Target())
		}

		fmt.Printf("    %s\n", dim.Sprint("used in:"))
		for _, pair := range pairs {
			if pair.Source.Project == cwd {
				fmt.Printf("      %s %s\n", green.Sprint("→"), green.Sprintf("%s (current)", displaySource(pair.Source)))
			} else {
				fmt.Printf("      - %s\n", displaySource(pair.Source))
			}
		}
		fmt.Println()
	}

	dim.Printf("Total: %d unique MCP servers across all projects\n", cat.Len())
	dim.Printf("Current project: %d servers enabled\n", resolver.EnabledCount())
	return nil
}

func renderListJSON(cat *catalog.Catalog, resolver *catalog.Resolver) error {
	data := make([]map[string]any, 0, cat.Len())
	for _, name := range cat.Names() {
		pairs, _ := cat.Get(name)
		sources := make([]string, len(pairs))
		for i, pair := range pairs {
			sources[i] = pair.Source.String()
		}
		data = append(data, map[string]any{
			"name":            name,
			"enabled":         resolver.Enabled(name),
			"multipleConfigs": resolver.HasMultipleConfigs(name),
			"sources":         sources,
		})
	}
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON output")
	}
	fmt.Println(string(output))
	return nil
}
