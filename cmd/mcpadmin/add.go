package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/mcpadmin/pkg/catalog"
	"github.com/jingkaihe/mcpadmin/pkg/config"
	"github.com/jingkaihe/mcpadmin/pkg/mutate"
	"github.com/jingkaihe/mcpadmin/pkg/presenter"
)

// AddConfig holds configuration for the add command
type AddConfig struct {
	From         string
	RewritePaths bool
}

// NewAddConfig creates a new AddConfig with default values
func NewAddConfig() *AddConfig {
	return &AddConfig{
		From:         "",
		RewritePaths: false,
	}
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an MCP server to the current project",
	Long: `Copy the named MCP server's definition into the current project's
.mcp.json. When the server is defined in more than one place, --from picks the
source by partial project-path match; it must match exactly one source.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := getAddConfigFromFlags(cmd)
		return runAdd(cmd.Context(), args[0], config)
	},
}

func init() {
	addDefaults := NewAddConfig()
	addCmd.Flags().String("from", addDefaults.From, "Source project to copy the configuration from (partial path match)")
	addCmd.Flags().Bool("rewrite-paths", addDefaults.RewritePaths, "Rewrite the source project path to the current project inside string args")
}

func getAddConfigFromFlags(cmd *cobra.Command) *AddConfig {
	config := NewAddConfig()

	if from, err := cmd.Flags().GetString("from"); err == nil {
		config.From = from
	}
	if rewritePaths, err := cmd.Flags().GetBool("rewrite-paths"); err == nil {
		config.RewritePaths = rewritePaths
	}

	return config
}

func runAdd(ctx context.Context, name string, cfg *AddConfig) error {
	cat, _, cwd, err := loadWorkspace(ctx)
	if err != nil {
		return err
	}

	result, err := mutate.Add(cat, cwd, name, mutate.AddOptions{
		From:         cfg.From,
		RewritePaths: cfg.RewritePaths,
	})
	if err != nil {
		if ambiguous, ok := err.(*mutate.AmbiguousSourceError); ok {
			printCandidates(name, ambiguous.Candidates)
		}
		return err
	}

	presenter.Success(fmt.Sprintf("Added MCP server '%s' to %s", name, shortenPath(config.LocalPath(cwd))))

	dim := color.New(color.Faint)
	summary := catalog.Summarize(result.Definition)
	fmt.Printf("  %s %s\n", dim.Sprint(summary.TargetLabel()), summary.Target())
	if len(summary.Args) > 0 {
		fmt.Printf("  %s %q\n", dim.Sprint("args:"), summary.Args)
	}
	fmt.Printf("  %s %s\n", dim.Sprint("copied from:"), displaySource(result.Source))
	return nil
}

// printCandidates lists the sources the user can pass to --from so an
// ambiguous add can be retried precisely.
func printCandidates(name string, candidates []catalog.SourceID) {
	presenter.Info(fmt.Sprintf("Sources defining '%s':", name))
	for _, candidate := range candidates {
		presenter.Info(fmt.Sprintf("  → %s", displaySource(candidate)))
	}
	presenter.Info(fmt.Sprintf("Example: mcpadmin add %s --from <partial-path>", name))
}
