package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/mcpadmin/pkg/config"
	"github.com/jingkaihe/mcpadmin/pkg/mutate"
	"github.com/jingkaihe/mcpadmin/pkg/presenter"
)

var removeCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove an MCP server from the current project",
	Long: `Delete the named MCP server from the current project's .mcp.json.
Removing a server that is not present is a no-op and still succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd.Context(), args[0])
	},
}

func runRemove(ctx context.Context, name string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	result, err := mutate.Remove(cwd, name)
	if err != nil {
		return err
	}

	localPath := shortenPath(config.LocalPath(cwd))
	if result.Removed {
		presenter.Success(fmt.Sprintf("Removed MCP server '%s' from %s", name, localPath))
	} else {
		presenter.Info(fmt.Sprintf("MCP server '%s' was not present in %s", name, localPath))
	}
	return nil
}
