package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/mcpadmin/pkg/logger"
	"github.com/jingkaihe/mcpadmin/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("MCPADMIN")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.mcpadmin")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "mcpadmin [name]",
	Short: "Claude Code MCP server manager",
	Long: `mcpadmin aggregates MCP server definitions from ~/.claude.json and
per-project .mcp.json files, shows where each server is configured and whether
the definitions diverge, and copies a chosen definition into the current
project or removes one.

Running with a bare server name is shorthand for 'show <name>'; running with
no arguments lists every server.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 1 {
			return runShow(ctx, args[0], NewShowConfig())
		}
		return runList(ctx, NewListConfig())
	},
}

func bindPersistentFlags(flags *pflag.FlagSet) {
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("claude_json", flags.Lookup("claude-json"))
}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "fmt", "Log format (fmt, json)")
	flags.String("claude-json", "", "Path of the global Claude configuration file (default ~/.claude.json)")
	flags.BoolP("quiet", "q", false, "Suppress non-essential output")
	bindPersistentFlags(flags)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning("Invalid log level, falling back to warn")
			logger.SetLogLevel("warn")
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		if quiet, err := cmd.Flags().GetBool("quiet"); err == nil {
			presenter.SetQuiet(quiet)
		}
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
