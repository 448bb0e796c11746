package main

import (
	"github.com/spf13/cobra"

	"kindsort/internal/version"
)

var (
	verbosity int
	quiet     bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "kindsort",
	Short: "kindsort - C# member ordering",
	Long: `kindsort checks and fixes the order of members inside C# types and namespaces.

Members are ordered by kind, then access level, then const, static, readonly and
override, then name. The order is configured in csharpkindsorter.json at the
repository root.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("kindsort version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Directory holding config.json (default: <repo>/.kindsort)")
}
