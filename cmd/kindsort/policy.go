package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kindsort/internal/errors"
	"kindsort/internal/policy"
)

var (
	policyFormat string
	policyFile   string
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the effective ordering policy",
	Long: `Print the ordering policy after defaults have been applied to every missing or
malformed field. The policy file may be JSON, YAML or TOML, chosen by extension.

Examples:
  kindsort policy
  kindsort policy --format yaml
  kindsort policy --policy team.toml --format json`,
	Args: cobra.NoArgs,
	RunE: runPolicy,
}

func init() {
	policyCmd.Flags().StringVar(&policyFormat, "format", "json", "Output format (json, yaml, toml)")
	policyCmd.Flags().StringVar(&policyFile, "policy", "", "Policy file (default: configured policyFile)")
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	p, err := e.loadPolicy(policyFile)
	if err != nil {
		return err
	}

	data, err := policy.Encode(p, policy.Format(policyFormat))
	if err != nil {
		return errors.New(errors.InternalError, "Failed to encode policy", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	return nil
}
