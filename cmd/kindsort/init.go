package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kindsort/internal/config"
	"kindsort/internal/errors"
	"kindsort/internal/paths"
	"kindsort/internal/policy"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize kindsort configuration",
	Long: `Create .kindsort/config.json and a default csharpkindsorter.json in the repository root.
Existing files are left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration and policy files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.New(errors.InternalError, "Failed to get current directory", err)
	}
	root, err := paths.FindRepoRoot(cwd)
	if err != nil {
		return errors.New(errors.InternalError, "Failed to find repository root", err)
	}
	out := cmd.OutOrStdout()

	cfg := config.DefaultConfig()
	configPath := filepath.Join(root, config.Dir, "config.json")
	if exists(configPath) && !initForce {
		fmt.Fprintf(out, "Configuration exists at %s\n", configPath)
		// Keep the configured policy file name
		if loaded, lerr := config.LoadConfig(root); lerr == nil {
			cfg = loaded
		}
	} else {
		if err := cfg.Save(root); err != nil {
			return errors.New(errors.WriteFailed, "Failed to write config file", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	}

	policyPath := cfg.PolicyPath(root)
	if exists(policyPath) && !initForce {
		fmt.Fprintf(out, "Policy exists at %s\n", policyPath)
		fmt.Fprintln(out, "\nRun 'kindsort init --force' to overwrite.")
		return nil
	}
	data, err := policy.Encode(policy.Default(), policy.FormatFromPath(policyPath))
	if err != nil {
		return errors.New(errors.InternalError, "Failed to encode policy", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if err := os.WriteFile(policyPath, data, 0644); err != nil {
		return errors.New(errors.WriteFailed, "Failed to write policy file", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", policyPath)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
