package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"kindsort/internal/config"
	"kindsort/internal/csharp"
	"kindsort/internal/errors"
	"kindsort/internal/paths"
	"kindsort/internal/policy"
	"kindsort/internal/scan"
	"kindsort/internal/slogutil"
)

// env is what every command needs: the repository, its configuration and a logger.
type env struct {
	root    string
	config  *config.Config
	factory *slogutil.LoggerFactory
	logger  *slog.Logger
}

// loadEnv finds the repository root from the working directory and loads its
// configuration. Logs go to the command's stderr.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.New(errors.InternalError, "Failed to get current directory", err)
	}
	root, err := paths.FindRepoRoot(cwd)
	if err != nil {
		return nil, errors.New(errors.InternalError, "Failed to find repository root", err)
	}

	dir := configDir
	if dir == "" {
		dir = filepath.Join(root, config.Dir)
	}
	cfg, err := config.LoadConfigFrom(dir)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "Failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "Invalid configuration", err)
	}

	var cliLevel *slog.Level
	if verbosity > 0 || quiet {
		level := slogutil.LevelFromVerbosity(verbosity, quiet)
		cliLevel = &level
	}
	factory := slogutil.NewLoggerFactory(root, cfg, cliLevel)

	return &env{
		root:    root,
		config:  cfg,
		factory: factory,
		logger:  factory.CommandLogger(cmd.ErrOrStderr()),
	}, nil
}

// loadPolicy reads the policy from override, or from the configured policy file. A
// missing configured file means the default policy; a missing override is an error.
// Malformed documents fall back to defaults field by field and are logged.
func (e *env) loadPolicy(override string) (policy.Policy, error) {
	path := override
	if path == "" {
		path = e.config.PolicyPath(e.root)
	} else if !filepath.IsAbs(path) {
		if cwd, err := os.Getwd(); err == nil {
			path = filepath.Join(cwd, path)
		}
	}

	p, err := policy.LoadFile(path)
	switch {
	case err == nil:
		e.logger.Debug("Loaded policy", "path", path)
	case stderrors.Is(err, fs.ErrNotExist) && override == "":
		e.logger.Debug("No policy file, using defaults", "path", path)
	case stderrors.Is(err, fs.ErrNotExist):
		return p, errors.New(errors.FileNotFound, "Policy file not found", err).WithDetails(path)
	default:
		e.logger.Warn("Policy file is malformed, using defaults", "path", path, "error", err)
	}
	return p, nil
}

func (e *env) scanner(p policy.Policy) *scan.Scanner {
	return scan.New(e.root, e.config, p, e.logger)
}

func (e *env) close() {
	if err := e.factory.Close(); err != nil {
		e.logger.Debug("Failed to close log files", "error", err)
	}
}

// newContext returns a context canceled on interrupt.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// wrapScanError maps scanner failures to coded errors.
func wrapScanError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, csharp.ErrNoCGO):
		return errors.New(errors.ParserUnavailable, "C# parsing is unavailable in this build", err)
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.New(errors.FileNotFound, "Path not found", err)
	case stderrors.Is(err, context.Canceled):
		return errors.New(errors.InternalError, "Interrupted", err)
	default:
		return errors.New(errors.InternalError, "Scan failed", err)
	}
}

// fileErrors prints per-file failures to stderr and returns a ParseFailed error when
// there are any. Messages already carry the path.
func (e *env) fileErrors(cmd *cobra.Command, failures []scan.FileError) error {
	if len(failures) == 0 {
		return nil
	}
	for _, f := range failures {
		fmt.Fprintln(cmd.ErrOrStderr(), f.Message)
	}
	return errors.New(errors.ParseFailed, fmt.Sprintf("%d file(s) could not be processed", len(failures)), nil).
		WithDetails(failures)
}
