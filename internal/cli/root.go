// Package cli implements the fmrd command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/fmrd/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries what the root command resolves for its subcommands.
type app struct {
	flags     rootFlags
	logger    *slog.Logger
	config    *viper.Viper
	configDir string
}

// exitError is a command failure with the process exit code it maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps a command error to a process exit code. Errors that carry no
// code come from cobra's argument and flag parsing.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "fmrd" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.Default()}
	root := &cobra.Command{
		Use:   "fmrd",
		Short: "Football match result database entry tool",
		Long: "fmrd manages the catalogs of a football match result database and\n" +
			"checks whether each data-entry workflow has the records it needs.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&a.flags.verbose, "verbose", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newLineupCmd(a))
	root.AddCommand(newOpenCmd(a))
	root.AddCommand(newEntitiesCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newDeleteCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "fmrd:", err)
	}
	return exitCode(err)
}

// setup builds the logger and loads config.yaml before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	session, err := uuid.NewV7()
	if err != nil {
		session = uuid.New()
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("session", session.String()))

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.configDir = configDir
	a.config = cfg
	a.logger.Debug("config loaded",
		slog.String("config_dir", configDir),
		slog.String("backend", cfg.GetString(cfgKeyBackend)),
	)
	return nil
}
