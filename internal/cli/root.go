// Package cli implements the backoffice command-line interface.
//
// Collections live in memory for the life of one process. One-shot commands
// such as create or delete print their outcome and exit; the shell command
// keeps a session open so successive commands see each other's changes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/app"
	"github.com/mesh-intelligence/backoffice/internal/confirm"
	"github.com/mesh-intelligence/backoffice/internal/notify"
	"github.com/mesh-intelligence/backoffice/internal/paths"
	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// cli carries the state shared by every command of one process. The shell
// rebuilds the command tree for each line it reads, which resets the flag
// fields below to their defaults while the session survives.
type cli struct {
	// Global and per-command flags.
	configDir string
	jsonMode  bool
	assumeYes bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	loaded      bool
	resolvedDir string
	cfg         types.Config
	logger      *slog.Logger
	notifier    notify.Notifier
	recorder    *notify.Recorder
	session     *app.Session
	ask         confirm.AskFunc // Set while the shell owns the terminal.
	insideShell bool
}

// NewRootCmd creates the top-level "backoffice" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return (&cli{}).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "backoffice",
		Short:   "Manage users, products, roles, purchase orders and services",
		Long:    "Backoffice lists, searches and edits the in-memory business collections.\nChanges last for the life of the process; use the shell to keep a session open.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().BoolVar(&c.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		c.newVersionCmd(),
		c.newListCmd(),
		c.newShowCmd(),
		c.newFieldsCmd(),
		c.newCreateCmd(),
		c.newUpdateCmd(),
		c.newDeleteCmd(),
		c.newActionCmd(),
		c.newCatalogCmd(),
		c.newExportCmd(),
	)
	if c.insideShell {
		root.AddCommand(c.newNotificationsCmd())
	} else {
		root.AddCommand(c.newInitCmd(), c.newShellCmd())
	}
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup loads the configuration once per process and wires logging and
// notifications. It runs before every command.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.in, c.out, c.errOut = cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	if c.loaded {
		return nil
	}

	dir, err := paths.ResolveConfigDir(c.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	c.resolvedDir = dir
	c.cfg = cfg
	c.logger = newLogger(c.errOut, cfg)
	c.recorder = notify.NewRecorder()
	var toasts notify.Notifier = notify.NewConsole(c.errOut)
	if c.jsonMode {
		toasts = notify.NewLog(c.logger)
	}
	c.notifier = notify.Tee(toasts, c.recorder)
	c.loaded = true
	return nil
}

// openSession builds the session on first use.
func (c *cli) openSession() (*app.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	s, err := app.NewSession(app.Options{
		Config:    c.cfg,
		Notifier:  c.notifier,
		Confirmer: c,
		Logger:    c.logger,
	})
	if err != nil {
		return nil, systemError(fmt.Errorf("open session: %w", err))
	}
	c.session = s
	return s, nil
}

// page resolves an entity page by name or alias.
func (c *cli) page(name string) (app.Page, error) {
	s, err := c.openSession()
	if err != nil {
		return nil, err
	}
	return s.Page(name)
}

// Confirm asks before a delete. --yes or confirm_deletes=false skip the
// question; inside the shell the line editor asks.
func (c *cli) Confirm(ctx context.Context, req confirm.Request, onConfirm func() error) (bool, error) {
	var cf confirm.Confirmer
	switch {
	case c.assumeYes || !c.cfg.ConfirmDeletes:
		cf = confirm.Yes(c.notifier)
	case c.ask != nil:
		cf = confirm.NewAsk(c.ask, c.notifier)
	default:
		cf = confirm.NewPrompt(c.in, c.out, c.notifier)
	}
	return cf.Confirm(ctx, req, onConfirm)
}

// sysError marks a failure of the environment rather than of the input.
type sysError struct{ err error }

func (e sysError) Error() string { return e.err.Error() }
func (e sysError) Unwrap() error { return e.err }

func systemError(err error) error { return sysError{err: err} }

// ExitCode maps an error returned by a command to the process exit code:
// 2 for system failures such as unreadable files, 1 for everything the
// user can fix.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
