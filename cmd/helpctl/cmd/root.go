package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/onlinehelp/internal/config"
	"github.com/nfrund/onlinehelp/internal/directive"
	"github.com/nfrund/onlinehelp/internal/logging"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

// options are the persistent flags shared by all commands.
type options struct {
	fs           afero.Fs
	declarations string
	welcome      string
	title        string
}

// NewRootCmd builds the helpctl command tree. Flag defaults come from the
// same environment variables the server reads.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "helpctl",
		Short: "Inspect and validate online help topics",
		Long: `helpctl loads help topic declarations the same way the help server does
and lets you inspect the resulting topic tree.

Available commands:
  topics      List, show and look up registered help topics
  validate    Check a declarations file and the files it references

Use "helpctl [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// logs go to stderr so they never mix with command output
			slog.SetDefault(logging.NewLogger(cmd.ErrOrStderr(), os.Getenv("LOG_FORMAT"), envOr("LOG_LEVEL", "warn")))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.declarations, "declarations", "d", os.Getenv("HELP_DECLARATIONS"), "Declarations file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVarP(&opts.welcome, "welcome", "w", os.Getenv("HELP_WELCOME_PATH"), "Welcome page of the help root")
	rootCmd.PersistentFlags().StringVar(&opts.title, "title", envOr("HELP_ROOT_TITLE", config.DefaultRootTitle), "Title of the help root")

	rootCmd.AddCommand(newTopicsCmd(opts), newValidateCmd(opts))
	return rootCmd
}

// Execute executes the root command
func Execute() {
	_ = godotenv.Load()
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadHelp builds the help tree from the flags.
func (o *options) loadHelp() (*onlinehelp.OnlineHelp, error) {
	if o.welcome == "" {
		return nil, fmt.Errorf("a welcome page is required: use --welcome or set HELP_WELCOME_PATH")
	}
	svc, err := directive.NewService(directive.Options{
		Fs:           o.fs,
		Title:        o.title,
		WelcomePath:  o.welcome,
		Declarations: o.declarations,
	})
	if err != nil {
		return nil, err
	}
	return svc.Help(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
