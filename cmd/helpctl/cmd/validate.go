package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/onlinehelp/internal/directive"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <declarations>",
		Short: "Validate a declarations file",
		Long: `Validate a declarations file and everything it includes. The check covers
the file format, required fields, duplicated topics, unknown factories and
the existence of every referenced topic file.

Output:
  ✅ Success - Shows the number of declared topics
  ❌ Error   - Shows the first problem found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			decls, err := directive.NewLoader(opts.fs).Load(args[0])
			if err == nil {
				err = applyForValidation(opts, args[0], decls)
			}
			if err != nil {
				fmt.Fprintf(out, "❌ Declarations validation failed: %v\n", err)
				return err
			}

			fmt.Fprintf(out, "✅ %s is valid\n", args[0])
			fmt.Fprintf(out, "   Files:  %d\n", len(decls.Files))
			fmt.Fprintf(out, "   Topics: %d\n", len(decls.Topics))
			return nil
		},
	}
}

// applyForValidation registers the declarations on a scratch help root. The
// declarations file itself stands in for the welcome page when none is set.
func applyForValidation(opts *options, path string, decls *directive.Declarations) error {
	welcome := opts.welcome
	if welcome == "" {
		welcome = path
	}
	help, err := onlinehelp.New(opts.fs, opts.title, welcome)
	if err != nil {
		return err
	}
	return directive.Apply(help, decls)
}
