package cmd

import (
	"github.com/spf13/cobra"
)

// newTopicsCmd builds the topics command and its subcommands.
func newTopicsCmd(opts *options) *cobra.Command {
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Explore registered help topics",
		Long: `The topics command loads the declarations and inspects the resulting help tree.

Available subcommands:
  list      List all registered topics
  show      Show one topic, optionally rendered to HTML
  lookup    Find the topic shown as context help for an interface and view

Examples:
  # List all topics
  helpctl topics list -w help/welcome.stx -d help/help.yaml

  # Show a topic and render its content
  helpctl topics show help1/help2 --render

  # Which topic does the contents view of the root folder show?
  helpctl topics lookup --for site.IRootFolder --view contents.html`,
	}

	topicsCmd.AddCommand(
		newTopicsListCmd(opts),
		newTopicsShowCmd(opts),
		newTopicsLookupCmd(opts),
	)
	return topicsCmd
}
