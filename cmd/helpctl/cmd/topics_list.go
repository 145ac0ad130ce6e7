package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/onlinehelp/cmd/helpctl/internal/format"
)

func newTopicsListCmd(opts *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered topics",
		Long: `List all topics registered by the declarations, in registration order.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			help, err := opts.loadHelp()
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				return format.TopicsJSON(cmd.OutOrStdout(), help.Topics())
			case "table":
				return format.TopicsTable(cmd.OutOrStdout(), help.Topics())
			default:
				return fmt.Errorf("unsupported output format '%s'. Use 'table' or 'json'", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json)")
	return cmd
}
