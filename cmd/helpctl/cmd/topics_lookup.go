package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/onlinehelp/internal/component"
)

func newTopicsLookupCmd(opts *options) *cobra.Command {
	var (
		ifaces []string
		view   string
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find the topic registered for interfaces and a view",
		Long: `Look up the topic the context help shows for an object providing the given
interfaces, in order, and optionally a view name. Without a match the help
root would be shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decl := make(component.Declaration, 0, len(ifaces))
			for _, name := range ifaces {
				iface := component.Interface(name)
				if !iface.Valid() {
					return fmt.Errorf("invalid interface name %q", name)
				}
				decl = append(decl, iface)
			}

			help, err := opts.loadHelp()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			topic := help.TopicFor(decl, view)
			if topic == nil {
				_, err := fmt.Fprintf(out, "No topic found, context help shows the root %q\n", help.Title())
				return err
			}
			_, err = fmt.Fprintf(out, "%s\t%s\n", topic.TopicPath(), topic.Title())
			return err
		},
	}

	cmd.Flags().StringSliceVar(&ifaces, "for", nil, "Interface provided by the object (repeatable, in declaration order)")
	cmd.Flags().StringVar(&view, "view", "", "View name")
	_ = cmd.MarkFlagRequired("for")
	return cmd
}
