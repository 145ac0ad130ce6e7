package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/onlinehelp/cmd/helpctl/internal/format"
	"github.com/nfrund/onlinehelp/internal/onlinehelp"
	"github.com/nfrund/onlinehelp/internal/rendering"
)

func newTopicsShowCmd(opts *options) *cobra.Command {
	var (
		outputFormat string
		render       bool
	)

	cmd := &cobra.Command{
		Use:   "show <topic-path>",
		Short: "Show a single topic",
		Long: `Show the details of the topic at the given path, e.g. "help1/help2".
With --render the topic content is rendered to HTML instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			help, err := opts.loadHelp()
			if err != nil {
				return err
			}

			topic, ok := help.Topic(args[0])
			if !ok {
				return fmt.Errorf("topic '%s' not found. Use 'helpctl topics list' to see all topics", args[0])
			}

			if !render {
				return format.TopicDetails(cmd.OutOrStdout(), topic, outputFormat)
			}
			return renderTopic(cmd, topic)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&render, "render", false, "Render the topic content to HTML")
	return cmd
}

func renderTopic(cmd *cobra.Command, topic onlinehelp.Topic) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch t := topic.(type) {
	case onlinehelp.SourcedTopic:
		node, err := rendering.NewSources().RenderTopic(ctx, t)
		if err != nil {
			return err
		}
		if err := node.Render(out); err != nil {
			return err
		}
	case onlinehelp.TemplatedTopic:
		component := rendering.NewTemplates().Component(t, rendering.NewTemplateData(t, nil))
		if err := component.Render(ctx, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot render topic of type %T", topic)
	}
	_, err := fmt.Fprintln(out)
	return err
}
