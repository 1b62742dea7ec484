package ask

import (
	"context"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/internal/notectl/ui"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

var askExample = heredoc.Doc(`
	# List the notes folder
	notectl ask "list my notes"

	# Let the assistant pick and summarize a document
	notectl ask "summarize my resume"

	# Print the bare answer, e.g. for piping
	notectl ask --raw "what events do I have this week"`)

type AskOptions struct {
	Query string
	Raw   bool

	factory util.Factory
	genericclioptions.IOStreams
}

func NewAskOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *AskOptions {
	return &AskOptions{factory: f, IOStreams: ioStreams}
}

func NewCmdAsk(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewAskOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "ask QUERY",
		DisableFlagsInUseLine: true,
		Short:                 "Answer a single request using the available tools",
		Long: heredoc.Doc(`
			Send one natural-language request to the assistant.

			The model picks a tool from the connected servers, the tool runs and
			its result is shown. Asking what the assistant can do lists the tools.`),
		Example: askExample,
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&o.Raw, "raw", o.Raw, "Print the answer without the panel and markdown styling.")
	return cmd
}

func (o *AskOptions) Complete(args []string) error {
	o.Query = strings.TrimSpace(strings.Join(args, " "))
	return nil
}

func (o *AskOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	feed := &ui.StateFeed{}
	return util.WithAssistant(ctx, o.factory, feed, func(a util.Assistant) error {
		reply, err := ui.RunWithSpinner(ctx, o.IOStreams, feed, "Thinking...", func(ctx context.Context) string {
			return a.Process(ctx, o.Query)
		})
		if err != nil {
			return err
		}
		p := ui.NewPrinter(o.Out)
		if o.Raw {
			p.Plain(reply)
			return nil
		}
		p.Answer("Answer", reply)
		return nil
	})
}
