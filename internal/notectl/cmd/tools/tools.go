package tools

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/internal/notectl/ui"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

type ToolsOptions struct {
	factory util.Factory
	genericclioptions.IOStreams
}

func NewCmdTools(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := &ToolsOptions{factory: f, IOStreams: ioStreams}
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools discovered on the connected servers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}
}

func (o *ToolsOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return util.WithAssistant(ctx, o.factory, nil, func(a util.Assistant) error {
		p := ui.NewPrinter(o.Out)
		p.Info("Model: %s", a.Model())
		p.Tools(a.Tools())
		return nil
	})
}
