package notes

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/service"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

func NewCmdNotes(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List and read notes without going through the model",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(newCmdList(f, ioStreams), newCmdRead(f, ioStreams))
	return cmd
}

func newCmdList(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the files in the notes folder",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(util.RunTool(contextOf(cmd), f, ioStreams, "Notes", f.Options().Assistant.ListTool, map[string]any{}))
		},
	}
}

type ReadOptions struct {
	Filename string

	factory util.Factory
	genericclioptions.IOStreams
}

func newCmdRead(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := &ReadOptions{factory: f, IOStreams: ioStreams}
	return &cobra.Command{
		Use:   "read FILENAME",
		Short: "Show the content of a note",
		Long: heredoc.Doc(`
			Show the content of a note. PDF files are read with the PDF tool,
			everything else with the text tool.`),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			o.Filename = args[0]
			util.CheckErr(o.Run(contextOf(cmd)))
		},
	}
}

func (o *ReadOptions) Run(ctx context.Context) error {
	assistant := o.factory.Options().Assistant
	tool := service.ReaderFor(o.Filename, assistant.TextReader, assistant.PDFReader)
	return util.RunTool(ctx, o.factory, o.IOStreams, o.Filename, tool, map[string]any{"filename": o.Filename})
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
