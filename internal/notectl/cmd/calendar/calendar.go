package calendar

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

func NewCmdCalendar(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List and create calendar events without going through the model",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(newCmdList(f, ioStreams), newCmdCreate(f, ioStreams))
	return cmd
}

type ListOptions struct {
	Max int

	factory util.Factory
	genericclioptions.IOStreams
}

func newCmdList(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := &ListOptions{Max: 10, factory: f, IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show upcoming events",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Validate(cmd))
			util.CheckErr(o.Run(contextOf(cmd)))
		},
	}
	cmd.Flags().IntVar(&o.Max, "max", o.Max, "Maximum number of events to show.")
	return cmd
}

func (o *ListOptions) Validate(cmd *cobra.Command) error {
	if o.Max <= 0 {
		return util.UsageErrorf(cmd.CommandPath(), "--max must be positive, got %d", o.Max)
	}
	return nil
}

func (o *ListOptions) Run(ctx context.Context) error {
	return util.RunTool(ctx, o.factory, o.IOStreams, "Calendar", o.factory.Options().Assistant.CalendarListTool, map[string]any{"max_results": o.Max})
}

type CreateOptions struct {
	Summary     string
	Description string
	Start       string
	End         string
	Location    string

	factory util.Factory
	genericclioptions.IOStreams
}

var createExample = heredoc.Doc(`
	# One hour starting an hour from now
	notectl calendar create --summary "Focus time"

	# Explicit times, interpreted in the server's time zone
	notectl calendar create --summary Dentist --start 2024-01-15T14:00:00 --end 2024-01-15T15:00:00 --location "Main St 1"`)

func newCmdCreate(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := &CreateOptions{factory: f, IOStreams: ioStreams}
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an event",
		Example: createExample,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Validate(cmd))
			util.CheckErr(o.Run(contextOf(cmd)))
		},
	}
	cmd.Flags().StringVar(&o.Summary, "summary", o.Summary, "Event title.")
	cmd.Flags().StringVar(&o.Description, "description", o.Description, "Event description.")
	cmd.Flags().StringVar(&o.Start, "start", o.Start, "Start time in ISO format; defaults to one hour from now.")
	cmd.Flags().StringVar(&o.End, "end", o.End, "End time in ISO format; defaults to one hour after start.")
	cmd.Flags().StringVar(&o.Location, "location", o.Location, "Event location.")
	return cmd
}

func (o *CreateOptions) Validate(cmd *cobra.Command) error {
	if o.Summary == "" {
		return util.UsageErrorf(cmd.CommandPath(), "--summary is required")
	}
	return nil
}

// Arguments omits empty optional fields so the server applies its defaults.
func (o *CreateOptions) Arguments() map[string]any {
	args := map[string]any{"summary": o.Summary}
	for k, v := range map[string]string{
		"description": o.Description,
		"start_time":  o.Start,
		"end_time":    o.End,
		"location":    o.Location,
	} {
		if v != "" {
			args[k] = v
		}
	}
	return args
}

func (o *CreateOptions) Run(ctx context.Context) error {
	return util.RunTool(ctx, o.factory, o.IOStreams, "Calendar", o.factory.Options().Assistant.CalendarCreateTool, o.Arguments())
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
