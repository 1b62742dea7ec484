package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/echonote/internal/notectl/cmd/ask"
	"github.com/kiosk404/echonote/internal/notectl/cmd/calendar"
	"github.com/kiosk404/echonote/internal/notectl/cmd/chat"
	"github.com/kiosk404/echonote/internal/notectl/cmd/notes"
	"github.com/kiosk404/echonote/internal/notectl/cmd/tools"
	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/internal/notemind/options"
	"github.com/kiosk404/echonote/internal/pkg/config"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
	"github.com/kiosk404/echonote/pkg/utils/cliflag"
	"github.com/kiosk404/echonote/pkg/version"
)

const (
	groupBasic = "basic"
	groupTools = "tools"
)

// Execute runs notectl on the process streams and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	util.CheckErr(NewDefaultNoteCtlCommand().ExecuteContext(ctx))
}

// NewDefaultNoteCtlCommand creates the `notectl` command with default arguments.
func NewDefaultNoteCtlCommand() *cobra.Command {
	return NewNoteCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewNoteCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := options.NewOptions()
	var cfgFile, model string

	cmds := &cobra.Command{
		Use:   "notectl",
		Short: "notectl answers requests about your notes and calendar",
		Long: heredoc.Docf(`%s
			notectl sends natural-language requests to a language model that
			picks one of the tools served over MCP, by default the notesd
			notes and calendar server, and shows the result.

			Configuration is read from notectl.yaml in ./, ./conf or ~/.echonote,
			from ECHONOTE_* environment variables and from a .env file.`, Banner()),
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return completeOptions(cmd, cfgFile, opts)
		},
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(errOut)

	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)
	fss := opts.Flags()
	for _, name := range fss.Order {
		flags.AddFlagSet(fss.FlagSets[name])
	}
	flags.StringVarP(&cfgFile, "config", "c", cfgFile, "Read configuration from the specified YAML `FILE`.")
	flags.StringVar(&model, "model", model, "Model to use as provider/model, overriding models.default-provider and models.default-model.")

	ioStreams := genericclioptions.IOStreams{In: in, Out: out, ErrOut: errOut}
	f := util.NewFactory(opts, &model)

	cmds.AddGroup(
		&cobra.Group{ID: groupBasic, Title: "Basic Commands:"},
		&cobra.Group{ID: groupTools, Title: "Tool Commands:"},
	)
	for _, c := range []*cobra.Command{ask.NewCmdAsk(f, ioStreams), chat.NewCmdChat(f, ioStreams)} {
		c.GroupID = groupBasic
		cmds.AddCommand(c)
	}
	for _, c := range []*cobra.Command{tools.NewCmdTools(f, ioStreams), notes.NewCmdNotes(f, ioStreams), calendar.NewCmdCalendar(f, ioStreams)} {
		c.GroupID = groupTools
		cmds.AddCommand(c)
	}
	return cmds
}

// completeOptions layers config file, environment and flags onto opts.
func completeOptions(cmd *cobra.Command, cfgFile string, opts *options.Options) error {
	config.LoadConfig(cfgFile, "notectl")
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := config.Unmarshal(opts); err != nil {
		return err
	}
	if err := opts.Complete(); err != nil {
		return err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
