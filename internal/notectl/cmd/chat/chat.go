package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/echonote/internal/notectl/cmd/util"
	"github.com/kiosk404/echonote/internal/notectl/ui"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

var quitWords = map[string]bool{"quit": true, "exit": true, "q": true, "/quit": true, "/exit": true}

type ChatOptions struct {
	Prompt string

	factory util.Factory
	genericclioptions.IOStreams
}

func NewChatOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ChatOptions {
	return &ChatOptions{factory: f, IOStreams: ioStreams, Prompt: "> "}
}

func NewCmdChat(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewChatOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "chat",
		DisableFlagsInUseLine: true,
		Short:                 "Start an interactive session",
		Long: heredoc.Doc(`
			Keep one connection to the tool servers open and answer requests as
			they are typed. Every request is handled on its own; nothing is carried
			over between turns.

			Type quit, exit or q (or press Ctrl+D) to leave.`),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}
	return cmd
}

func (o *ChatOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	feed := &ui.StateFeed{}
	return util.WithAssistant(ctx, o.factory, feed, func(a util.Assistant) error {
		p := ui.NewPrinter(o.Out)
		p.Success("Connected: %d tools, model %s", len(a.Tools()), a.Model())
		p.Info("Type your request, or quit to leave.")

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		lines := readLines(ctx, o.In)
		for {
			fmt.Fprint(o.Out, o.Prompt)
			var line string
			var ok bool
			select {
			case <-ctx.Done():
				fmt.Fprintln(o.Out)
				return nil
			case line, ok = <-lines:
			}
			if !ok {
				fmt.Fprintln(o.Out)
				p.Info("Goodbye!")
				return nil
			}

			line = strings.TrimSpace(line)
			switch {
			case line == "":
				continue
			case quitWords[strings.ToLower(line)]:
				p.Info("Goodbye!")
				return nil
			case line == "/clear":
				p.Info("Nothing to clear: requests do not share history.")
				continue
			}

			reply, err := ui.RunWithSpinner(ctx, o.IOStreams, feed, "Thinking...", func(ctx context.Context) string {
				return a.Process(ctx, line)
			})
			if errors.Is(err, context.Canceled) {
				p.Warn("Interrupted.")
				continue
			}
			if err != nil {
				return err
			}
			p.Answer("Answer", reply)

			if !a.Alive() {
				p.Error("The tool server connection was lost.")
				return errno.ErrConnection
			}
		}
	})
}

// readLines feeds the lines of r to a channel so that reading can be
// abandoned when ctx ends.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
