package util

import (
	"context"

	"github.com/kiosk404/echonote/internal/notectl/ui"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
	"github.com/kiosk404/echonote/pkg/logger"
)

// WithAssistant opens an assistant wired to feed, runs fn and closes it.
func WithAssistant(ctx context.Context, f Factory, feed *ui.StateFeed, fn func(Assistant) error) error {
	var observer func(entity.OrchestratorState)
	if feed != nil {
		observer = feed.Observe
	}
	a, err := f.NewAssistant(ctx, observer)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("[notectl] closing session: %v", err)
		}
	}()
	return fn(a)
}

// RunTool invokes one tool and prints its formatted result under title.
func RunTool(ctx context.Context, f Factory, streams genericclioptions.IOStreams, title, toolName string, args map[string]any) error {
	feed := &ui.StateFeed{}
	return WithAssistant(ctx, f, feed, func(a Assistant) error {
		reply, err := ui.RunWithSpinner(ctx, streams, feed, "Running "+toolName+"...", func(ctx context.Context) string {
			return a.Invoke(ctx, toolName, args)
		})
		if err != nil {
			return err
		}
		ui.NewPrinter(streams.Out).Answer(title, reply)
		return nil
	})
}
