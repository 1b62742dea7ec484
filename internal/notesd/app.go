package notesd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kiosk404/echonote/internal/notesd/options"
	"github.com/kiosk404/echonote/internal/notesd/service/calendar"
	"github.com/kiosk404/echonote/internal/notesd/service/notes"
	"github.com/kiosk404/echonote/internal/notesd/tools"
	"github.com/kiosk404/echonote/pkg/app"
	"github.com/kiosk404/echonote/pkg/logger"
)

const AppName = "notesd"

func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	return app.NewApp(AppName,
		basename,
		app.WithOptions(opts),
		app.WithDescription(heredoc.Doc(`
			notesd serves a folder of text and PDF notes, plus an optional
			Google Calendar, as MCP tools over stdio.

			Run 'notesd auth' once to store a Calendar token, then point an
			MCP client at 'notesd serve'.`)),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(serve(opts)),
		app.WithAction("serve", "Serve the tools over stdin/stdout", serve(opts)),
		app.WithAction("auth", "Authorize Google Calendar access and store the token", authorize(opts)),
	)
}

func serve(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		defer logger.FlushLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		folder, err := notes.NewFolder(opts.Notes)
		if err != nil {
			return err
		}
		cal, err := newCalendarService(ctx, opts.Calendar)
		if err != nil {
			return err
		}

		s := tools.NewServer(opts.Server, folder, cal)
		logger.Info("[%s] serving %s on stdio", basename, folder.Root())
		err = server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

// newCalendarService returns nil when the calendar is disabled. Missing
// credentials still yield a service whose tools report the problem.
func newCalendarService(ctx context.Context, opts *options.CalendarOptions) (*calendar.Service, error) {
	if !opts.Enabled {
		return nil, nil
	}
	api, err := calendar.NewGoogleEvents(ctx, opts)
	if err != nil && !errors.Is(err, calendar.ErrNotAuthorized) {
		return nil, err
	}
	return calendar.NewService(api, opts)
}

func authorize(opts *options.Options) app.RunFunc {
	return func(_ string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := calendar.LoadOAuthConfig(opts.Calendar.CredentialsFile, opts.Calendar.Scopes)
		if err != nil {
			return err
		}
		tok, err := calendar.Authorize(ctx, cfg, func(url string) {
			fmt.Fprintf(os.Stderr, "Open the following URL in your browser to grant calendar access:\n\n  %s\n\n", url)
		})
		if err != nil {
			return err
		}
		if err := calendar.SaveToken(opts.Calendar.TokenFile, tok); err != nil {
			return err
		}
		logger.Info("[Calendar] token stored in %s", opts.Calendar.TokenFile)
		return nil
	}
}
