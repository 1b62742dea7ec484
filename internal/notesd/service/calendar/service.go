package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/kiosk404/echonote/internal/notesd/options"
	"github.com/kiosk404/echonote/pkg/logger"
)

// EventsAPI is the part of the Calendar API the tools use.
type EventsAPI interface {
	List(ctx context.Context, timeMin time.Time, maxResults int64) ([]*gcal.Event, error)
	Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error)
}

type googleEvents struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleEvents talks to the real Calendar API with the stored token.
// It fails with ErrNotAuthorized when credentials or token are missing.
func NewGoogleEvents(ctx context.Context, opts *options.CalendarOptions, extra ...option.ClientOption) (EventsAPI, error) {
	cfg, err := LoadOAuthConfig(opts.CredentialsFile, opts.Scopes)
	if err != nil {
		logger.Warn("[Calendar] %v", err)
		return nil, ErrNotAuthorized
	}
	tok, err := LoadToken(opts.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("[Calendar] no token at %s, run 'notesd auth' first", opts.TokenFile)
		} else {
			logger.Warn("[Calendar] %v", err)
		}
		return nil, ErrNotAuthorized
	}

	ts := newPersistingTokenSource(ctx, cfg, tok, opts.TokenFile)
	clientOpts := append([]option.ClientOption{option.WithTokenSource(ts)}, extra...)
	svc, err := gcal.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar client: %w", err)
	}
	return &googleEvents{svc: svc, calendarID: opts.CalendarID}, nil
}

// NewEventsAPI wraps an already configured Calendar service.
func NewEventsAPI(svc *gcal.Service, calendarID string) EventsAPI {
	return &googleEvents{svc: svc, calendarID: calendarID}
}

func (g *googleEvents) List(ctx context.Context, timeMin time.Time, maxResults int64) ([]*gcal.Event, error) {
	res, err := g.svc.Events.List(g.calendarID).
		TimeMin(timeMin.UTC().Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (g *googleEvents) Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error) {
	return g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
}

// EventInput is a create_event request. Empty times take defaults.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	StartTime   string
	EndTime     string
}

// Event is an event as returned by list_events.
type Event struct {
	ID          string              `json:"id"`
	Summary     string              `json:"summary"`
	Start       *gcal.EventDateTime `json:"start"`
	End         *gcal.EventDateTime `json:"end"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
}

// Listing and Created are the tool payloads. Failures set only Error.
type Listing struct {
	Success bool    `json:"success,omitempty"`
	Events  []Event `json:"events"`
	Error   string  `json:"error,omitempty"`
}

type Created struct {
	Success  bool   `json:"success,omitempty"`
	EventID  string `json:"event_id,omitempty"`
	HTMLLink string `json:"html_link,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Service implements the calendar tools on top of an EventsAPI.
type Service struct {
	api     EventsAPI
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

func NewService(api EventsAPI, opts *options.CalendarOptions) (*Service, error) {
	loc, err := time.LoadLocation(opts.TimeZone)
	if err != nil {
		return nil, err
	}
	return &Service{api: api, loc: loc, timeout: opts.RequestTimeout, now: time.Now}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) ListUpcoming(ctx context.Context, maxResults int) Listing {
	if s.api == nil {
		return Listing{Error: ErrNotAuthorized.Error()}
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.api.List(ctx, s.now(), int64(maxResults))
	if err != nil {
		return Listing{Error: fmt.Sprintf("Failed to list events: %v", err)}
	}
	events := make([]Event, 0, len(items))
	for _, it := range items {
		events = append(events, Event{
			ID:          it.Id,
			Summary:     it.Summary,
			Start:       orEmpty(it.Start),
			End:         orEmpty(it.End),
			Description: it.Description,
			Location:    it.Location,
		})
	}
	return Listing{Success: true, Events: events}
}

func orEmpty(t *gcal.EventDateTime) *gcal.EventDateTime {
	if t == nil {
		return &gcal.EventDateTime{}
	}
	return t
}

func (s *Service) Create(ctx context.Context, in EventInput) Created {
	if s.api == nil {
		return Created{Error: ErrNotAuthorized.Error()}
	}

	var start, end time.Time
	if in.StartTime != "" {
		t, err := ParseISOTime(in.StartTime, s.loc)
		if err != nil {
			return Created{Error: fmt.Sprintf("Invalid start_time format: %s. Use ISO format (e.g., '2024-01-15T14:00:00')", in.StartTime)}
		}
		start = t
	} else {
		start = s.now().In(s.loc).Add(time.Hour)
	}
	if in.EndTime != "" {
		t, err := ParseISOTime(in.EndTime, s.loc)
		if err != nil {
			return Created{Error: fmt.Sprintf("Invalid end_time format: %s. Use ISO format (e.g., '2024-01-15T15:00:00')", in.EndTime)}
		}
		end = t
	} else {
		end = start.Add(time.Hour)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tz := s.loc.String()
	created, err := s.api.Insert(ctx, &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: tz},
	})
	if err != nil {
		return Created{Error: fmt.Sprintf("Failed to create event: %v", err)}
	}
	logger.Info("[Calendar] created event %s (%s)", created.Id, created.Summary)

	out := Created{
		Success:  true,
		EventID:  created.Id,
		HTMLLink: created.HtmlLink,
		Summary:  created.Summary,
	}
	if created.Start != nil {
		out.Start = created.Start.DateTime
	}
	if created.End != nil {
		out.End = created.End.DateTime
	}
	return out
}

var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseISOTime accepts ISO 8601 timestamps with or without an offset ("Z"
// included). Times without an offset are taken in loc.
func ParseISOTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO time %q", s)
}
