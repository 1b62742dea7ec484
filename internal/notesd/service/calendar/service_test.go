package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/kiosk404/echonote/internal/notesd/options"
)

type fakeEvents struct {
	items    []*gcal.Event
	err      error
	inserted *gcal.Event
	timeMin  time.Time
	max      int64
}

func (f *fakeEvents) List(_ context.Context, timeMin time.Time, maxResults int64) ([]*gcal.Event, error) {
	f.timeMin, f.max = timeMin, maxResults
	return f.items, f.err
}

func (f *fakeEvents) Insert(_ context.Context, event *gcal.Event) (*gcal.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = event
	out := *event
	out.Id = "evt-1"
	out.HtmlLink = "https://calendar.example/evt-1"
	return &out, nil
}

func newTestService(t *testing.T, api EventsAPI) *Service {
	t.Helper()
	s, err := NewService(api, options.NewCalendarOptions())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestService_ListUpcoming(t *testing.T) {
	api := &fakeEvents{items: []*gcal.Event{
		{Id: "a", Summary: "Standup", Location: "Room 1", Start: &gcal.EventDateTime{DateTime: "2024-01-15T09:00:00+01:00"}},
		{Id: "b", Summary: "Holiday"},
	}}
	s := newTestService(t, api)

	res := s.ListUpcoming(context.Background(), 0)
	require.True(t, res.Success)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "Standup", res.Events[0].Summary)
	assert.Equal(t, "Room 1", res.Events[0].Location)
	assert.NotNil(t, res.Events[1].Start)
	assert.Equal(t, int64(10), api.max)
	assert.True(t, api.timeMin.Equal(s.now()))
}

func TestService_ListUpcomingFailure(t *testing.T) {
	s := newTestService(t, &fakeEvents{err: errors.New("quota exceeded")})
	res := s.ListUpcoming(context.Background(), 5)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "quota exceeded")
}

func TestService_Unavailable(t *testing.T) {
	s := newTestService(t, nil)
	assert.Equal(t, ErrNotAuthorized.Error(), s.ListUpcoming(context.Background(), 1).Error)
	assert.Equal(t, ErrNotAuthorized.Error(), s.Create(context.Background(), EventInput{Summary: "x"}).Error)
}

func TestService_CreateDefaultsTimes(t *testing.T) {
	api := &fakeEvents{}
	s := newTestService(t, api)

	res := s.Create(context.Background(), EventInput{Summary: "Review"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "evt-1", res.EventID)
	assert.Equal(t, "https://calendar.example/evt-1", res.HTMLLink)

	start, err := time.Parse(time.RFC3339, api.inserted.Start.DateTime)
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, api.inserted.End.DateTime)
	require.NoError(t, err)
	assert.True(t, start.Equal(s.now().Add(time.Hour)))
	assert.Equal(t, time.Hour, end.Sub(start))
	assert.Equal(t, "Europe/Berlin", api.inserted.Start.TimeZone)
}

func TestService_CreateExplicitTimes(t *testing.T) {
	api := &fakeEvents{}
	s := newTestService(t, api)

	res := s.Create(context.Background(), EventInput{
		Summary:   "Dentist",
		StartTime: "2024-01-15T14:00:00",
		EndTime:   "2024-01-15T13:30:00Z",
	})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "2024-01-15T14:00:00+01:00", api.inserted.Start.DateTime)
	assert.Equal(t, "2024-01-15T13:30:00Z", api.inserted.End.DateTime)
}

func TestService_CreateInvalidStart(t *testing.T) {
	api := &fakeEvents{}
	s := newTestService(t, api)

	res := s.Create(context.Background(), EventInput{Summary: "x", StartTime: "tomorrow"})
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid start_time format: tomorrow. Use ISO format (e.g., '2024-01-15T14:00:00')", res.Error)
	assert.Nil(t, api.inserted)
}

func TestParseISOTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	for _, in := range []string{"2024-01-15T14:00:00", "2024-01-15T14:00", "2024-01-15 14:00:00", "2024-01-15T13:00:00Z", "2024-01-15T14:00:00+01:00"} {
		got, err := ParseISOTime(in, loc)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC)), in)
	}
	_, err = ParseISOTime("15.01.2024", loc)
	assert.Error(t, err)
}

func TestGoogleEvents_AgainstFakeEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/events"):
			assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
			assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))
			_, _ = w.Write([]byte(`{"items":[{"id":"e1","summary":"Standup","start":{"dateTime":"2024-01-15T09:00:00+01:00"}}]}`))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/events"):
			_, _ = w.Write([]byte(`{"id":"e2","summary":"Created","htmlLink":"https://calendar.example/e2"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gcal.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	api := NewEventsAPI(svc, "primary")

	items, err := api.List(ctx, time.Now(), 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Standup", items[0].Summary)

	created, err := api.Insert(ctx, &gcal.Event{Summary: "Created"})
	require.NoError(t, err)
	assert.Equal(t, "e2", created.Id)
	assert.Equal(t, "https://calendar.example/e2", created.HtmlLink)
}

func TestNewGoogleEvents_MissingCredentials(t *testing.T) {
	opts := options.NewCalendarOptions()
	opts.CredentialsFile = t.TempDir() + "/missing.json"
	_, err := NewGoogleEvents(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
