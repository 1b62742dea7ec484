package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/kiosk404/echonote/internal/notesd/options"
	"github.com/kiosk404/echonote/internal/notesd/service/calendar"
	"github.com/kiosk404/echonote/internal/notesd/service/notes"
	"github.com/kiosk404/echonote/pkg/utils/json"
)

type stubEvents struct {
	inserted *gcal.Event
}

func (s *stubEvents) List(context.Context, time.Time, int64) ([]*gcal.Event, error) {
	return []*gcal.Event{{Id: "e1", Summary: "Standup", Start: &gcal.EventDateTime{DateTime: "2024-01-15T09:00:00+01:00"}}}, nil
}

func (s *stubEvents) Insert(_ context.Context, ev *gcal.Event) (*gcal.Event, error) {
	s.inserted = ev
	out := *ev
	out.Id = "new-1"
	out.HtmlLink = "https://calendar.example/new-1"
	return &out, nil
}

func startClient(t *testing.T, withCalendar bool) (*client.Client, *stubEvents) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("second"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("first note"), 0o644))

	notesOpts := options.NewNotesOptions()
	notesOpts.Folder = dir
	folder, err := notes.NewFolder(notesOpts)
	require.NoError(t, err)

	stub := &stubEvents{}
	var cal *calendar.Service
	if withCalendar {
		cal, err = calendar.NewService(stub, options.NewCalendarOptions())
		require.NoError(t, err)
	}

	cli, err := client.NewInProcessClient(NewServer(options.NewServerOptions(), folder, cal))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, cli.Start(ctx))
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "tools-test", Version: "0.0.1"}
	_, err = cli.Initialize(ctx, initReq)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })
	return cli, stub
}

func call(t *testing.T, cli *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := cli.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestNewServer_ToolSet(t *testing.T) {
	ctx := context.Background()
	for _, tt := range []struct {
		calendar bool
		want     []string
	}{
		{false, []string{ListItems, ReadPDF, ReadText}},
		{true, []string{CreateEvent, ListEvents, ListItems, ReadPDF, ReadText}},
	} {
		cli, _ := startClient(t, tt.calendar)
		res, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)
		names := make([]string, 0, len(res.Tools))
		for _, tool := range res.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, tt.want, names)
	}
}

func TestListItems(t *testing.T) {
	cli, _ := startClient(t, false)
	text, isErr := call(t, cli, ListItems, nil)
	require.False(t, isErr)

	var items []notes.Item
	require.NoError(t, json.UnmarshalString(text, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "a.txt", items[0].Filename)
	assert.Equal(t, int64(10), items[0].Size)
	assert.Equal(t, "b.txt", items[1].Filename)
}

func TestReadText(t *testing.T) {
	cli, _ := startClient(t, false)

	text, isErr := call(t, cli, ReadText, map[string]any{"filename": "a.txt"})
	assert.False(t, isErr)
	assert.Equal(t, "first note", text)

	text, isErr = call(t, cli, ReadText, map[string]any{"filename": "missing.txt"})
	assert.True(t, isErr)
	assert.Equal(t, "Error reading file 'missing.txt': File 'missing.txt' not found in notes folder", text)

	_, isErr = call(t, cli, ReadText, map[string]any{})
	assert.True(t, isErr)
}

func TestReadPDFWrongType(t *testing.T) {
	cli, _ := startClient(t, false)
	text, isErr := call(t, cli, ReadPDF, map[string]any{"filename": "a.txt"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Use read_text")
}

func TestCalendarTools(t *testing.T) {
	cli, stub := startClient(t, true)

	text, isErr := call(t, cli, ListEvents, map[string]any{"max_results": 3})
	require.False(t, isErr)
	var listing calendar.Listing
	require.NoError(t, json.UnmarshalString(text, &listing))
	assert.True(t, listing.Success)
	require.Len(t, listing.Events, 1)
	assert.Equal(t, "Standup", listing.Events[0].Summary)

	text, isErr = call(t, cli, CreateEvent, map[string]any{
		"summary":    "Dentist",
		"start_time": "2024-01-15T14:00:00",
		"location":   "Main St",
	})
	require.False(t, isErr)
	var created calendar.Created
	require.NoError(t, json.UnmarshalString(text, &created))
	assert.True(t, created.Success)
	assert.Equal(t, "new-1", created.EventID)
	assert.Equal(t, "2024-01-15T14:00:00+01:00", created.Start)
	assert.Equal(t, "2024-01-15T15:00:00+01:00", created.End)
	assert.Equal(t, "Main St", stub.inserted.Location)

	text, _ = call(t, cli, CreateEvent, map[string]any{"summary": "x", "start_time": "soon"})
	require.NoError(t, json.UnmarshalString(text, &created))
	assert.Contains(t, created.Error, "Invalid start_time format: soon")
}
