// Package tools exposes the notes folder and the calendar as MCP tools.
package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kiosk404/echonote/internal/notesd/options"
	"github.com/kiosk404/echonote/internal/notesd/service/calendar"
	"github.com/kiosk404/echonote/internal/notesd/service/notes"
	"github.com/kiosk404/echonote/pkg/logger"
	"github.com/kiosk404/echonote/pkg/utils/json"
)

const (
	ListItems   = "list_items"
	ReadText    = "read_text"
	ReadPDF     = "read_pdf"
	ListEvents  = "list_events"
	CreateEvent = "create_event"
)

type handlers struct {
	folder   *notes.Folder
	calendar *calendar.Service
}

// NewServer registers the note tools and, when cal is not nil, the calendar
// tools.
func NewServer(opts *options.ServerOptions, folder *notes.Folder, cal *calendar.Service) *server.MCPServer {
	s := server.NewMCPServer(opts.Name, opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	h := &handlers{folder: folder, calendar: cal}

	s.AddTool(mcp.NewTool(ListItems,
		mcp.WithDescription("List all available text and PDF files in the notes folder, with their size, modification time and extension."),
	), h.listItems)

	s.AddTool(mcp.NewTool(ReadText,
		mcp.WithDescription("Read the content of a specific text file."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The name of the file to read (must be a .txt file)")),
	), h.readText)

	s.AddTool(mcp.NewTool(ReadPDF,
		mcp.WithDescription("Read the text content of a specific PDF file."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The name of the file to read (must be a .pdf file)")),
	), h.readPDF)

	if cal == nil {
		logger.Info("[Tools] calendar disabled, serving note tools only")
		return s
	}

	s.AddTool(mcp.NewTool(ListEvents,
		mcp.WithDescription("List upcoming events from Google Calendar."),
		mcp.WithNumber("max_results", mcp.DefaultNumber(10), mcp.Description("Maximum number of events to return (default: 10)")),
	), h.listEvents)

	s.AddTool(mcp.NewTool(CreateEvent,
		mcp.WithDescription("Create an event in Google Calendar."),
		mcp.WithString("summary", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("description", mcp.Description("Event description (optional)")),
		mcp.WithString("start_time", mcp.Description("Start time in ISO format (e.g., \"2024-01-15T14:00:00\") or empty for one hour from now")),
		mcp.WithString("end_time", mcp.Description("End time in ISO format or empty for one hour after start")),
		mcp.WithString("location", mcp.Description("Event location (optional)")),
	), h.createEvent)

	return s
}

func (h *handlers) listItems(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := h.folder.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing notes: %v", err)), nil
	}
	return jsonResult(items)
}

func (h *handlers) readText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := h.folder.ReadText(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading file '%s': %v", name, err)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (h *handlers) readPDF(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := h.folder.ReadPDF(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading PDF file '%s': %v", name, err)), nil
	}
	return mcp.NewToolResultText(content), nil
}

// The calendar tools report failures inside their JSON payload.
func (h *handlers) listEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.calendar.ListUpcoming(ctx, req.GetInt("max_results", 10)))
}

func (h *handlers) createEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := req.RequireString("summary")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(h.calendar.Create(ctx, calendar.EventInput{
		Summary:     summary,
		Description: req.GetString("description", ""),
		Location:    req.GetString("location", ""),
		StartTime:   req.GetString("start_time", ""),
		EndTime:     req.GetString("end_time", ""),
	}))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	text, err := json.MarshalString(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
