package service

import (
	"fmt"
	"strings"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
)

// Category selects the formatting strategy of a tool's result.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryList
	CategoryContent
	CategoryCalendarList
	CategoryCalendarCreate
)

func (c Category) String() string {
	switch c {
	case CategoryList:
		return "list"
	case CategoryContent:
		return "content"
	case CategoryCalendarList:
		return "calendar-list"
	case CategoryCalendarCreate:
		return "calendar-create"
	default:
		return "generic"
	}
}

// ParseCategory maps a configuration value onto a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list":
		return CategoryList, nil
	case "content":
		return CategoryContent, nil
	case "calendar-list":
		return CategoryCalendarList, nil
	case "calendar-create":
		return CategoryCalendarCreate, nil
	case "generic", "":
		return CategoryGeneric, nil
	}
	return CategoryGeneric, fmt.Errorf("unknown tool category %q", s)
}

// DefaultCategories covers the notesd tool names plus their older aliases.
func DefaultCategories() map[string]Category {
	return map[string]Category{
		"list_items":            CategoryList,
		"list_notes":            CategoryList,
		"read_text":             CategoryContent,
		"read_note":             CategoryContent,
		"read_pdf":              CategoryContent,
		"list_events":           CategoryCalendarList,
		"list_calendar_events":  CategoryCalendarList,
		"create_event":          CategoryCalendarCreate,
		"create_calendar_event": CategoryCalendarCreate,
	}
}

// Formatter turns envelopes into user-facing text. Every method is total:
// unparseable payloads are shown raw.
type Formatter struct {
	categories map[string]Category
}

func NewFormatter(categories map[string]Category) *Formatter {
	if categories == nil {
		categories = DefaultCategories()
	}
	cp := make(map[string]Category, len(categories))
	for k, v := range categories {
		cp[k] = v
	}
	return &Formatter{categories: cp}
}

func (f *Formatter) CategoryOf(toolName string) Category {
	return f.categories[toolName]
}

// Format renders env with the strategy of its tool's category. Failed
// envelopes always carry their error text verbatim.
func (f *Formatter) Format(env *entity.ToolResultEnvelope) string {
	if env == nil {
		return "No result."
	}
	if !env.OK {
		return FormatFailure(env)
	}
	switch f.CategoryOf(env.ToolName) {
	case CategoryList:
		return FormatList(env)
	case CategoryContent:
		return FormatContent(env)
	case CategoryCalendarList:
		return FormatCalendarList(env)
	case CategoryCalendarCreate:
		return FormatCalendarCreation(env)
	default:
		return FormatGeneric(env)
	}
}

func FormatFailure(env *entity.ToolResultEnvelope) string {
	name := env.ToolName
	if name == "" {
		name = "(none)"
	}
	return fmt.Sprintf("Tool '%s' failed: %s", name, env.Error)
}

// FormatList renders one "- name (N bytes)" line per entry in input order.
func FormatList(env *entity.ToolResultEnvelope) string {
	listing := decodeListing(env.Payload)
	if !listing.Parsed() {
		return listing.Raw
	}
	return renderListing(listing.Value)
}

func renderListing(items []entity.ListedItem) string {
	if len(items) == 0 {
		return "No items found."
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s (%d bytes)", it.Filename, it.Size))
	}
	return strings.Join(lines, "\n")
}

func FormatContent(env *entity.ToolResultEnvelope) string {
	name := env.Arg("filename")
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("Content of '%s':\n\n%s", name, env.PayloadText())
}

func FormatCalendarList(env *entity.ToolResultEnvelope) string {
	listing := decodeObject[calendarListing](env.Payload)
	if !listing.Parsed() {
		return "Calendar events:\n\n" + listing.Raw
	}
	l := listing.Value
	if !l.Success {
		if l.Error != "" {
			return "Failed to list calendar events: " + l.Error
		}
		return "Calendar events:\n\n" + listing.Raw
	}
	if len(l.Events) == 0 {
		return "No upcoming calendar events."
	}

	blocks := make([]string, 0, len(l.Events))
	for _, ev := range l.Events {
		summary := ev.Summary
		if summary == "" {
			summary = "Untitled"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**", summary)
		if ev.Location != "" {
			fmt.Fprintf(&b, "\n   Location: %s", ev.Location)
		}
		fmt.Fprintf(&b, "\n   When: %s", DisplayEventDate(ExtractEventDate(ev)))
		blocks = append(blocks, b.String())
	}
	return "Upcoming calendar events:\n\n" + strings.Join(blocks, "\n\n")
}

func FormatCalendarCreation(env *entity.ToolResultEnvelope) string {
	created := decodeObject[calendarCreation](env.Payload)
	if !created.Parsed() {
		return "Calendar event creation result:\n\n" + created.Raw
	}
	c := created.Value
	if !c.Success {
		msg := c.Error
		if msg == "" {
			msg = "unknown error"
		}
		return "Failed to create calendar event: " + msg
	}

	summary := c.Summary
	if summary == "" {
		summary = env.Arg("summary")
	}
	if summary == "" {
		summary = "Event"
	}
	eventID := c.EventID
	if eventID == "" {
		eventID = "unknown"
	}
	return fmt.Sprintf("Calendar event created.\n\n**%s**\nLink: %s\nEvent ID: %s", summary, c.HTMLLink, eventID)
}

func FormatGeneric(env *entity.ToolResultEnvelope) string {
	return fmt.Sprintf("Tool '%s' executed successfully:\n\n%s", env.ToolName, env.PayloadText())
}
