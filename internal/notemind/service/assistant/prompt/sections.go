package prompt

import (
	"context"
	"fmt"
	"strings"
)

// staticSection renders fixed text, optionally filled from the context.
type staticSection struct {
	name     string
	priority int
	render   func(pc *PromptContext) string
}

func (s *staticSection) Name() string                                     { return s.name }
func (s *staticSection) Priority() int                                    { return s.priority }
func (s *staticSection) Enabled(_ context.Context, _ *PromptContext) bool { return true }

func (s *staticSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	return s.render(pc), nil
}

func fixedSection(name string, priority int, body string) PromptSection {
	return &staticSection{name: name, priority: priority, render: func(*PromptContext) string { return body }}
}

// --- DateSection (Priority: 150) ---

// DateSection anchors relative dates ("tomorrow", "next week") to today.
type DateSection struct{}

func (s *DateSection) Name() string  { return "date" }
func (s *DateSection) Priority() int { return 150 }

func (s *DateSection) Enabled(_ context.Context, pc *PromptContext) bool {
	return !pc.Now.IsZero()
}

func (s *DateSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	today := pc.Now.Format("2006-01-02")
	return fmt.Sprintf(`IMPORTANT: Today's date is %s. Use it as the reference for relative dates.
- "tomorrow" = %s
- "next week" = %s
- Use ISO format for times: YYYY-MM-DDTHH:MM:SS`,
		today,
		pc.Now.AddDate(0, 0, 1).Format("2006-01-02"),
		pc.Now.AddDate(0, 0, 7).Format("2006-01-02")), nil
}

// --- CatalogSection (Priority: 200) ---

type CatalogSection struct{}

func (s *CatalogSection) Name() string  { return "catalog" }
func (s *CatalogSection) Priority() int { return 200 }

func (s *CatalogSection) Enabled(_ context.Context, pc *PromptContext) bool {
	return pc.Catalog != ""
}

func (s *CatalogSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	return pc.Catalog, nil
}

// --- QuerySection (Priority: 300) ---

type QuerySection struct {
	Label string
}

func (s *QuerySection) Name() string  { return "query" }
func (s *QuerySection) Priority() int { return 300 }

func (s *QuerySection) Enabled(_ context.Context, pc *PromptContext) bool {
	return strings.TrimSpace(pc.Query) != ""
}

func (s *QuerySection) Render(_ context.Context, pc *PromptContext) (string, error) {
	label := s.Label
	if label == "" {
		label = "User query"
	}
	return fmt.Sprintf("%s: %s", label, pc.Query), nil
}

// --- StrategySection (Priority: 400) ---

// StrategySection asks the model to list candidates before reading a
// document whose exact name is unknown.
type StrategySection struct{}

func (s *StrategySection) Name() string                                     { return "strategy" }
func (s *StrategySection) Priority() int                                    { return 400 }
func (s *StrategySection) Enabled(_ context.Context, _ *PromptContext) bool { return true }

func (s *StrategySection) Render(_ context.Context, pc *PromptContext) (string, error) {
	t := pc.Tools
	return fmt.Sprintf(`IMPORTANT FILE READING STRATEGY:
- When the user refers to a document without its exact file name (for example "my CV" or "my resume"), ALWAYS call %s first to see the available files
- Use %s for .pdf files and %s for .txt files
- Only call %s or %s directly when the user gives an exact file name`,
		t.List, t.PDFReader, t.TextReader, t.PDFReader, t.TextReader), nil
}

// --- ContractSection (Priority: 500) ---

type ContractSection struct{}

func (s *ContractSection) Name() string                                     { return "contract" }
func (s *ContractSection) Priority() int                                    { return 500 }
func (s *ContractSection) Enabled(_ context.Context, _ *PromptContext) bool { return true }

func (s *ContractSection) Render(_ context.Context, _ *PromptContext) (string, error) {
	return `Analyze the user's request and respond with a JSON object that specifies:
1. "tool_name": the exact name of the tool to call (must match one of the available tools), or "" when no tool applies
2. "arguments": an object with the arguments to pass to the tool
3. "reasoning": a brief explanation of the choice`, nil
}

// --- ExamplesSection (Priority: 600) ---

type ExamplesSection struct{}

func (s *ExamplesSection) Name() string                                     { return "examples" }
func (s *ExamplesSection) Priority() int                                    { return 600 }
func (s *ExamplesSection) Enabled(_ context.Context, _ *PromptContext) bool { return true }

func (s *ExamplesSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	t := pc.Tools
	day := pc.Now.AddDate(0, 0, 1).Format("2006-01-02")
	var b strings.Builder
	b.WriteString("Examples:\n")
	fmt.Fprintf(&b, `- {"tool_name": "%s", "arguments": {}, "reasoning": "User wants to see their notes"}`+"\n", t.List)
	fmt.Fprintf(&b, `- {"tool_name": "%s", "arguments": {"filename": "meeting.txt"}, "reasoning": "User wants to read meeting notes"}`+"\n", t.TextReader)
	fmt.Fprintf(&b, `- {"tool_name": "%s", "arguments": {"filename": "report.pdf"}, "reasoning": "User named a PDF file"}`+"\n", t.PDFReader)
	fmt.Fprintf(&b, `- {"tool_name": "%s", "arguments": {"max_results": 5}, "reasoning": "User wants to see upcoming events"}`+"\n", t.CalendarList)
	fmt.Fprintf(&b, `- {"tool_name": "%s", "arguments": {"summary": "Team Meeting", "description": "Weekly team sync", "start_time": "%sT14:00:00", "end_time": "%sT15:00:00", "location": "Conference Room A"}, "reasoning": "User wants a meeting tomorrow at 2pm"}`+"\n", t.CalendarCreate, day, day)
	b.WriteString(`- {"tool_name": "", "arguments": {}, "reasoning": "Greeting, no tool needed"}`)
	return b.String(), nil
}

// --- CandidatesSection (Priority: 200) ---

type CandidatesSection struct{}

func (s *CandidatesSection) Name() string  { return "candidates" }
func (s *CandidatesSection) Priority() int { return 200 }

func (s *CandidatesSection) Enabled(_ context.Context, pc *PromptContext) bool {
	return pc.Candidates != ""
}

func (s *CandidatesSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	return "Available files:\n" + pc.Candidates, nil
}

// --- DocumentSection (Priority: 200) ---

type DocumentSection struct{}

func (s *DocumentSection) Name() string  { return "document" }
func (s *DocumentSection) Priority() int { return 200 }

func (s *DocumentSection) Enabled(_ context.Context, pc *PromptContext) bool {
	return pc.Document != ""
}

func (s *DocumentSection) Render(_ context.Context, pc *PromptContext) (string, error) {
	return fmt.Sprintf("Document %s:\n%s", pc.Filename, pc.Document), nil
}

// jsonOnlyMutator keeps the reply instruction as the very last line, after
// any user instruction sections.
type jsonOnlyMutator struct{}

func (m *jsonOnlyMutator) Name() string  { return "json-only" }
func (m *jsonOnlyMutator) Priority() int { return 100 }

func (m *jsonOnlyMutator) Mutate(_ context.Context, _ *PromptContext, assembled string) (string, error) {
	return assembled + "\n\nRespond only with valid JSON:", nil
}
