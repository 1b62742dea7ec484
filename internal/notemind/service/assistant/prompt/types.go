package prompt

import (
	"context"
	"time"
)

// PromptSection contributes one segment of a prompt. Sections are
// assembled in Priority order; a Render error is logged and the section
// skipped.
type PromptSection interface {
	Name() string
	Priority() int
	Enabled(ctx context.Context, pc *PromptContext) bool
	Render(ctx context.Context, pc *PromptContext) (string, error)
}

// PromptMutator transforms the fully assembled prompt text.
type PromptMutator interface {
	Name() string
	Priority() int
	Mutate(ctx context.Context, pc *PromptContext, assembled string) (string, error)
}

// ToolNames are the configured tool names referenced by prompt examples.
type ToolNames struct {
	List           string
	TextReader     string
	PDFReader      string
	CalendarList   string
	CalendarCreate string
}

// PromptContext carries everything sections may render.
type PromptContext struct {
	Query   string
	Catalog string
	Now     time.Time
	Tools   ToolNames

	// Selection and analysis prompts only.
	Candidates string
	Filename   string
	Document   string
}
