package prompt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTools = ToolNames{
	List:           "list_items",
	TextReader:     "read_text",
	PDFReader:      "read_pdf",
	CalendarList:   "list_events",
	CalendarCreate: "create_event",
}

func fixedClock() time.Time {
	return time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC)
}

func TestDecisionPromptContents(t *testing.T) {
	b := NewBuilder(testTools, nil).WithClock(fixedClock)

	out, err := b.DecisionPrompt(context.Background(), "show my notes", "Available tools:\n- list_items: List notes")
	require.NoError(t, err)

	assert.Contains(t, out, "Today's date is 2025-01-14")
	assert.Contains(t, out, `"tomorrow" = 2025-01-15`)
	assert.Contains(t, out, `"next week" = 2025-01-21`)
	assert.Contains(t, out, "- list_items: List notes")
	assert.Contains(t, out, "User query: show my notes")
	assert.Contains(t, out, `"tool_name"`)
	assert.Contains(t, out, "2025-01-15T14:00:00")
	assert.True(t, strings.HasSuffix(out, "Respond only with valid JSON:"))

	// catalog precedes query, query precedes the contract
	assert.Less(t, strings.Index(out, "Available tools:"), strings.Index(out, "User query:"))
	assert.Less(t, strings.Index(out, "User query:"), strings.Index(out, "IMPORTANT FILE READING STRATEGY"))
}

func TestSelectionPromptContents(t *testing.T) {
	b := NewBuilder(testTools, nil)

	out, err := b.SelectionPrompt(context.Background(), "summarize my cv", "- cv_2024.pdf (100 bytes)")
	require.NoError(t, err)

	assert.Contains(t, out, "Available files:\n- cv_2024.pdf (100 bytes)")
	assert.Contains(t, out, "User request: summarize my cv")
	assert.Contains(t, out, `"filename"`)
	assert.NotContains(t, out, "Today's date")
}

func TestAnalysisPromptContents(t *testing.T) {
	b := NewBuilder(testTools, nil)

	out, err := b.AnalysisPrompt(context.Background(), "what are my skills", "cv.pdf", "Go, Python")
	require.NoError(t, err)

	assert.Contains(t, out, "Document cv.pdf:\nGo, Python")
	assert.Contains(t, out, "- education")
	assert.NotContains(t, out, "Respond only with valid JSON")
}

func TestInstructionLoaderAddsSections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "INSTRUCTIONS.md"), []byte("Always answer in English.\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "prompts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", "b.md"), []byte("rule b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", "a.md"), []byte("rule a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", "skip.txt"), []byte("ignored"), 0o644))

	loader := NewInstructionLoader(dir)
	require.NotNil(t, loader)
	defer loader.Close()

	sections := loader.Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, "instructions:instructions", sections[0].Name())
	assert.Equal(t, "instructions:prompts:a", sections[1].Name())
	assert.Equal(t, "instructions:prompts:b", sections[2].Name())

	b := NewBuilder(testTools, loader).WithClock(fixedClock)
	out, err := b.DecisionPrompt(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Always answer in English.")
	assert.NotContains(t, out, "ignored")
	assert.Less(t, strings.Index(out, "rule a"), strings.Index(out, "rule b"))
	assert.True(t, strings.HasSuffix(out, "Respond only with valid JSON:"))
}

func TestInstructionLoaderMissingDir(t *testing.T) {
	assert.Nil(t, NewInstructionLoader(""))
	assert.Nil(t, NewInstructionLoader(filepath.Join(t.TempDir(), "absent")))

	var l *InstructionLoader
	assert.Nil(t, l.Sections())
	l.Close()
}

func TestInstructionLoaderReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "INSTRUCTIONS.md")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	loader := NewInstructionLoader(dir)
	require.NotNil(t, loader)
	defer loader.Close()
	assert.Equal(t, "first", loader.get("instructions"))

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	assert.Eventually(t, func() bool {
		return loader.get("instructions") == "second"
	}, 5*time.Second, 50*time.Millisecond)
}
