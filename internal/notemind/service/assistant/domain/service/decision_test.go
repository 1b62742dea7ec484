package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
)

func TestParseDecisionMalformedRepliesAnswer(t *testing.T) {
	replies := []string{
		"",
		"   ",
		"I think you should list your notes.",
		"{not json}",
		`{"tool_name": 42}`,
		`{"tool_name": "read_text", "arguments": "missing.txt"}`,
		"}{",
		"```json\n```",
	}
	for _, reply := range replies {
		var d *entity.Decision
		require.NotPanics(t, func() { d = ParseDecision(reply) }, reply)
		require.NotNil(t, d, reply)
		assert.Equal(t, entity.DecisionAnswer, d.Kind, reply)
		assert.Equal(t, UninterpretableRequest, d.Reasoning, reply)
	}
}

func TestParseDecisionDispatch(t *testing.T) {
	reply := "Sure! Here is my decision:\n```json\n" +
		`{"tool_name": "read_text", "arguments": {"filename": "missing.txt"}, "reasoning": "user named a file"}` +
		"\n```"

	d := ParseDecision(reply)
	require.True(t, d.IsDispatch())
	assert.Equal(t, "read_text", d.ToolName)
	assert.Equal(t, map[string]any{"filename": "missing.txt"}, d.Arguments)
	assert.Equal(t, "user named a file", d.Reasoning)
}

func TestParseDecisionDispatchIgnoresTrailingObjects(t *testing.T) {
	cases := []struct {
		name      string
		reply     string
		tool      string
		args      map[string]any
		reasoning string
	}{
		{
			name:      "prose with braces after decision",
			reply:     `{"tool_name":"list_items","arguments":{},"reasoning":"list"}` + "\nNote: next I would call read_pdf with {\"filename\":\"cv.pdf\"}.",
			tool:      "list_items",
			args:      map[string]any{},
			reasoning: "list",
		},
		{
			name:      "braces and escaped quotes inside strings",
			reply:     `Decision: {"tool_name":"read_text","arguments":{"filename":"a}b.txt"},"reasoning":"the \"{x\" file"} then {"tool_name":"other"}`,
			tool:      "read_text",
			args:      map[string]any{"filename": "a}b.txt"},
			reasoning: `the "{x" file`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := ParseDecision(tc.reply)
			require.True(t, d.IsDispatch())
			assert.Equal(t, tc.tool, d.ToolName)
			assert.Equal(t, tc.args, d.Arguments)
			assert.Equal(t, tc.reasoning, d.Reasoning)
		})
	}
}

func TestExtractJSONObjectUnbalanced(t *testing.T) {
	_, err := extractJSONObject(`{"tool_name": "list_items"`)
	assert.ErrorIs(t, err, errNoJSONObject)

	_, err = extractJSONObject(`{"reasoning": "}"`)
	assert.ErrorIs(t, err, errNoJSONObject)
}

func TestParseDecisionNoTool(t *testing.T) {
	d := ParseDecision(`{"tool_name": "", "arguments": {}, "reasoning": "just a greeting"}`)
	assert.Equal(t, entity.DecisionAnswer, d.Kind)
	assert.Equal(t, "just a greeting", d.Reasoning)

	d = ParseDecision(`{"tool_name": "list_items"}`)
	require.True(t, d.IsDispatch())
	assert.NotNil(t, d.Arguments)
}

func TestDecideModelFailure(t *testing.T) {
	m := &scriptedModel{err: errors.New("connection refused")}
	d := NewDecisionEngine(m, echoPrompts{}).Decide(context.Background(), "list my notes", "catalog")

	assert.Equal(t, entity.DecisionAnswer, d.Kind)
	assert.Equal(t, UninterpretableRequest, d.Reasoning)
	assert.Equal(t, 1, m.calls())
}

func TestDecidePassesCatalog(t *testing.T) {
	m := &scriptedModel{replies: []string{`{"tool_name": "list_items", "arguments": {}, "reasoning": "r"}`}}
	d := NewDecisionEngine(m, echoPrompts{}).Decide(context.Background(), "list my notes", "Available tools:\n- list_items: x")

	require.True(t, d.IsDispatch())
	require.Len(t, m.prompts, 1)
	assert.Contains(t, m.prompts[0], "- list_items: x")
	assert.Contains(t, m.prompts[0], "list my notes")
}
