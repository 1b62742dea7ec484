package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteCtlCommand_Subcommands(t *testing.T) {
	cmd := NewNoteCtlCommand(&bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{})

	names := map[string]string{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = c.GroupID
	}
	assert.Equal(t, groupBasic, names["ask"])
	assert.Equal(t, groupBasic, names["chat"])
	assert.Equal(t, groupTools, names["tools"])
	assert.Equal(t, groupTools, names["notes"])
	assert.Equal(t, groupTools, names["calendar"])

	for _, flag := range []string{"config", "model", "mcp.config-file", "models.default-model", "assistant.analyze-selection", "log.level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestNewNoteCtlCommand_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewNoteCtlCommand(&bytes.Buffer{}, out, out)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Basic Commands:")
	assert.Contains(t, out.String(), "ask")
}
