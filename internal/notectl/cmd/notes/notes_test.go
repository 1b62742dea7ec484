package notes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/echonote/internal/notectl/cmd/testing"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

func TestRead_RoutesByExtension(t *testing.T) {
	for file, tool := range map[string]string{
		"meeting.txt": "read_text",
		"resume.PDF":  "read_pdf",
		"todo":        "read_text",
	} {
		fake := &cmdtesting.FakeAssistant{Reply: "Content of '" + file + "'"}
		streams, _, out, _ := genericclioptions.NewTestIOStreams()
		o := &ReadOptions{Filename: file, factory: cmdtesting.NewFactory(fake), IOStreams: streams}

		require.NoError(t, o.Run(context.Background()))
		require.Len(t, fake.Calls, 1)
		assert.Equal(t, tool, fake.Calls[0].Tool, file)
		assert.Equal(t, map[string]any{"filename": file}, fake.Calls[0].Args)
		assert.Contains(t, out.String(), file)
	}
}

func TestList_InvokesListTool(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{Reply: "- a.txt (10 bytes)"}
	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	cmd := NewCmdNotes(cmdtesting.NewFactory(fake), streams)
	cmd.SetArgs([]string{"list"})

	require.NoError(t, cmd.Execute())
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "list_items", fake.Calls[0].Tool)
	assert.Contains(t, out.String(), "- a.txt (10 bytes)")
}
