package calendar

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/echonote/internal/notectl/cmd/testing"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

func TestCreate_ArgumentsOmitEmpty(t *testing.T) {
	o := &CreateOptions{Summary: "Dentist", Start: "2024-01-15T14:00:00"}
	assert.Equal(t, map[string]any{"summary": "Dentist", "start_time": "2024-01-15T14:00:00"}, o.Arguments())
}

func TestCreate_RequiresSummary(t *testing.T) {
	o := &CreateOptions{}
	err := o.Validate(&cobra.Command{Use: "create"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--summary is required")
}

func TestCreate_Run(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{Reply: "Calendar event created."}
	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := &CreateOptions{Summary: "Review", Location: "Room 2", factory: cmdtesting.NewFactory(fake), IOStreams: streams}

	require.NoError(t, o.Run(context.Background()))
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "create_event", fake.Calls[0].Tool)
	assert.Equal(t, map[string]any{"summary": "Review", "location": "Room 2"}, fake.Calls[0].Args)
	assert.Contains(t, out.String(), "Calendar event created.")
}

func TestList_MaxFlag(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{Reply: "No upcoming calendar events."}
	streams, _, _, _ := genericclioptions.NewTestIOStreams()
	cmd := NewCmdCalendar(cmdtesting.NewFactory(fake), streams)
	cmd.SetArgs([]string{"list", "--max", "3"})

	require.NoError(t, cmd.Execute())
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "list_events", fake.Calls[0].Tool)
	assert.Equal(t, map[string]any{"max_results": 3}, fake.Calls[0].Args)
}
