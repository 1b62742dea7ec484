package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/echonote/internal/notectl/cmd/testing"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

func TestChat_Loop(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{Reply: "Calendar event created."}
	streams, in, out, _ := genericclioptions.NewTestIOStreams()
	in.WriteString("\n/clear\nschedule lunch tomorrow\nquit\nnever read\n")

	require.NoError(t, NewChatOptions(cmdtesting.NewFactory(fake), streams).Run(context.Background()))

	assert.Equal(t, []string{"schedule lunch tomorrow"}, fake.Queries)
	text := out.String()
	assert.Contains(t, text, "model fake/model")
	assert.Contains(t, text, "Nothing to clear")
	assert.Contains(t, text, "Calendar event created.")
	assert.Contains(t, text, "Goodbye!")
	assert.True(t, fake.Closed)
}

func TestChat_EOF(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{Reply: "ok"}
	streams, in, out, _ := genericclioptions.NewTestIOStreams()
	in.WriteString("hello")

	require.NoError(t, NewChatOptions(cmdtesting.NewFactory(fake), streams).Run(context.Background()))
	assert.Equal(t, []string{"hello"}, fake.Queries)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestChat_ConnectionLost(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{Reply: "Tool 'list_items' failed: connection lost", Dead: true}
	streams, in, out, _ := genericclioptions.NewTestIOStreams()
	in.WriteString("list my notes\nagain\n")

	err := NewChatOptions(cmdtesting.NewFactory(fake), streams).Run(context.Background())
	assert.ErrorIs(t, err, errno.ErrConnection)
	assert.Len(t, fake.Queries, 1)
	assert.Contains(t, out.String(), "connection was lost")
}
