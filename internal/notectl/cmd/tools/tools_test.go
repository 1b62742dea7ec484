package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdtesting "github.com/kiosk404/echonote/internal/notectl/cmd/testing"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/pkg/cli/genericclioptions"
)

func TestTools_PrintsTable(t *testing.T) {
	fake := &cmdtesting.FakeAssistant{ToolList: []*entity.ToolDescriptor{
		{Name: "list_items", Description: "List files"},
		{Name: "read_pdf", Description: "Read a PDF", Parameters: []entity.ToolParameter{{Name: "filename", Type: "string", Required: true}}},
	}}
	streams, _, out, _ := genericclioptions.NewTestIOStreams()

	require.NoError(t, (&ToolsOptions{factory: cmdtesting.NewFactory(fake), IOStreams: streams}).Run(context.Background()))
	text := out.String()
	assert.Contains(t, text, "Model: fake/model")
	assert.Contains(t, text, "read_pdf")
	assert.Contains(t, text, "filename*")
}
