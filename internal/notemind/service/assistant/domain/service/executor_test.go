package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
)

func newTestExecutor(t *testing.T, tr *fakeTransport) *Executor {
	t.Helper()
	r := NewRegistry(tr)
	_, err := r.Discover(context.Background())
	require.NoError(t, err)
	return NewExecutor(r, tr)
}

func TestExecuteUnknownToolNeverReachesTransport(t *testing.T) {
	tr := newFakeTransport("list_items")
	ex := newTestExecutor(t, tr)

	for _, name := range []string{"delete_everything", "LIST_ITEMS", "list_items ", "read_pdf"} {
		env := ex.Execute(context.Background(), &entity.ToolCallRequest{ToolName: name})
		assert.False(t, env.OK, name)
		assert.Contains(t, env.Error, "unknown tool", name)
	}
	assert.Zero(t, tr.callCount())
}

func TestExecuteRequiresName(t *testing.T) {
	tr := newFakeTransport("list_items")
	ex := newTestExecutor(t, tr)

	assert.Equal(t, "tool name is required", ex.Execute(context.Background(), nil).Error)
	assert.Equal(t, "tool name is required", ex.Execute(context.Background(), &entity.ToolCallRequest{ToolName: "  "}).Error)
	assert.Zero(t, tr.callCount())
}

func TestExecuteSuccess(t *testing.T) {
	tr := newFakeTransport("read_text").reply("read_text", "hello", "world")
	ex := newTestExecutor(t, tr)

	env := ex.Execute(context.Background(), &entity.ToolCallRequest{ToolName: "read_text"})
	require.True(t, env.OK)
	assert.Empty(t, env.Error)
	assert.Equal(t, []string{"hello", "world"}, env.Payload)

	// nil arguments are forwarded as an empty object
	require.Len(t, tr.calls, 1)
	assert.NotNil(t, tr.calls[0].args)
	assert.Empty(t, tr.calls[0].args)
}

func TestExecuteToolError(t *testing.T) {
	tr := newFakeTransport("read_text").fail("read_text", "File 'missing.txt' not found in notes folder")
	ex := newTestExecutor(t, tr)

	env := ex.Execute(context.Background(), &entity.ToolCallRequest{
		ToolName:  "read_text",
		Arguments: map[string]any{"filename": "missing.txt"},
	})
	assert.False(t, env.OK)
	assert.Equal(t, "File 'missing.txt' not found in notes folder", env.Error)
	assert.False(t, env.ConnectionLost)
}

func TestExecuteTransportError(t *testing.T) {
	tr := newFakeTransport("list_items", "read_text")
	tr.errs["list_items"] = errors.New("boom")
	tr.errs["read_text"] = fmt.Errorf("%w: server exited", errno.ErrConnection)
	ex := newTestExecutor(t, tr)

	env := ex.Execute(context.Background(), &entity.ToolCallRequest{ToolName: "list_items"})
	assert.False(t, env.OK)
	assert.Equal(t, "boom", env.Error)
	assert.False(t, env.ConnectionLost)

	env = ex.Execute(context.Background(), &entity.ToolCallRequest{ToolName: "read_text"})
	assert.False(t, env.OK)
	assert.Contains(t, env.Error, "server exited")
	assert.True(t, env.ConnectionLost)
}
