package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/assistant/pkg/errno"
)

func TestRegistryDiscoverAndDescribe(t *testing.T) {
	tr := newFakeTransport()
	tr.tools = []*entity.ToolDescriptor{
		{Name: "list_items", Description: "List all files"},
		{Name: "read_text", Description: "Read a\ntext file", Parameters: []entity.ToolParameter{
			{Name: "filename", Type: "string", Required: true},
			{Name: "encoding", Type: "string"},
		}},
		{Name: "list_items", Description: "duplicate"},
		nil,
		{Name: ""},
	}
	r := NewRegistry(tr)

	got, err := r.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, r.Has("read_text"))
	assert.False(t, r.Has("read_pdf"))

	assert.Equal(t,
		"Available tools:\n- list_items: List all files\n- read_text: Read a text file Parameters: filename, encoding",
		r.Describe())

	// callers cannot mutate the catalog
	d, ok := r.Lookup("read_text")
	require.True(t, ok)
	d.Parameters[0].Name = "changed"
	d2, _ := r.Lookup("read_text")
	assert.Equal(t, "filename", d2.Parameters[0].Name)
}

func TestRegistryEmptyDescribe(t *testing.T) {
	r := NewRegistry(newFakeTransport())
	assert.Equal(t, "No tools available", r.Describe())
	assert.Zero(t, r.Len())
}

func TestRegistryDiscoverConnectionError(t *testing.T) {
	tr := newFakeTransport("list_items")
	tr.discoverErr = errors.New("broken pipe")

	_, err := NewRegistry(tr).Discover(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errno.ErrConnection)
	assert.Contains(t, err.Error(), "broken pipe")
}
