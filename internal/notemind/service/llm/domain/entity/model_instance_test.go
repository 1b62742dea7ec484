package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelRef(t *testing.T) {
	ref, err := ParseModelRef("ollama/mistral:7b-instruct")
	require.NoError(t, err)
	assert.Equal(t, ModelRef{ProviderID: "ollama", ModelID: "mistral:7b-instruct"}, ref)

	ref, err = ParseModelRef("openrouter/meta/llama-3")
	require.NoError(t, err)
	assert.Equal(t, "meta/llama-3", ref.ModelID)
	assert.Equal(t, "openrouter/meta/llama-3", ref.String())

	for _, bad := range []string{"", "ollama", "/m", "p/"} {
		_, err := ParseModelRef(bad)
		assert.Error(t, err, bad)
	}
}
