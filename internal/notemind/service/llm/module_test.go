package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

type fakeChatModel struct {
	reply   string
	err     error
	prompts []string
	params  *entity.LLMParams
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	for _, m := range input {
		f.prompts = append(f.prompts, m.Content)
	}
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

type fakePlugin struct {
	helper.BasePlugin
	chat *fakeChatModel
}

func (p *fakePlugin) BuildChatModel(_ context.Context, _ *entity.ModelInstance, _ *entity.ModelProvider, params *entity.LLMParams) (model.BaseChatModel, error) {
	p.chat.params = params
	return p.chat, nil
}

func newTestModule(t *testing.T, chat *fakeChatModel) *Module {
	t.Helper()
	oot := provider.NewRegistry()
	oot.MustRegister("fake", func() spi.ProviderPlugin {
		return &fakePlugin{BasePlugin: helper.BasePlugin{PluginName: "fake"}, chat: chat}
	})

	opts := &options.ModelOptions{
		Mode:            options.ModelModeReplace,
		DefaultProvider: "fake",
		DefaultModel:    "m2",
		Temperature:     0.3,
		MaxTokens:       512,
		Providers: map[string]*options.ProviderConfig{
			"fake": {
				BaseURL: "http://fake.local",
				Models:  []options.ModelDefinition{{ID: "m1"}, {ID: "m2", Name: "Model Two"}},
			},
		},
	}
	m, err := (&Config{ModelOptions: opts, OutOfTreeRegistry: oot}).Complete().New(context.Background())
	require.NoError(t, err)
	return m
}

func TestModule_DefaultModel(t *testing.T) {
	m := newTestModule(t, &fakeChatModel{})
	ctx := context.Background()

	def, err := m.Manager.GetDefaultModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ModelRef{ProviderID: "fake", ModelID: "m2"}, def.Ref())
	assert.Equal(t, "Model Two", def.DisplayName)

	all, err := m.Manager.ListAllModels(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestModule_CompleterUsesConfiguredParams(t *testing.T) {
	chat := &fakeChatModel{reply: "  {\"tool_name\": \"\"}\n"}
	m := newTestModule(t, chat)

	c, err := m.Completer(context.Background(), entity.ModelRef{})
	require.NoError(t, err)
	assert.Equal(t, "fake/m2", c.Ref().String())

	reply, err := c.Complete(context.Background(), "what can you do?")
	require.NoError(t, err)
	assert.Equal(t, `{"tool_name": ""}`, reply)
	assert.Equal(t, []string{"what can you do?"}, chat.prompts)

	require.NotNil(t, chat.params)
	require.NotNil(t, chat.params.Temperature)
	assert.InDelta(t, 0.3, *chat.params.Temperature, 1e-6)
	assert.Equal(t, 512, chat.params.MaxTokens)
}

func TestModule_CompleterWrapsModelErrors(t *testing.T) {
	boom := errors.New("model offline")
	m := newTestModule(t, &fakeChatModel{err: boom})

	c, err := m.Completer(context.Background(), entity.ModelRef{ProviderID: "fake", ModelID: "m1"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fake/m1")
}

func TestModule_UnknownModel(t *testing.T) {
	m := newTestModule(t, &fakeChatModel{})
	_, err := m.Completer(context.Background(), entity.ModelRef{ProviderID: "fake", ModelID: "nope"})
	assert.Error(t, err)
}

func TestModule_MissingDefaultFails(t *testing.T) {
	opts := &options.ModelOptions{
		Mode:            options.ModelModeReplace,
		DefaultProvider: "openai",
		DefaultModel:    "gpt-4o",
		Providers: map[string]*options.ProviderConfig{
			"ollama": {BaseURL: "http://127.0.0.1:11434", API: "ollama-generate", Models: []options.ModelDefinition{{ID: "llama3"}}},
		},
	}
	_, err := (&Config{ModelOptions: opts}).Complete().New(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai/gpt-4o")
}

func TestModule_DuplicateOutOfTreeProvider(t *testing.T) {
	oot := provider.NewRegistry()
	oot.MustRegister("ollama", func() spi.ProviderPlugin { return &helper.BasePlugin{PluginName: "ollama"} })

	_, err := (&Config{OutOfTreeRegistry: oot}).Complete().New(context.Background())
	assert.Error(t, err)
}
