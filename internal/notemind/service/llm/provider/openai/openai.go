package openai

import (
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

const Name = "openai"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

// Plugin relies on the OpenAI-compatible path of BasePlugin.
type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{BasePlugin: helper.BasePlugin{PluginName: Name}}
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.openai.com/v1",
		APIKey:  "${OPENAI_API_KEY}",
		API:     "openai-completions",
		Models: []options.ModelDefinition{
			{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Input: []string{"text"}, ContextWindow: 128000, MaxTokens: 4096},
			{ID: "gpt-4o", Name: "GPT-4o", Input: []string{"text", "image"}, ContextWindow: 128000, MaxTokens: 4096},
		},
	}
}
