package anthropic

import (
	"context"
	"fmt"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

const Name = "anthropic"

// Claude requires max_tokens on every request.
const fallbackMaxTokens = 4096

var _ spi.ChatModelPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ProviderPlugin {
	return &Plugin{BasePlugin: helper.BasePlugin{PluginName: Name}}
}

func (p *Plugin) BuildChatModel(ctx context.Context, instance *entity.ModelInstance, provider *entity.ModelProvider, params *entity.LLMParams) (model.BaseChatModel, error) {
	conn := instance.Connection.BaseConnInfo
	if conn == nil {
		return nil, fmt.Errorf("model %s/%s has no connection info", provider.ID, instance.ModelID)
	}

	cfg := &einoClaude.Config{
		APIKey:    conn.APIKey,
		Model:     conn.Model,
		MaxTokens: instance.MaxTokens,
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = fallbackMaxTokens
	}
	if conn.BaseURL != "" {
		baseURL := conn.BaseURL
		cfg.BaseURL = &baseURL
	}
	if params != nil {
		cfg.Temperature = params.Temperature
		cfg.TopP = params.TopP
		if params.MaxTokens > 0 {
			cfg.MaxTokens = params.MaxTokens
		}
	}
	return einoClaude.NewChatModel(ctx, cfg)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.anthropic.com/v1",
		APIKey:  "${ANTHROPIC_API_KEY}",
		API:     "anthropic-messages",
		Models: []options.ModelDefinition{
			{ID: "claude-sonnet-4-5", Name: "Claude Sonnet 4.5", Input: []string{"text"}, ContextWindow: 200000, MaxTokens: 8192},
			{ID: "claude-haiku-4-5", Name: "Claude Haiku 4.5", Input: []string{"text"}, ContextWindow: 200000, MaxTokens: 8192},
		},
	}
}
