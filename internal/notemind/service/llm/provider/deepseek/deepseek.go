package deepseek

import (
	"context"
	"fmt"

	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

const Name = "deepseek"

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

	conf := &einoDeepseek.ChatModelConfig{
		APIKey:             conn.APIKey,
		Model:              conn.Model,
		BaseURL:            conn.BaseURL,
		ResponseFormatType: einoDeepseek.ResponseFormatTypeText,
	}
	if params != nil {
		if params.Temperature != nil {
			conf.Temperature = *params.Temperature
		}
		conf.MaxTokens = params.MaxTokens
		conf.FrequencyPenalty = params.FrequencyPenalty
		conf.PresencePenalty = params.PresencePenalty
		if params.ResponseFormat == entity.ModelResponseFormatJSON {
			conf.ResponseFormatType = einoDeepseek.ResponseFormatTypeJSONObject
		}
	}
	return einoDeepseek.NewChatModel(ctx, conf)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.deepseek.com",
		APIKey:  "${DEEPSEEK_API_KEY}",
		API:     "openai-completions",
		Models: []options.ModelDefinition{
			{ID: "deepseek-chat", Name: "DeepSeek V3", Input: []string{"text"}, ContextWindow: 65536, MaxTokens: 8192},
			{ID: "deepseek-reasoner", Name: "DeepSeek R1", Reasoning: true, Input: []string{"text"}, ContextWindow: 65536, MaxTokens: 8192},
		},
	}
}
