package qwen

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	einoQwen "github.com/cloudwego/eino-ext/components/model/qwen"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

const Name = "qwen"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

// Plugin targets DashScope's OpenAI-compatible mode through the qwen client,
// which understands enable_thinking.
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

	conf := &einoQwen.ChatModelConfig{
		APIKey:  conn.APIKey,
		Model:   conn.Model,
		BaseURL: conn.BaseURL,
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
		// Non-streaming calls are rejected while thinking is on.
		EnableThinking: gptr.Of(conn.ThinkingType == entity.ThinkingType_Enable),
	}
	if params != nil {
		conf.TopP = params.TopP
		conf.Temperature = params.Temperature
		if params.MaxTokens > 0 {
			conf.MaxTokens = gptr.Of(params.MaxTokens)
		}
		if params.EnableThinking != nil {
			conf.EnableThinking = params.EnableThinking
		}
		if params.ResponseFormat == entity.ModelResponseFormatJSON {
			conf.ResponseFormat = &einoOpenAI.ChatCompletionResponseFormat{
				Type: einoOpenAI.ChatCompletionResponseFormatTypeJSONObject,
			}
		}
	}
	return einoQwen.NewChatModel(ctx, conf)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
		APIKey:  "${DASHSCOPE_API_KEY}",
		API:     "openai-completions",
		Models: []options.ModelDefinition{
			{ID: "qwen-plus", Name: "Qwen Plus", Input: []string{"text"}, ContextWindow: 131072, MaxTokens: 8192},
			{ID: "qwen-turbo", Name: "Qwen Turbo", Input: []string{"text"}, ContextWindow: 131072, MaxTokens: 8192},
		},
	}
}
