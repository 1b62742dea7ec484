package helper

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
)

// NewOpenAICompatibleChatModel builds a chat model against any endpoint
// speaking the OpenAI chat completions API.
func NewOpenAICompatibleChatModel(ctx context.Context, instance *entity.ModelInstance, provider *entity.ModelProvider, params *entity.LLMParams) (model.BaseChatModel, error) {
	conn := instance.Connection.BaseConnInfo
	if conn == nil {
		return nil, fmt.Errorf("model %s/%s has no connection info", provider.ID, instance.ModelID)
	}

	cfg := &einoOpenAI.ChatModelConfig{
		Model:   conn.Model,
		APIKey:  conn.APIKey,
		BaseURL: conn.BaseURL,
	}
	if instance.MaxTokens > 0 {
		cfg.MaxTokens = gptr.Of(instance.MaxTokens)
	}
	if oa := instance.Connection.Openai; oa != nil {
		cfg.ByAzure = oa.ByAzure
		cfg.APIVersion = oa.APIVersion
	}

	if params != nil {
		cfg.Temperature = params.Temperature
		cfg.TopP = params.TopP
		if params.MaxTokens > 0 {
			cfg.MaxTokens = gptr.Of(params.MaxTokens)
		}
		if params.FrequencyPenalty != 0 {
			cfg.FrequencyPenalty = gptr.Of(params.FrequencyPenalty)
		}
		if params.PresencePenalty != 0 {
			cfg.PresencePenalty = gptr.Of(params.PresencePenalty)
		}
		if params.ResponseFormat == entity.ModelResponseFormatJSON {
			cfg.ResponseFormat = &einoOpenAI.ChatCompletionResponseFormat{
				Type: einoOpenAI.ChatCompletionResponseFormatTypeJSONObject,
			}
		}
	}
	return einoOpenAI.NewChatModel(ctx, cfg)
}
