package ollama

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

const (
	Name           = "ollama"
	defaultBaseURL = "http://127.0.0.1:11434"
)

var _ spi.ChatModelPlugin = (*Plugin)(nil)

// Plugin talks to a local Ollama daemon through its native API.
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

	conf := &einoOllama.ChatModelConfig{
		BaseURL: defaultBaseURL,
		Model:   conn.Model,
		Options: &einoOllama.Options{},
	}
	if conn.BaseURL != "" {
		conf.BaseURL = conn.BaseURL
	}
	switch conn.ThinkingType {
	case entity.ThinkingType_Enable:
		conf.Thinking = &einoOllama.ThinkValue{Value: gptr.Of(true)}
	case entity.ThinkingType_Disable:
		conf.Thinking = &einoOllama.ThinkValue{Value: gptr.Of(false)}
	}
	applyParams(conf, params)

	return einoOllama.NewChatModel(ctx, conf)
}

func applyParams(conf *einoOllama.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}
	if params.Temperature != nil {
		conf.Options.Temperature = *params.Temperature
	}
	if params.TopP != nil {
		conf.Options.TopP = *params.TopP
	}
	if params.TopK != nil {
		conf.Options.TopK = int(*params.TopK)
	}
	conf.Options.FrequencyPenalty = params.FrequencyPenalty
	conf.Options.PresencePenalty = params.PresencePenalty
	if params.EnableThinking != nil {
		conf.Thinking = &einoOllama.ThinkValue{Value: params.EnableThinking}
	}
}

// DefaultConfig is only used for discovery. A local daemon has no API key,
// so OLLAMA_HOST doubles as the opt-in switch.
func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: defaultBaseURL,
		APIKey:  "${OLLAMA_HOST}",
		API:     string(entity.ModelAPI_OllamaGenerative),
		Models: []options.ModelDefinition{
			{ID: "mistral:7b-instruct", Name: "Mistral 7B Instruct", Input: []string{"text"}, ContextWindow: 32768, MaxTokens: 4096},
			{ID: "llama3.1:8b", Name: "Llama 3.1 8B", Input: []string{"text"}, ContextWindow: 131072, MaxTokens: 4096},
		},
	}
}
