package helper

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

// BasePlugin implements the entity building shared by every provider. On
// its own it serves providers without a dedicated plugin through the
// OpenAI-compatible chat path.
type BasePlugin struct {
	PluginName string
}

func (b *BasePlugin) Name() string {
	return b.PluginName
}

func (b *BasePlugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{}
}

func (b *BasePlugin) BuildProvider(cfg *options.ProviderConfig) (*entity.ModelProvider, error) {
	api, err := entity.ModelAPIFromString(cfg.API)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", b.PluginName, err)
	}
	authHeader := true
	if cfg.AuthHeader != nil {
		authHeader = *cfg.AuthHeader
	}
	return &entity.ModelProvider{
		ID:         b.PluginName,
		Name:       b.PluginName,
		ModelClass: entity.ModelClassFromString(b.PluginName),
		BaseURL:    cfg.BaseURL,
		APIKey:     ResolveEnvValue(cfg.APIKey),
		API:        api,
		AuthHeader: authHeader,
		Headers:    cfg.Headers,
		Enabled:    true,
	}, nil
}

func (b *BasePlugin) BuildModels(p *entity.ModelProvider, cfg *options.ProviderConfig) ([]*entity.ModelInstance, error) {
	models := make([]*entity.ModelInstance, 0, len(cfg.Models))
	for _, def := range cfg.Models {
		if def.ID == "" {
			return nil, fmt.Errorf("provider %q: model without id", p.ID)
		}
		inputs := def.Input
		if len(inputs) == 0 {
			inputs = []string{"text"}
		}
		name := def.Name
		if name == "" {
			name = def.ID
		}

		instance := &entity.ModelInstance{
			ModelID:     def.ID,
			ProviderID:  p.ID,
			DisplayName: name,
			Connection: entity.Connection{
				BaseConnInfo: &entity.BaseConnectionInfo{
					BaseURL: p.BaseURL,
					APIKey:  p.APIKey,
					Model:   def.ID,
					Headers: p.Headers,
				},
			},
			Capability:    BuildCapabilityFromInputs(inputs, def.Reasoning),
			ContextWindow: def.ContextWindow,
			MaxTokens:     def.MaxTokens,
			Reasoning:     def.Reasoning,
			InputTypes:    inputs,
			Status:        entity.ModelStatus_Ready,
		}
		if def.Reasoning {
			instance.Connection.BaseConnInfo.ThinkingType = entity.ThinkingType_Enable
		}
		switch p.ModelClass {
		case entity.ModelClass_GPT:
			instance.Connection.Openai = &entity.OpenAIConnInfo{}
		case entity.ModelClass_Gemini:
			instance.Connection.Gemini = &entity.GeminiConnInfo{}
		}
		models = append(models, instance)
	}
	return models, nil
}

func (b *BasePlugin) BuildChatModel(ctx context.Context, instance *entity.ModelInstance, provider *entity.ModelProvider, params *entity.LLMParams) (model.BaseChatModel, error) {
	return NewOpenAICompatibleChatModel(ctx, instance, provider, params)
}

func BuildCapabilityFromInputs(inputs []string, reasoning bool) entity.ModelAbility {
	ability := entity.ModelAbility{CotDisplay: reasoning}
	for _, in := range inputs {
		switch in {
		case "image":
			ability.ImageUnderstanding = true
			ability.SupportMultiModal = true
		case "audio":
			ability.AudioUnderstanding = true
			ability.SupportMultiModal = true
		}
	}
	return ability
}

// ResolveEnvValue expands a whole-string "${ENV_VAR}" reference. Any other
// value is returned unchanged.
func ResolveEnvValue(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
