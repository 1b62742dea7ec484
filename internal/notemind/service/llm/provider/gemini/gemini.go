package gemini

import (
	"context"
	"fmt"

	einoGemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/helper"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
	"github.com/kiosk404/echonote/internal/pkg/options"
)

const Name = "gemini"

var _ spi.ChatModelPlugin = (*Plugin)(nil)

// Plugin uses the Google generative AI API, optionally on Vertex AI.
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

	clientCfg := &genai.ClientConfig{
		APIKey:  conn.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if conn.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = conn.BaseURL
	}
	if g := instance.Connection.Gemini; g != nil {
		if g.Backend != 0 {
			clientCfg.Backend = genai.Backend(g.Backend)
		}
		clientCfg.Project = g.Project
		clientCfg.Location = g.Location
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client for %s/%s: %w", provider.ID, instance.ModelID, err)
	}

	cfg := &einoGemini.Config{
		Client: client,
		Model:  conn.Model,
	}
	if conn.ThinkingType == entity.ThinkingType_Enable {
		cfg.ThinkingConfig = &genai.ThinkingConfig{IncludeThoughts: true}
	}
	if params != nil {
		cfg.TopK = params.TopK
		cfg.TopP = params.TopP
		cfg.Temperature = params.Temperature
		if params.MaxTokens > 0 {
			mt := params.MaxTokens
			cfg.MaxTokens = &mt
		}
	}
	return einoGemini.NewChatModel(ctx, cfg)
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://generativelanguage.googleapis.com/",
		APIKey:  "${GOOGLE_API_KEY}",
		API:     "google-generative-ai",
		Models: []options.ModelDefinition{
			{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Input: []string{"text", "image"}, ContextWindow: 1048576, MaxTokens: 8192},
		},
	}
}
