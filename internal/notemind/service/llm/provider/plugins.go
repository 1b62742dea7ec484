package provider

import (
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/anthropic"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/deepseek"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/gemini"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/ollama"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/openai"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/qwen"
	"github.com/kiosk404/echonote/internal/notemind/service/llm/provider/spi"
)

// NewInTreeRegistry returns a registry holding the built-in providers.
func NewInTreeRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(ollama.Name, func() spi.ProviderPlugin { return ollama.New() })
	r.MustRegister(openai.Name, func() spi.ProviderPlugin { return openai.New() })
	r.MustRegister(anthropic.Name, func() spi.ProviderPlugin { return anthropic.New() })
	r.MustRegister(deepseek.Name, func() spi.ProviderPlugin { return deepseek.New() })
	r.MustRegister(gemini.Name, func() spi.ProviderPlugin { return gemini.New() })
	r.MustRegister(qwen.Name, func() spi.ProviderPlugin { return qwen.New() })
	return r
}
