package entity

import "fmt"

// ModelProvider is an endpoint hosting one or more models.
type ModelProvider struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	BaseURL    string            `json:"base_url"`
	ModelClass ModelClass        `json:"model_class"`
	APIKey     string            `json:"-"`
	API        ModelAPI          `json:"api"`
	AuthHeader bool              `json:"auth_header"`
	Headers    map[string]string `json:"headers,omitempty"`
	Enabled    bool              `json:"enabled"`
}

type ModelAPI string

const (
	ModelAPI_OpenAICompletions  ModelAPI = "openai-completions"
	ModelAPI_OpenAIResponses    ModelAPI = "openai-responses"
	ModelAPI_AnthropicMessages  ModelAPI = "anthropic-messages"
	ModelAPI_GoogleGenerativeAI ModelAPI = "google-generative-ai"
	ModelAPI_OllamaGenerative   ModelAPI = "ollama-generate"
)

func (a ModelAPI) String() string {
	return string(a)
}

// ModelAPIFromString parses a configured API name; empty means
// OpenAI-compatible completions.
func ModelAPIFromString(s string) (ModelAPI, error) {
	switch ModelAPI(s) {
	case ModelAPI_AnthropicMessages, ModelAPI_OpenAICompletions, ModelAPI_OpenAIResponses,
		ModelAPI_OllamaGenerative, ModelAPI_GoogleGenerativeAI:
		return ModelAPI(s), nil
	}
	if s == "" {
		return ModelAPI_OpenAICompletions, nil
	}
	return "", fmt.Errorf("unknown model API: %q", s)
}

type ModelClass int64

const (
	ModelClass_GPT      ModelClass = 1
	ModelClass_QWen     ModelClass = 2
	ModelClass_Gemini   ModelClass = 3
	ModelClass_DeepSeek ModelClass = 4
	ModelClass_Ollama   ModelClass = 5
	ModelClass_Claude   ModelClass = 6
	ModelClass_Other    ModelClass = 999
)

func (p ModelClass) String() string {
	switch p {
	case ModelClass_GPT:
		return "gpt"
	case ModelClass_QWen:
		return "qwen"
	case ModelClass_Gemini:
		return "gemini"
	case ModelClass_DeepSeek:
		return "deepseek"
	case ModelClass_Ollama:
		return "ollama"
	case ModelClass_Claude:
		return "claude"
	case ModelClass_Other:
		return "other"
	}
	return "<UNSET>"
}

func ModelClassFromString(s string) ModelClass {
	switch s {
	case "gpt", "openai":
		return ModelClass_GPT
	case "qwen", "dashscope":
		return ModelClass_QWen
	case "gemini", "google":
		return ModelClass_Gemini
	case "deepseek":
		return ModelClass_DeepSeek
	case "ollama":
		return ModelClass_Ollama
	case "claude", "anthropic":
		return ModelClass_Claude
	}
	return ModelClass_Other
}
