package entity

// LLMParams are per-call generation settings. Zero values keep the
// provider default.
type LLMParams struct {
	Temperature      *float32            `json:"temperature,omitempty"`
	FrequencyPenalty float32             `json:"frequency_penalty,omitempty"`
	PresencePenalty  float32             `json:"presence_penalty,omitempty"`
	MaxTokens        int                 `json:"max_tokens,omitempty"`
	TopP             *float32            `json:"top_p,omitempty"`
	TopK             *int32              `json:"top_k,omitempty"`
	ResponseFormat   ModelResponseFormat `json:"response_format"`
	EnableThinking   *bool               `json:"enable_thinking,omitempty"`
}

type ModelResponseFormat int64

const (
	ModelResponseFormatText ModelResponseFormat = iota
	ModelResponseFormatJSON
)

func (f ModelResponseFormat) String() string {
	if f == ModelResponseFormatJSON {
		return "json"
	}
	return "text"
}
