package entity

// Connection is the resolved way to reach a model. Provider specific
// sections are nil unless the provider needs them.
type Connection struct {
	BaseConnInfo *BaseConnectionInfo `json:"base_conn_info"`
	Openai       *OpenAIConnInfo     `json:"openai,omitempty"`
	Gemini       *GeminiConnInfo     `json:"gemini,omitempty"`
}

type BaseConnectionInfo struct {
	BaseURL      string       `json:"base_url"`
	APIKey       string       `json:"-"`
	Model        string       `json:"model"`
	Headers      map[string]string `json:"headers,omitempty"`
	ThinkingType ThinkingType `json:"thinking_type"`
}

type ThinkingType int32

const (
	ThinkingType_Default ThinkingType = iota
	ThinkingType_Enable
	ThinkingType_Disable
)

type OpenAIConnInfo struct {
	ByAzure    bool   `json:"by_azure"`
	APIVersion string `json:"api_version"`
}

type GeminiConnInfo struct {
	Backend  int32  `json:"backend"`
	Project  string `json:"project"`
	Location string `json:"location"`
}
