package entity

import (
	"fmt"
	"strings"
)

// ModelInstance is a model registered under a provider and ready to be
// turned into a chat model.
type ModelInstance struct {
	ID            int64        `json:"id"`
	ModelID       string       `json:"model_id"`
	ProviderID    string       `json:"provider_id"`
	DisplayName   string       `json:"display_name"`
	IsDefault     bool         `json:"is_default"`
	Connection    Connection   `json:"connection"`
	Capability    ModelAbility `json:"capability"`
	ContextWindow int          `json:"context_window"`
	MaxTokens     int          `json:"max_tokens"`
	Reasoning     bool         `json:"reasoning"`
	InputTypes    []string     `json:"input_types"`
	Status        ModelStatus  `json:"status"`
}

func (m *ModelInstance) Ref() ModelRef {
	return ModelRef{ProviderID: m.ProviderID, ModelID: m.ModelID}
}

type ModelStatus int32

const (
	ModelStatus_Ready    ModelStatus = 0
	ModelStatus_Disabled ModelStatus = 1
	ModelStatus_Error    ModelStatus = 2
)

func (s ModelStatus) String() string {
	switch s {
	case ModelStatus_Ready:
		return "Ready"
	case ModelStatus_Disabled:
		return "Disabled"
	case ModelStatus_Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ModelRef names a model as "provider/model".
type ModelRef struct {
	ProviderID string `json:"provider_id"`
	ModelID    string `json:"model_id"`
}

func (r ModelRef) String() string {
	return fmt.Sprintf("%s/%s", r.ProviderID, r.ModelID)
}

// ParseModelRef splits "provider/model" at the first slash. The model part
// may itself contain slashes.
func ParseModelRef(s string) (ModelRef, error) {
	provider, model, ok := strings.Cut(s, "/")
	if !ok || provider == "" || model == "" {
		return ModelRef{}, fmt.Errorf("invalid model reference %q, want provider/model", s)
	}
	return ModelRef{ProviderID: provider, ModelID: model}, nil
}

// ModelAbility lists what a model accepts besides text.
type ModelAbility struct {
	CotDisplay         bool `json:"cot_display"`
	FunctionCall       bool `json:"function_call"`
	ImageUnderstanding bool `json:"image_understanding"`
	AudioUnderstanding bool `json:"audio_understanding"`
	SupportMultiModal  bool `json:"support_multi_modal"`
}
