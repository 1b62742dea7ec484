package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	ModelModeMerge   = "merge"
	ModelModeReplace = "replace"
)

// ModelOptions selects the chat model consulted for decisions.
//
// In "merge" mode built-in providers whose API key is present in the
// environment are registered next to the configured ones; "replace" only
// registers what is listed under providers.
type ModelOptions struct {
	Mode            string                     `json:"mode"             mapstructure:"mode"`
	DefaultProvider string                     `json:"default-provider" mapstructure:"default-provider"`
	DefaultModel    string                     `json:"default-model"    mapstructure:"default-model"`
	Temperature     float32                    `json:"temperature"      mapstructure:"temperature"`
	MaxTokens       int                        `json:"max-tokens"       mapstructure:"max-tokens"`
	Providers       map[string]*ProviderConfig `json:"providers"        mapstructure:"providers"`
}

type ProviderConfig struct {
	BaseURL    string            `json:"base-url"    mapstructure:"base-url"`
	APIKey     string            `json:"api-key"     mapstructure:"api-key"`
	API        string            `json:"api"         mapstructure:"api"`
	AuthHeader *bool             `json:"auth-header" mapstructure:"auth-header"`
	Headers    map[string]string `json:"headers"     mapstructure:"headers"`
	Models     []ModelDefinition `json:"models"      mapstructure:"models"`
}

type ModelDefinition struct {
	ID            string   `json:"id"             mapstructure:"id"`
	Name          string   `json:"name"           mapstructure:"name"`
	API           string   `json:"api"            mapstructure:"api"`
	Reasoning     bool     `json:"reasoning"      mapstructure:"reasoning"`
	Input         []string `json:"input"          mapstructure:"input"`
	ContextWindow int      `json:"context-window" mapstructure:"context-window"`
	MaxTokens     int      `json:"max-tokens"     mapstructure:"max-tokens"`
}

// NewModelOptions defaults to a local Ollama model so the client works
// without any API key.
func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Mode:            ModelModeMerge,
		DefaultProvider: "ollama",
		DefaultModel:    "mistral:7b-instruct",
		Temperature:     0.2,
		Providers: map[string]*ProviderConfig{
			"ollama": {
				BaseURL: "http://127.0.0.1:11434",
				API:     "ollama-generate",
				Models: []ModelDefinition{
					{ID: "mistral:7b-instruct", Name: "Mistral 7B Instruct", Input: []string{"text"}, ContextWindow: 32768, MaxTokens: 4096},
				},
			},
		},
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	if o.Mode != ModelModeMerge && o.Mode != ModelModeReplace {
		errs = append(errs, fmt.Errorf("invalid model mode %q, must be 'merge' or 'replace'", o.Mode))
	}
	if o.DefaultProvider == "" || o.DefaultModel == "" {
		errs = append(errs, fmt.Errorf("models.default-provider and models.default-model are required"))
	}
	if o.Temperature < 0 || o.Temperature > 2 {
		errs = append(errs, fmt.Errorf("models.temperature %v out of range [0, 2]", o.Temperature))
	}
	for id, p := range o.Providers {
		if p == nil {
			errs = append(errs, fmt.Errorf("provider %q: empty configuration", id))
			continue
		}
		if p.BaseURL == "" {
			errs = append(errs, fmt.Errorf("provider %q: base-url is required", id))
		}
		if len(p.Models) == 0 {
			errs = append(errs, fmt.Errorf("provider %q: at least one model is required", id))
		}
		for _, m := range p.Models {
			if m.ID == "" {
				errs = append(errs, fmt.Errorf("provider %q: model id is required", id))
			}
		}
	}
	return errs
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Mode, "models.mode", o.Mode, "Model provider merge mode: 'merge' or 'replace'.")
	fs.StringVar(&o.DefaultProvider, "models.default-provider", o.DefaultProvider, "Default provider ID.")
	fs.StringVar(&o.DefaultModel, "models.default-model", o.DefaultModel, "Default model ID.")
	fs.Float32Var(&o.Temperature, "models.temperature", o.Temperature, "Sampling temperature for every model call.")
	fs.IntVar(&o.MaxTokens, "models.max-tokens", o.MaxTokens, "Maximum tokens generated per call (0 keeps the provider default).")
}
