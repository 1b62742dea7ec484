package options

import (
	genericoptions "github.com/kiosk404/echonote/internal/pkg/options"
	"github.com/kiosk404/echonote/pkg/logger"
	"github.com/kiosk404/echonote/pkg/utils/cliflag"
	"github.com/kiosk404/echonote/pkg/utils/json"
)

// Options is everything a notemind session is built from.
type Options struct {
	Log       *logger.Options              `json:"log"       mapstructure:"log"`
	Models    *genericoptions.ModelOptions `json:"models"    mapstructure:"models"`
	MCP       *MCPOptions                  `json:"mcp"       mapstructure:"mcp"`
	Assistant *AssistantOptions            `json:"assistant" mapstructure:"assistant"`
}

func NewOptions() *Options {
	return &Options{
		Log:       logger.NewOptions(),
		Models:    genericoptions.NewModelOptions(),
		MCP:       NewMCPOptions(),
		Assistant: NewAssistantOptions(),
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.Log.AddFlags(fss.FlagSet("log"))
	o.Models.AddFlags(fss.FlagSet("models"))
	o.MCP.AddFlags(fss.FlagSet("mcp"))
	o.Assistant.AddFlags(fss.FlagSet("assistant"))
	return fss
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.Log.Validate()...)
	errs = append(errs, o.Models.Validate()...)
	errs = append(errs, o.MCP.Validate()...)
	errs = append(errs, o.Assistant.Validate()...)
	return errs
}

// Complete applies logging settings once the options are final.
func (o *Options) Complete() error {
	return logger.InitLog(o.Log)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
