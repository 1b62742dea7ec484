package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options holds the logging flags shared by every binary.
type Options struct {
	Level        string `json:"level"         mapstructure:"level"`
	Format       string `json:"format"        mapstructure:"format"`
	OutputPath   string `json:"output-path"   mapstructure:"output-path"`
	DisableColor bool   `json:"disable-color" mapstructure:"disable-color"`
}

func NewOptions() *Options {
	return &Options{
		Level:      "info",
		Format:     FormatText,
		OutputPath: "stderr",
	}
}

func (o *Options) Validate() []error {
	var errs []error
	if _, err := logrus.ParseLevel(o.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if o.Format != FormatText && o.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("log.format: unsupported format %q, must be 'text' or 'json'", o.Format))
	}
	return errs
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log format: 'text' or 'json'.")
	fs.StringVar(&o.OutputPath, "log.output-path", o.OutputPath, "Log destination: 'stderr' or a file path.")
	fs.BoolVar(&o.DisableColor, "log.disable-color", o.DisableColor, "Disable colored text logs.")
}
