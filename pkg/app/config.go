package app

import (
	"github.com/kiosk404/echonote/internal/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const configFlagName = "config"

var cfgFile string

// addConfigFlag adds flags for a specific server to the specified FlagSet object.
func addConfigFlag(basename string, fs *pflag.FlagSet) {
	fs.AddFlag(pflag.Lookup(configFlagName))
	cobra.OnInitialize(func() {
		config.LoadConfig(cfgFile, basename)
	})
}

func init() {
	pflag.StringVarP(&cfgFile, configFlagName, "c", cfgFile, "Read configuration from specified `FILE`, support JSON, TOML, YAML, HCL, or Java properties formats.")
}
