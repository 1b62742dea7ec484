package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kiosk404/echonote/pkg/logger"
	"github.com/kiosk404/echonote/pkg/utils/homedir"
	"github.com/spf13/viper"
)

const (
	// RecommendedHomeDir defines the default directory used to place all echonote service configurations.
	RecommendedHomeDir = ".echonote"

	// RecommendedEnvPrefix defines the ENV prefix used by all echonote services.
	RecommendedEnvPrefix = "ECHONOTE"
)

// LoadConfig reads in config file and ENV variables if set.
// A .env file in the working directory is loaded first so that ${VAR}
// references in provider settings resolve the same way.
func LoadConfig(cfg string, defaultName string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("[Config] failed to load .env: %v", err)
	}

	if cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("conf")
		viper.AddConfigPath(filepath.Join(homedir.HomeDir(), RecommendedHomeDir))
		viper.SetConfigName(defaultName)
	}

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(RecommendedEnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfg == "" && errors.As(err, &notFound) {
			logger.Debug("[Config] no %s config file found, using flags and defaults", defaultName)
			return
		}
		logger.Warn("[Config] failed to read configuration file(%s): %v", cfg, err)
	}
}

// Unmarshal decodes the loaded configuration into out, reporting the file in errors.
func Unmarshal(out interface{}) error {
	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("decode configuration %q: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}
