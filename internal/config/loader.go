package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	fileBase  = ".reloadstats" // .reloadstats.yaml
	envPrefix = "RELOADSTATS"  // RELOADSTATS_FIGURES_DPI=150
)

// LoadConfig resolves settings from defaults, then the YAML file, then
// RELOADSTATS_* environment variables, and validates the result.
//
// An explicit path must exist. Without one, .reloadstats.yaml is looked up in
// the working directory, $XDG_CONFIG_HOME/reloadstats, and $HOME, and its
// absence is not an error.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileBase)

		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}
	}

	err := v.ReadInConfig()
	if err != nil && !errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := new(Config)

	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func searchDirs() []string {
	dirs := []string{"."}

	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "reloadstats"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	return dirs
}
