package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/LoadPlan/internal/model"
)

const (
	configFileName = "cli"
	configFileType = "yaml"
	configFileExt  = "cli.yaml"
	envPrefix      = "LOADPLAN"

	cfgKeyContainer   = "container"
	cfgKeyGap         = "gap"
	cfgKeyScale       = "scale"
	cfgKeyMaxWeightKg = "max_weight_kg"
	cfgKeyMaxVolumeM3 = "max_volume_m3"
	cfgKeyInventory   = "inventory"
)

// defaultConfigYAML is written to cli.yaml on first run.
const defaultConfigYAML = `# LoadPlan CLI configuration
# Every key can be overridden with a LOADPLAN_<KEY> environment variable
# or the matching command-line flag.

# Container preset used when a cargo table does not name one
# container: ISO 40ft

# Spacing between boxes in batch placement (mm)
gap: 10

# Pixels per millimetre in the top and side views
scale: 0.035

# Load limits
max_weight_kg: 28000
max_volume_m3: 33.2

# Inventory file with container and cargo presets (optional)
# inventory:
`

// loadConfig reads cli.yaml from configDir using Viper. It creates the
// directory and a default file on first run. A missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	defaults := model.DefaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyGap, defaults.Gap)
	v.SetDefault(cfgKeyScale, defaults.Scale)
	v.SetDefault(cfgKeyMaxWeightKg, defaults.MaxWeightKg)
	v.SetDefault(cfgKeyMaxVolumeM3, defaults.MaxVolumeM3)
	v.SetDefault(cfgKeyContainer, "")
	v.SetDefault(cfgKeyInventory, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default cli.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// settingsFromConfig builds placement settings from the resolved config.
func settingsFromConfig(v *viper.Viper) (model.Settings, error) {
	s := model.DefaultSettings()
	s.Gap = v.GetFloat64(cfgKeyGap)
	s.Scale = v.GetFloat64(cfgKeyScale)
	s.MaxWeightKg = v.GetFloat64(cfgKeyMaxWeightKg)
	s.MaxVolumeM3 = v.GetFloat64(cfgKeyMaxVolumeM3)
	if s.Gap < 0 {
		return model.Settings{}, &model.ValidationError{Field: cfgKeyGap, Message: fmt.Sprintf("must not be negative, got %g", s.Gap)}
	}
	if s.Scale <= 0 {
		return model.Settings{}, &model.ValidationError{Field: cfgKeyScale, Message: fmt.Sprintf("must be positive, got %g", s.Scale)}
	}
	return s, nil
}
