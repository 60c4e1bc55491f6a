package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/productor/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known keys.
const (
	KeyManifest      = "manifest"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyTraceExporter = "trace.exporter"
	KeyTraceEndpoint = "trace.endpoint"
)

// Keys lists every key `config get` and `config set` accept.
var Keys = []string{KeyManifest, KeyLogLevel, KeyLogFormat, KeyTraceExporter, KeyTraceEndpoint}

// homeOverride redirects Dir in tests.
var homeOverride string

// Dir returns the path to the config directory (~/.productor/).
func Dir() string {
	if homeOverride != "" {
		return filepath.Join(homeOverride, branding.HomeDir())
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.productor/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyManifest, branding.ManifestFile())
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyTraceExporter, "none")
	viper.SetDefault(KeyTraceEndpoint, "localhost:4317")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is one of Keys.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
