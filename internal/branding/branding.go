// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; values missing from it fall
// back to the defaults below.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	ManifestFile string `yaml:"manifest_file"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:      "productor",
			DisplayName:  "Productor",
			Description:  "Convention-based plugin discovery and registry",
			HomeDir:      ".productor",
			EnvPrefix:    "PRODUCTOR",
			ManifestFile: "productor.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "productor").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".productor").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PRODUCTOR").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ManifestFile returns the registry manifest looked up when none is given.
func ManifestFile() string { load(); return defaults.ManifestFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("manifest") → "PRODUCTOR_MANIFEST".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
