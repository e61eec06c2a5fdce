// Package config carries the run-time policy for a single invocation.
// ExecConfig is built once from the CLI surface and threaded by value
// through every component; it is never mutated after construction.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables consumed by the LLM fallback path.
const (
	EnvAPIKey = "OPENAI_API_KEY"
	EnvModel  = "OPENAI_MODEL"
)

// DefaultModel is used when neither the environment nor the config file
// names one.
const DefaultModel = "gpt-4o-mini"

// ExecConfig is the immutable snapshot of policy flags for one run.
type ExecConfig struct {
	// DryRun prints would-run commands without spawning anything.
	DryRun bool
	// Auto executes suggestions after confirmation instead of only
	// printing them.
	Auto bool
	// Offline forbids every network operation: registry lookups, the LLM
	// call, and package-tool commands that would download.
	Offline bool
	// Yes bypasses the confirmation prompt and appends --noconfirm to
	// pacman/paru actions.
	Yes bool
	// PreferParu routes installs through the AUR helper even when a -bin
	// package was not requested.
	PreferParu bool
	// NoSudo uses pacman without privilege elevation.
	NoSudo bool
	// Verbose logs exit codes and diagnostic detail.
	Verbose bool
}

// FileConfig mirrors the optional YAML config file. Flags always win over
// file values; the file only shifts defaults.
type FileConfig struct {
	LLM struct {
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"llm"`
	Defaults struct {
		PreferParu bool `yaml:"prefer_paru"`
		NoSudo     bool `yaml:"no_sudo"`
		Yes        bool `yaml:"yes"`
	} `yaml:"defaults"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archassist", "config.yaml"), nil
}

// LoadFile reads the config file at the default path. A missing file is not
// an error; it yields the zero value.
func LoadFile() (FileConfig, error) {
	path, err := DefaultPath()
	if err != nil {
		return FileConfig{}, nil
	}
	return LoadFileFrom(path)
}

// LoadFileFrom reads and parses a config file from an explicit path.
func LoadFileFrom(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// APIKey returns the LLM credential from the environment, empty when unset.
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}

// Model resolves the chat model name: environment override first, then the
// config file, then the fixed default.
func Model(fc FileConfig) string {
	if m := os.Getenv(EnvModel); m != "" {
		return m
	}
	if fc.LLM.Model != "" {
		return fc.LLM.Model
	}
	return DefaultModel
}
