package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kiln-labs/kiln/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys under the answers namespace that pre-fill blueprint answers when set
// (e.g. answers.author_name).
var answerKeys = []string{"author_name", "author_email", "ai_tool"}

// Dir returns the path to the Kiln config directory (~/.kiln/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kiln/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// BlueprintsDir returns the directory scanned for user blueprints
// (~/.kiln/blueprints/).
func BlueprintsDir() string {
	return filepath.Join(Dir(), "blueprints")
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
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
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

// AnswerDefaults returns the configured answers.* values that pre-fill
// blueprint answers, keyed by bare variable name. Unset keys are omitted.
func AnswerDefaults() map[string]any {
	defaults := make(map[string]any)
	for _, key := range answerKeys {
		if v := viper.GetString("answers." + key); v != "" {
			defaults[key] = v
		}
	}
	return defaults
}
