// Package config loads client settings shared by the CLI and the TUI.
package config

import (
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the resolved client settings.
type Config struct {
	// Server is the base URL of the journal service.
	Server string
	// Path is the directory holding durable client state (the session token).
	Path string
	// Timeout bounds every request; a hung call must not pin the UI forever.
	Timeout time.Duration
	// Log is an optional debug log file. The TUI owns stdout, so structured
	// logs go to a file when configured and nowhere otherwise.
	Log string
}

// Load reads .journal.yaml (working directory or JOURNAL_CONFIG_PATH) and
// the JOURNAL_* environment, falling back to defaults for every key.
func Load() (*Config, error) {
	viper.SetDefault("server", "http://localhost:8080")
	viper.SetDefault("path", "~/.journal.db")
	viper.SetDefault("timeout", 30)
	viper.SetDefault("log", "")
	viper.SetConfigName(".journal") // .yaml is implicit
	viper.SetEnvPrefix("JOURNAL")
	viper.AutomaticEnv()

	if override := os.Getenv("JOURNAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}
	logPath := viper.GetString("log")
	if logPath != "" {
		if logPath, err = homedir.Expand(logPath); err != nil {
			return nil, err
		}
	}

	return &Config{
		Server:  viper.GetString("server"),
		Path:    path,
		Timeout: time.Duration(viper.GetInt("timeout")) * time.Second,
		Log:     logPath,
	}, nil
}
