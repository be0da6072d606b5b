package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// A .env file in the working directory is folded into the environment first;
// variables already set in the process win.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "kbreader"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "kbreader"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// Read config file if present; a file that exists but doesn't parse is an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	_ = godotenv.Load()

	// Environment variables: KBREADER_* (highest among these sources)
	v.SetEnvPrefix("kbreader")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The mobile app reads its API host from EXPO_PUBLIC_BASE_URL; honour it too.
	_ = v.BindEnv("base_url", "KBREADER_BASE_URL", "EXPO_PUBLIC_BASE_URL")
	// Viper skips empty variables, but an empty prefix is meaningful: the
	// base URL already carries it.
	if p, ok := os.LookupEnv("KBREADER_API_PREFIX"); ok && p == "" {
		v.Set("api_prefix", "")
	}

	if strings.TrimSpace(v.GetString("output")) == "" {
		v.Set("output", "tui")
	}
	return nil
}

// defaultStateDir resolves $XDG_STATE_HOME/kbreader or ~/.local/state/kbreader.
func defaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "kbreader")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "kbreader")
}

// DefaultLogPath is where the TUI logs when log.file is unset; the
// alternate screen owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(defaultStateDir(), "kbreader.log")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "kbreader", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "base_url", Default: "http://localhost:1337", Comment: "Content API base URL, used verbatim as a prefix"},
		{Key: "api_prefix", Default: "/api", Comment: "Path between base_url and /articles; empty if base_url already ends in /api"},
		{Key: "output", Default: "tui", Comment: "Default output mode: plain|pretty|json|ndjson|tui"},

		{Key: "http.timeout", Default: "0s", Comment: "Request timeout (Go duration); 0s waits for the transport"},
		{Key: "log.level", Default: "info", Comment: "Log level: trace|debug|info|warn|error"},
		{Key: "log.file", Default: "", Comment: "Log file; empty logs to stderr (TUI mode: state dir)"},
		{Key: "tui.style", Default: "dracula", Comment: "Glamour style for rendered articles"},
		{Key: "tui.word_wrap", Default: 80, Comment: "Wrap width for rendered articles"},
	}
}
