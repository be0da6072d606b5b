package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	v.Set("http.timeout", "15s")

	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("base_url", "::not a url::")
	v.Set("output", "xml")
	v.Set("log.level", "loud")
	v.Set("http.timeout", "soon")
	v.Set("tui.word_wrap", 0)

	err := CheckConfigValidity(v)
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}

	msg := err.Error()
	expected := []string{
		"output must be one of plain|pretty|json|ndjson|tui",
		`log.level is invalid: "loud"`,
		`http.timeout is not a duration: "soon"`,
		"tui.word_wrap must be greater than 0",
	}
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to contain %q, got %q", want, msg)
		}
	}
	if strings.Contains(msg, "base_url") {
		t.Fatalf("base_url must not be validated, got %q", msg)
	}
}

func TestHTTPTimeout(t *testing.T) {
	v := viper.New()
	d, err := HTTPTimeout(v)
	require.NoError(t, err)
	require.Zero(t, d)

	v.Set("http.timeout", "-1s")
	_, err = HTTPTimeout(v)
	require.Error(t, err)

	v.Set("http.timeout", "250ms")
	d, err = HTTPTimeout(v)
	require.NoError(t, err)
	require.Equal(t, "250ms", d.String())
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Setenv("KBREADER_BASE_URL", "")
	t.Setenv("EXPO_PUBLIC_BASE_URL", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	os.Unsetenv("KBREADER_BASE_URL")
	os.Unsetenv("EXPO_PUBLIC_BASE_URL")

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "http://localhost:1337", v.GetString("base_url"))
	require.Equal(t, "/api", v.GetString("api_prefix"))
	require.Equal(t, "tui", v.GetString("output"))
	require.NoError(t, CheckConfigValidity(v))
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("KBREADER_BASE_URL")
	os.Unsetenv("EXPO_PUBLIC_BASE_URL")

	cfg := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("base_url = \"https://cms.example\"\napi_prefix = \"\"\n[log]\nlevel = \"debug\"\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(cfg)
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "https://cms.example", v.GetString("base_url"))
	require.Equal(t, "", v.GetString("api_prefix"))
	require.Equal(t, "debug", v.GetString("log.level"))

	t.Setenv("KBREADER_LOG_LEVEL", "warn")
	require.Equal(t, "warn", v.GetString("log.level"), "env overrides file")
}

func TestLoadBrokenFile(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("base_url = \n[[["), 0o600))

	v := viper.New()
	v.SetConfigFile(cfg)
	require.Error(t, Load(context.Background(), v))
}

func TestLoadExpoAlias(t *testing.T) {
	isolate(t)
	os.Unsetenv("KBREADER_BASE_URL")
	t.Setenv("EXPO_PUBLIC_BASE_URL", "http://10.0.2.2:1337")

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "http://10.0.2.2:1337", v.GetString("base_url"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("KBREADER_BASE_URL")
	os.Unsetenv("EXPO_PUBLIC_BASE_URL")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KBREADER_API_PREFIX=/v2\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("KBREADER_API_PREFIX") })

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "/v2", v.GetString("api_prefix"))
}

func TestRenderDefaultTOML(t *testing.T) {
	out := RenderDefaultTOML()
	require.Contains(t, out, "base_url = \"http://localhost:1337\"")
	require.Contains(t, out, "[http]\n")
	require.Contains(t, out, "timeout = \"0s\"")
	require.Contains(t, out, "[tui]\n")
	require.Contains(t, out, "word_wrap = 80")

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	require.Equal(t, "dracula", v.GetString("tui.style"))
}

func TestLoadEmptyPrefixFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KBREADER_API_PREFIX", "")

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "", v.GetString("api_prefix"))
	require.True(t, v.IsSet("api_prefix"))
}

func TestLoadEmptyPrefixFromDotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("KBREADER_API_PREFIX")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KBREADER_API_PREFIX=\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("KBREADER_API_PREFIX") })

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.Equal(t, "", v.GetString("api_prefix"))
}
