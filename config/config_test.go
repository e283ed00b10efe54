package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/audioscribe/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func validConfig() Config {
	cfg := Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "audioscribe" {
		t.Errorf("expected name 'audioscribe', got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected environment 'development', got %q", cfg.Environment)
	}
	if cfg.Locale != "en" {
		t.Errorf("expected locale 'en', got %q", cfg.Locale)
	}
	if cfg.OpenAI.Model != "whisper-1" {
		t.Errorf("expected model whisper-1, got %q", cfg.OpenAI.Model)
	}
	if cfg.Chunking.MaxChunkSize != 20*1024*1024 {
		t.Errorf("expected 20 MiB max chunk size, got %d", cfg.Chunking.MaxChunkSize)
	}
	if cfg.Chunking.Bitrate != "128k" {
		t.Errorf("expected bitrate 128k, got %q", cfg.Chunking.Bitrate)
	}
	if cfg.Paths.AudioDir != "audio" || cfg.Paths.ResultsDir != "results" {
		t.Errorf("unexpected dirs %+v", cfg.Paths)
	}
	if cfg.Media.FFmpeg != "ffmpeg" || cfg.Media.FFprobe != "ffprobe" {
		t.Errorf("unexpected media binaries %+v", cfg.Media)
	}
	if cfg.Logging.ServiceName != "audioscribe" {
		t.Errorf("expected service name propagated to logging, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected logs on stderr, got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_DebugRaisesLogLevel(t *testing.T) {
	cfg := Config{ServiceConfig: ServiceConfig{Debug: true}}
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing api key", func(c *Config) { c.OpenAI.APIKey = "" }, "openai.api_key: is required"},
		{"zero chunk size", func(c *Config) { c.Chunking.MaxChunkSize = -1 }, "chunking.max_chunk_size: must be greater than 0"},
		{"bad locale", func(c *Config) { c.Locale = "de" }, "locale: must be one of: en ru"},
		{"bad base url", func(c *Config) { c.OpenAI.BaseURL = "not a url" }, "openai.base_url: must be a valid URL"},
		{"telemetry without endpoint", func(c *Config) { c.Telemetry.Enabled = true }, "telemetry.endpoint"},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment must be one of"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tc.errMsg)
			}
			if !errors.Is(err, errors.ErrCodeConfigInvalid) {
				t.Errorf("expected CONFIG_INVALID, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestPathsResolve(t *testing.T) {
	p := PathsConfig{BaseDir: "/opt/scribe", AudioDir: "audio", ResultsDir: "/var/results"}
	if got := p.AudioPath(); got != filepath.Join("/opt/scribe", "audio") {
		t.Errorf("unexpected audio path %q", got)
	}
	if got := p.ResultsPath(); got != "/var/results" {
		t.Errorf("absolute results dir should be kept, got %q", got)
	}
}

func TestLoadWithYAML(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, `
name: scribe
environment: staging
locale: ru
openai:
  api_key: sk-from-yaml
  timeout: 90s
chunking:
  max_chunk_size: 10485760
paths:
  base_dir: /srv/scribe
`)

	cfg, err := Load("audioscribe", WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "scribe" || cfg.Environment != "staging" || cfg.Locale != "ru" {
		t.Errorf("unexpected base fields %+v", cfg.ServiceConfig)
	}
	if cfg.OpenAI.APIKey != "sk-from-yaml" {
		t.Errorf("expected api key from yaml, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Timeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %v", cfg.OpenAI.Timeout)
	}
	if cfg.Chunking.MaxChunkSize != 10*1024*1024 {
		t.Errorf("expected 10 MiB, got %d", cfg.Chunking.MaxChunkSize)
	}
	if cfg.Paths.AudioPath() != filepath.Join("/srv/scribe", "audio") {
		t.Errorf("unexpected audio path %q", cfg.Paths.AudioPath())
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "openai:\n  api_key: sk-from-yaml\n")
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("CHUNKING_BITRATE", "96k")

	cfg, err := Load("audioscribe", WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("expected env to win, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.Chunking.Bitrate != "96k" {
		t.Errorf("expected bitrate from env, got %q", cfg.Chunking.Bitrate)
	}
}

func TestLoadIgnoresUnrelatedEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NAME", "wsl-host")
	t.Setenv("DEBUG", "true")
	t.Setenv("AUDIOSCRIBE_LOCALE", "ru")

	cfg, err := Load("audioscribe", WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "audioscribe" {
		t.Errorf("expected NAME to be ignored, got %q", cfg.Name)
	}
	if cfg.Debug {
		t.Error("expected DEBUG to be ignored")
	}
	if cfg.Locale != "ru" {
		t.Errorf("expected locale from AUDIOSCRIBE_LOCALE, got %q", cfg.Locale)
	}
}

func TestConfigEnvName(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"OPENAI_API_KEY", "OPENAI_API_KEY", true},
		{"TELEMETRY_ENDPOINT", "TELEMETRY_ENDPOINT", true},
		{"AUDIOSCRIBE_NAME", "NAME", true},
		{"AUDIOSCRIBE_", "", false},
		{"NAME", "", false},
		{"HOME", "", false},
	}
	for _, tt := range tests {
		got, ok := configEnvName(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("configEnvName(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadLegacyChunkSizeVariable(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_CHUNK_SIZE_MB", "5242880")

	cfg, err := Load("audioscribe", WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Chunking.MaxChunkSize != 5*1024*1024 {
		t.Errorf("expected legacy variable to set max chunk size, got %d", cfg.Chunking.MaxChunkSize)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "OPENAI_API_KEY=sk-from-dotenv\n")
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	cfg, err := Load("audioscribe", WithBaseDir(dir))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-dotenv" {
		t.Errorf("expected api key from .env, got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadBaseDirBecomesDefaultPathRoot(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	dir := t.TempDir()

	cfg, err := Load("audioscribe", WithBaseDir(dir), WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paths.ResultsPath() != filepath.Join(dir, "results") {
		t.Errorf("expected results under %s, got %s", dir, cfg.Paths.ResultsPath())
	}
}

func TestLoadMissingAPIKeyFails(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := Load("audioscribe", WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "openai.api_key") {
		t.Errorf("expected api key error, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "openai: [unterminated\n")

	var cfg Config
	if err := LoadConfig("audioscribe", &cfg, WithConfigFile(configPath)); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/audioscribe/config.yml": true,
		"/opt/app/.env":                true,
		"./.env":                       true,
	}}
	resolver := &Resolver{FileSystem: fs, BaseDir: "/opt/app"}
	files := resolver.ResolveFiles("audioscribe", LoaderConfig{})
	if files.ConfigFile != "./cmd/audioscribe/config.yml" {
		t.Errorf("expected config file at ./cmd/audioscribe/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "/opt/app/.env" {
		t.Errorf("expected base dir .env to win, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("x", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("explicit paths should be kept, got %+v", files)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("OPENAI_API_KEY")
	for _, want := range []string{"openai_api_key", "openai.api.key", "openai.api_key", "openai_api.key"} {
		found := false
		for _, g := range got {
			if g == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if single := generateEnvKeyVariants("LOCALE"); len(single) != 1 || single[0] != "locale" {
		t.Errorf("unexpected variants for single word: %v", single)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
