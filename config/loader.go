package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// legacyEnvKeys maps environment variables of the original script onto
// config keys. MAX_CHUNK_SIZE_MB has always carried a byte count.
var legacyEnvKeys = map[string]string{
	"MAX_CHUNK_SIZE_MB": "chunking.max_chunk_size",
}

// envPrefixes are the variable prefixes that map onto config sections.
// Anything else in the environment is ignored, so unrelated variables such
// as NAME or DEBUG cannot leak into the configuration.
var envPrefixes = []string{
	"OPENAI_", "CHUNKING_", "PATHS_", "MEDIA_", "TELEMETRY_", "LOGGING_",
}

// topLevelEnvPrefix marks variables for top-level keys:
// AUDIOSCRIBE_LOCALE -> locale.
const topLevelEnvPrefix = "AUDIOSCRIBE_"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver handles finding config and env files.
type Resolver struct {
	FileSystem FileSystem
	// BaseDir is searched before the working directory. cmd/ sets it to the
	// executable's directory.
	BaseDir string
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.first(cr.candidates(serviceName, "config.yml"))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.first(cr.candidates(serviceName, ".env"))
	}
	return resolved
}

func (cr *Resolver) candidates(serviceName, file string) []string {
	var paths []string
	if cr.BaseDir != "" {
		paths = append(paths, fmt.Sprintf("%s/%s", cr.BaseDir, file))
	}
	return append(paths,
		fmt.Sprintf("./cmd/%s/%s", serviceName, file),
		fmt.Sprintf("./config/%s", file),
		fmt.Sprintf("./%s", file),
	)
}

func (cr *Resolver) first(paths []string) string {
	for _, path := range paths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	BaseDir    string
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithBaseDir adds a directory searched first for config.yml and .env.
func WithBaseDir(dir string) LoaderOption {
	return func(lc *LoaderConfig) { lc.BaseDir = dir }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads, defaults and validates the audioscribe configuration. The
// loader's base directory, when given, also becomes the default
// paths.base_dir.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}

	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if cfg.Paths.BaseDir == "" {
		cfg.Paths.BaseDir = lc.BaseDir
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration for a service into the provided cfg struct
// without applying defaults.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem, BaseDir: lc.BaseDir}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc.FileSystem)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(serviceName string, cfg interface{}, files ResolvedFiles, fs FileSystem) error {
	v := viper.New()

	// 1. YAML config first (base configuration)
	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
	}

	// 2. .env never overrides variables already exported in the shell
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", files.EnvFile, err)
		}
	}

	// 3. Environment wins over the file
	autoBindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// autoBindEnvVars binds every non-empty, recognized environment variable to
// Viper under each nested key its UPPER_SNAKE name could denote.
func autoBindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || value == "" {
			continue
		}
		if target, legacy := legacyEnvKeys[key]; legacy {
			v.Set(target, value)
			continue
		}
		name, ok := configEnvName(key)
		if !ok {
			continue
		}
		for _, variant := range generateEnvKeyVariants(name) {
			v.Set(variant, value)
		}
	}
}

// configEnvName reports whether key addresses the configuration and returns
// the name to expand into config keys.
func configEnvName(key string) (string, bool) {
	if rest, ok := strings.CutPrefix(key, topLevelEnvPrefix); ok && rest != "" {
		return rest, true
	}
	for _, prefix := range envPrefixes {
		if strings.HasPrefix(key, prefix) {
			return key, true
		}
	}
	return "", false
}

// generateEnvKeyVariants creates the key variants an environment variable binds to.
// Examples:
//
//	OPENAI_API_KEY -> [openai_api_key, openai.api.key, openai.api_key, openai_api.key]
//	PATHS_RESULTS_DIR -> [paths_results_dir, paths.results.dir, paths.results_dir, paths_results.dir]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// prefix.rest_joined for every split point
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	// first_parts_joined.last
	if len(parts) >= 3 {
		prefix := strings.Join(parts[:len(parts)-1], "_")
		variants = append(variants, prefix+"."+parts[len(parts)-1])
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
