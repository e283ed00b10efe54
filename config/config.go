package config

import (
	"path/filepath"
	"time"

	"github.com/kbukum/audioscribe/validation"
)

const (
	// DefaultMaxChunkSize is the upload budget per chunk in bytes.
	DefaultMaxChunkSize int64 = 20 * 1024 * 1024
	// DefaultBitrate is the MP3 bitrate used for transcoding and chunk export.
	DefaultBitrate = "128k"
	// DefaultModel is the speech-to-text model identifier sent with every chunk.
	DefaultModel = "whisper-1"
)

// Config is the complete audioscribe configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Locale selects the language of user-facing messages.
	Locale string `yaml:"locale" mapstructure:"locale" validate:"oneof=en ru"`

	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Chunking  ChunkingConfig  `yaml:"chunking" mapstructure:"chunking"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Media     MediaConfig     `yaml:"media" mapstructure:"media"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// OpenAIConfig configures the speech-to-text API.
type OpenAIConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	Model    string `yaml:"model" mapstructure:"model" validate:"required"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	Language string `yaml:"language" mapstructure:"language"`
	// Timeout bounds one transcription call. Zero keeps the transport default.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
}

// ChunkingConfig configures how audio is cut before upload.
type ChunkingConfig struct {
	// MaxChunkSize is the size budget of one chunk in bytes.
	MaxChunkSize int64  `yaml:"max_chunk_size" mapstructure:"max_chunk_size" validate:"gt=0"`
	Bitrate      string `yaml:"bitrate" mapstructure:"bitrate" validate:"required"`
}

// PathsConfig locates the input, output and scratch directories. Relative
// AudioDir and ResultsDir are resolved against BaseDir.
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" mapstructure:"base_dir"`
	AudioDir   string `yaml:"audio_dir" mapstructure:"audio_dir" validate:"required"`
	ResultsDir string `yaml:"results_dir" mapstructure:"results_dir" validate:"required"`
	// TempDir holds per-run scratch directories. Empty means the system default.
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// MediaConfig names the media tool binaries.
type MediaConfig struct {
	FFmpeg  string `yaml:"ffmpeg" mapstructure:"ffmpeg" validate:"required"`
	FFprobe string `yaml:"ffprobe" mapstructure:"ffprobe" validate:"required"`
}

// TelemetryConfig enables OTLP export of pipeline traces and metrics.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "audioscribe"
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = DefaultModel
	}
	if c.Chunking.MaxChunkSize == 0 {
		c.Chunking.MaxChunkSize = DefaultMaxChunkSize
	}
	if c.Chunking.Bitrate == "" {
		c.Chunking.Bitrate = DefaultBitrate
	}
	if c.Paths.BaseDir == "" {
		c.Paths.BaseDir = "."
	}
	if c.Paths.AudioDir == "" {
		c.Paths.AudioDir = "audio"
	}
	if c.Paths.ResultsDir == "" {
		c.Paths.ResultsDir = "results"
	}
	if c.Media.FFmpeg == "" {
		c.Media.FFmpeg = "ffmpeg"
	}
	if c.Media.FFprobe == "" {
		c.Media.FFprobe = "ffprobe"
	}
}

// Validate checks struct tags and the base service fields, reporting every
// problem at once.
func (c *Config) Validate() error {
	collector := validation.NewCollector()
	collector.Merge("service", c.ServiceConfig.Validate())
	collector.Merge("config", validation.Validate(c))
	return collector.Err()
}

// AudioPath returns the absolute-or-base-relative input directory.
func (p PathsConfig) AudioPath() string {
	return p.resolve(p.AudioDir)
}

// ResultsPath returns the absolute-or-base-relative output directory.
func (p PathsConfig) ResultsPath() string {
	return p.resolve(p.ResultsDir)
}

func (p PathsConfig) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.BaseDir, dir)
}
