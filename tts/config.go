package tts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all speech configuration options.
type Config struct {
	// OpenAIAPIKey makes the cloud engine available when non-empty. Read
	// only from the environment, never from a config file.
	OpenAIAPIKey string `yaml:"-" env:"OPENAI_API_KEY"`

	// Cloud synthesis defaults, applied when a request leaves them unset.
	OpenAIVoice string  `yaml:"openai_voice" env:"VOICEBOX_OPENAI_VOICE" envDefault:"alloy"`
	OpenAIModel string  `yaml:"openai_model" env:"VOICEBOX_OPENAI_MODEL" envDefault:"standard"`
	OpenAISpeed float64 `yaml:"openai_speed" env:"VOICEBOX_OPENAI_SPEED" envDefault:"1.0"`

	// FallbackEnabled retries cloud failures on the local engine.
	FallbackEnabled bool `yaml:"fallback_enabled" env:"VOICEBOX_FALLBACK_ENABLED" envDefault:"true"`

	// OutputDir is where cloud-produced audio files are written. Defaults
	// to a voicebox directory under the platform temp dir.
	OutputDir string `yaml:"output_dir" env:"VOICEBOX_OUTPUT_DIR"`

	// Stale audio file cleanup.
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"VOICEBOX_CLEANUP_INTERVAL" envDefault:"1h"`
	MaxAudioAge     time.Duration `yaml:"max_audio_age" env:"VOICEBOX_MAX_AUDIO_AGE" envDefault:"24h"`
}

// DefaultConfig returns a Config with sensible defaults and no credential.
func DefaultConfig() Config {
	return Config{
		OpenAIVoice:     "alloy",
		OpenAIModel:     ModelStandard,
		OpenAISpeed:     1.0,
		FallbackEnabled: true,
		OutputDir:       defaultOutputDir(),
		CleanupInterval: time.Hour,
		MaxAudioAge:     24 * time.Hour,
	}
}

// LoadConfig builds the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir()
	}
	return cfg, nil
}

func defaultOutputDir() string {
	return filepath.Join(os.TempDir(), "voicebox")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !IsCloudVoice(c.OpenAIVoice) {
		return fmt.Errorf("%w: %q must be one of %v", ErrInvalidCloudVoice, c.OpenAIVoice, CloudVoices)
	}

	switch strings.ToLower(c.OpenAIModel) {
	case ModelStandard, ModelHD:
		c.OpenAIModel = strings.ToLower(c.OpenAIModel)
	default:
		return fmt.Errorf("%w: %q must be %q or %q", ErrInvalidCloudModel, c.OpenAIModel, ModelStandard, ModelHD)
	}

	if c.OpenAISpeed < MinSpeed || c.OpenAISpeed > MaxSpeed {
		return fmt.Errorf("%w: openai_speed must be between %g and %g, got %g",
			ErrInvalidConfig, MinSpeed, MaxSpeed, c.OpenAISpeed)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir cannot be empty", ErrInvalidConfig)
	}

	if c.CleanupInterval < time.Minute {
		return fmt.Errorf("%w: cleanup_interval must be at least 1 minute, got %v",
			ErrInvalidConfig, c.CleanupInterval)
	}

	if c.MaxAudioAge < time.Minute {
		return fmt.Errorf("%w: max_audio_age must be at least 1 minute, got %v",
			ErrInvalidConfig, c.MaxAudioAge)
	}

	return nil
}
